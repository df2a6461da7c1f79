package identity

import (
	"fmt"
	"math/rand"

	"reflectboard/internal/app/points"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	GetOrCreate(deviceKey string) (*Participant, error)
	GetByDeviceKey(deviceKey string) (*Participant, error)
	GetByID(id string) (*Participant, error)
	AddPoints(participantID string, delta int) (int, error)
	SetPoints(participantID string, value int) error
	Profile(deviceKey string) (*ProfileResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.Sugar(),
	}
}

// GetOrCreate returns the participant bound to the device key, creating
// one with a freshly assigned avatar/nickname pair on first contact.
func (s *service) GetOrCreate(deviceKey string) (*Participant, error) {
	if deviceKey == "" {
		return nil, fmt.Errorf("device key is required")
	}

	participant, err := s.repo.GetByDeviceKey(deviceKey)
	if err == nil {
		return participant, nil
	}

	idx := rand.Intn(len(Avatars))
	participant = &Participant{
		ID:        "user_" + uuid.NewString(),
		DeviceKey: deviceKey,
		Avatar:    Avatars[idx],
		Nickname:  Nicknames[idx],
		Points:    0,
	}

	if err := s.repo.Create(participant); err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	s.logger.Infow("Participant created",
		"participant_id", participant.ID,
		"nickname", participant.Nickname,
	)

	return participant, nil
}

func (s *service) GetByDeviceKey(deviceKey string) (*Participant, error) {
	return s.repo.GetByDeviceKey(deviceKey)
}

func (s *service) GetByID(id string) (*Participant, error) {
	return s.repo.GetByID(id)
}

// AddPoints applies a ledger delta and returns the new lifetime total.
// The total never goes below zero, so removing a reaction cannot drive
// a fresh participant negative.
func (s *service) AddPoints(participantID string, delta int) (int, error) {
	participant, err := s.repo.GetByID(participantID)
	if err != nil {
		return 0, fmt.Errorf("participant not found: %w", err)
	}

	total := participant.Points + delta
	if total < 0 {
		total = 0
	}

	if err := s.repo.UpdatePoints(participantID, total); err != nil {
		return 0, fmt.Errorf("failed to update points: %w", err)
	}

	return total, nil
}

func (s *service) SetPoints(participantID string, value int) error {
	if value < 0 {
		value = 0
	}
	return s.repo.UpdatePoints(participantID, value)
}

func (s *service) Profile(deviceKey string) (*ProfileResponse, error) {
	participant, err := s.repo.GetByDeviceKey(deviceKey)
	if err != nil {
		return nil, fmt.Errorf("participant not found: %w", err)
	}

	return &ProfileResponse{
		ID:       participant.ID,
		Avatar:   participant.Avatar,
		Nickname: participant.Nickname,
		Points:   participant.Points,
		Rank:     points.RankFor(participant.Points).Name,
	}, nil
}
