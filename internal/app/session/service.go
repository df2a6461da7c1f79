package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"reflectboard/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	ListSessions() ([]*Session, error)
	GetSessionByID(id string) (*Session, error)
	CreateSession() (*Session, error)
	RenameSession(id string, name string) (*Session, error)
	DeleteSession(id string) error
}

type service struct {
	repo     Repository
	eventBus *utils.EventBus
	logger   *zap.SugaredLogger
}

func NewService(repo Repository, eventBus *utils.EventBus, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger.Sugar(),
	}
}

func (s *service) ListSessions() ([]*Session, error) {
	return s.repo.GetAllSessions()
}

func (s *service) GetSessionByID(id string) (*Session, error) {
	return s.repo.GetSessionByID(id)
}

// CreateSession adds a new meeting, auto-named by its ordinal.
func (s *service) CreateSession() (*Session, error) {
	count, err := s.repo.CountSessions()
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	session := &Session{
		ID:   "session_" + uuid.NewString(),
		Name: fmt.Sprintf("Session %d", count+1),
		Date: time.Now().Format("2006/01/02"),
	}

	if err := s.repo.SaveSession(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Infow("Session created", "session_id", session.ID, "name", session.Name)
	s.eventBus.Publish(utils.EventSessionsChanged, map[string]interface{}{
		"session_id": session.ID,
		"timestamp":  time.Now().UTC().Unix(),
	})

	return session, nil
}

// RenameSession updates a session's display name. A session deleted by
// another participant in the meantime makes this a silent no-op.
func (s *service) RenameSession(id string, name string) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("session name must not be empty")
	}

	session, err := s.repo.GetSessionByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Name == name {
		return session, nil
	}

	updated := *session
	updated.Name = name
	if err := s.repo.SaveSession(&updated); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.eventBus.Publish(utils.EventSessionsChanged, map[string]interface{}{
		"session_id": id,
		"timestamp":  time.Now().UTC().Unix(),
	})

	return &updated, nil
}

func (s *service) DeleteSession(id string) error {
	if err := s.repo.DeleteSession(id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.logger.Infow("Session deleted", "session_id", id)
	s.eventBus.Publish(utils.EventSessionsChanged, map[string]interface{}{
		"session_id": id,
		"timestamp":  time.Now().UTC().Unix(),
	})

	return nil
}
