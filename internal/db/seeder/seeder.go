package seeder

import (
	"time"

	"reflectboard/internal/app/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

func (s *Seeder) Seed() error {
	s.logger.Info("Running database seeders...")

	if err := s.seedFirstSession(); err != nil {
		return err
	}

	s.logger.Info("Database seeders completed successfully")
	return nil
}

// seedFirstSession bootstraps the board with its first meeting so a
// fresh deployment has somewhere to post.
func (s *Seeder) seedFirstSession() error {
	var count int64
	if err := s.db.Model(&session.Session{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("Sessions already exist, skipping seed")
		return nil
	}

	first := session.Session{
		ID:   "session_" + uuid.NewString(),
		Name: "Session 1",
		Date: time.Now().Format("2006/01/02"),
	}

	if err := s.db.Create(&first).Error; err != nil {
		return err
	}

	s.logger.Info("Seeded first session", zap.String("session_id", first.ID))
	return nil
}
