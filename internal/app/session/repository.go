package session

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	GetAllSessions() ([]*Session, error)
	GetSessionByID(id string) (*Session, error)
	SaveSession(session *Session) error
	DeleteSession(id string) error
	CountSessions() (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAllSessions() ([]*Session, error) {
	var sessions []*Session
	err := r.db.
		Order("created_at ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *repository) GetSessionByID(id string) (*Session, error) {
	var session Session
	err := r.db.Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *repository) SaveSession(session *Session) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(session).Error
}

func (r *repository) DeleteSession(id string) error {
	return r.db.Where("id = ?", id).Delete(&Session{}).Error
}

func (r *repository) CountSessions() (int64, error) {
	var count int64
	err := r.db.Model(&Session{}).Count(&count).Error
	return count, err
}
