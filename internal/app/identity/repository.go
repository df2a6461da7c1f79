package identity

import "gorm.io/gorm"

type Repository interface {
	GetByDeviceKey(deviceKey string) (*Participant, error)
	GetByID(id string) (*Participant, error)
	Create(participant *Participant) error
	UpdatePoints(id string, points int) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByDeviceKey(deviceKey string) (*Participant, error) {
	var participant Participant
	err := r.db.Where("device_key = ?", deviceKey).First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *repository) GetByID(id string) (*Participant, error) {
	var participant Participant
	err := r.db.Where("id = ?", id).First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *repository) Create(participant *Participant) error {
	return r.db.Create(participant).Error
}

func (r *repository) UpdatePoints(id string, points int) error {
	return r.db.Model(&Participant{}).
		Where("id = ?", id).
		Update("points", points).Error
}
