package post

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	GetPostByID(id string) (*Post, error)
	GetPostsBySessionID(sessionID string) ([]*Post, error)
	GetAllPosts() ([]*Post, error)
	SavePost(post *Post) error
	DeletePost(id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetPostByID(id string) (*Post, error) {
	var post Post
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostsBySessionID returns a session's posts in board order: manual
// sort key first (posts without one sort last), newest first on ties.
func (r *repository) GetPostsBySessionID(sessionID string) ([]*Post, error) {
	var posts []*Post
	err := r.db.
		Where("session_id = ?", sessionID).
		Order("sort_order DESC NULLS LAST").
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *repository) GetAllPosts() ([]*Post, error) {
	var posts []*Post
	err := r.db.
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// SavePost upserts the whole record by id. Concurrent writers race at
// record granularity and the last write wins in full.
func (r *repository) SavePost(post *Post) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(post).Error
}

func (r *repository) DeletePost(id string) error {
	return r.db.Where("id = ?", id).Delete(&Post{}).Error
}
