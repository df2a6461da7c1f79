package session

import "time"

// Session is one meeting's scoped collection of posts.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Date      string    `json:"date" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}

type SessionListResponse struct {
	Sessions []*Session `json:"sessions"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
