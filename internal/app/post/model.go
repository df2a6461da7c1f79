package post

import "time"

// Reaction kinds shown on the reaction bar.
const (
	ReactionUnderstand   = "understand"
	ReactionNiceThought  = "niceThought"
	ReactionGoodQuestion = "goodQuestion"
	ReactionHelpful      = "helpful"
)

func ValidReaction(reactionID string) bool {
	switch reactionID {
	case ReactionUnderstand, ReactionNiceThought, ReactionGoodQuestion, ReactionHelpful:
		return true
	}
	return false
}

// MaxContentRunes caps post and comment content length.
const MaxContentRunes = 140

// Post is one reflection note on the board. The reaction maps and the
// comment forest are stored as JSON documents on the row, so a save is
// always a whole-record overwrite.
type Post struct {
	ID             string              `json:"id" gorm:"primaryKey"`
	SessionID      string              `json:"session_id" gorm:"index;not null"`
	AuthorID       string              `json:"author_id" gorm:"index;not null"`
	AuthorAvatar   string              `json:"author_avatar"`
	AuthorNickname string              `json:"author_nickname"`
	AuthorPoints   int                 `json:"author_points"`
	Category       string              `json:"category" gorm:"not null"`
	Content        string              `json:"content" gorm:"type:text;not null"`
	Reactions      map[string]int      `json:"reactions" gorm:"serializer:json"`
	ReactedUsers   map[string][]string `json:"reacted_users" gorm:"serializer:json"`
	Comments       []*Comment          `json:"comments" gorm:"serializer:json"`
	SortOrder      *int64              `json:"sort_order,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	EditedAt       *time.Time          `json:"edited_at,omitempty"`
}

// Comment is a node in a post's reply forest. Replies nest without a
// structural depth limit; only the client caps how deep it renders.
type Comment struct {
	ID             string     `json:"id"`
	AuthorID       string     `json:"author_id"`
	AuthorAvatar   string     `json:"author_avatar"`
	AuthorNickname string     `json:"author_nickname"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"created_at"`
	IsExpanded     bool       `json:"is_expanded"`
	Replies        []*Comment `json:"replies"`
}

type CreatePostRequest struct {
	Category string `json:"category" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

type EditPostRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type SwapRequest struct {
	FromIndex int `json:"from_index"`
	ToIndex   int `json:"to_index"`
}

type PostListResponse struct {
	Posts []*Post `json:"posts"`
}

type SessionStats struct {
	Total      int `json:"total"`
	Learning   int `json:"learning"`
	Impression int `json:"impression"`
	Question   int `json:"question"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
