package identity

import "time"

// Participant is the anonymous per-device identity. The device key is
// generated by the browser once and sent with every request; avatar and
// nickname are assigned from the paired tables below and never change.
type Participant struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	DeviceKey string    `json:"-" gorm:"uniqueIndex;not null"`
	Avatar    string    `json:"avatar" gorm:"not null"`
	Nickname  string    `json:"nickname" gorm:"not null"`
	Points    int       `json:"points" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Avatars and Nicknames are paired by index: a participant assigned
// Avatars[i] is nicknamed Nicknames[i].
var Avatars = []string{
	"🦊", "🐻", "🐼", "🐨", "🦁", "🐯", "🐮", "🐷", "🐸", "🐵",
	"🐔", "🐧", "🦄", "🐲", "🦋", "🐢", "🦀", "🐙", "🦈", "🐬",
}

var Nicknames = []string{
	"Fox", "Bear", "Panda", "Koala", "Lion", "Tiger", "Cow", "Pig", "Frog", "Monkey",
	"Rooster", "Penguin", "Unicorn", "Dragon", "Butterfly", "Turtle", "Crab", "Octopus", "Shark", "Dolphin",
}

type ProfileResponse struct {
	ID       string `json:"id"`
	Avatar   string `json:"avatar"`
	Nickname string `json:"nickname"`
	Points   int    `json:"points"`
	Rank     string `json:"rank"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
