package entity

import (
	"time"

	"github.com/google/uuid"
)

// Preferences are the per-user UI settings kept alongside the nickname.
type Preferences struct {
	DarkMode bool
}

type User struct {
	Id          uuid.UUID
	Nickname    string
	Preferences Preferences
	LastSeenAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
