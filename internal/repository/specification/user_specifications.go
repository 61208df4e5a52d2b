package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

type ByNickname struct {
	Nickname string
}

func (s ByNickname) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("nickname = ?", s.Nickname)
}

// SeenSince keeps users whose last visit is at or after Since.
type SeenSince struct {
	Since time.Time
}

func (s SeenSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("last_seen_at >= ?", s.Since)
}
