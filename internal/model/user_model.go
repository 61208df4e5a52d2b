package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	Id          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nickname    string            `gorm:"type:varchar(255);not null"`
	Preferences datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	LastSeenAt  *time.Time        `gorm:"index"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt    `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
