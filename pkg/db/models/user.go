package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the canonical identity entity. Authentication itself lives
// behind the external identity provider; this table only mirrors the stable
// id and the display name shown to other traders.
type User struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Email       string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	DisplayName string    `gorm:"column:display_name;type:text;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
