package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// List groups the lots a user is hunting for. Visibility is a property of the
// list, not the lot: only lots of public lists show up in the pool.
type List struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID  uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index:lists_owner_id_idx"`
	Name     string    `gorm:"column:name;type:text;not null"`
	IsPublic bool      `gorm:"column:is_public;not null;default:false"`

	Lots []Lot `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (l *List) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
