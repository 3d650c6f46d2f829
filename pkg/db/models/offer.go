package models

import (
	"time"

	"github.com/gobrick/brickpool-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Offer is one user's pledge to supply part of a lot. The unique index on
// (lot_id, user_id) enforces at most one live pledge per user per lot.
type Offer struct {
	ID       uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	LotID    uuid.UUID         `gorm:"column:lot_id;type:uuid;not null;index:offers_lot_id_idx;uniqueIndex:offers_lot_user_key"`
	UserID   uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index:offers_user_id_idx;uniqueIndex:offers_lot_user_key"`
	Quantity int               `gorm:"column:quantity;not null"`
	Status   enums.OfferStatus `gorm:"column:status;type:text;not null;default:pending"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = enums.OfferStatusPending
	}
	return nil
}
