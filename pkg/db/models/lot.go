package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lot is one requested line item inside a list: a part, an optional color,
// and the quantity the owner still wants.
type Lot struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ListID    uuid.UUID `gorm:"column:list_id;type:uuid;not null;index:lots_list_id_idx"`
	PartNum   string    `gorm:"column:part_num;type:text;not null"`
	PartName  *string   `gorm:"column:part_name;type:text"`
	ColorName *string   `gorm:"column:color_name;type:text"`
	Quantity  int       `gorm:"column:quantity;not null"`

	Offers []Offer `gorm:"foreignKey:LotID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (l *Lot) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
