package lists

import (
	"time"

	"github.com/google/uuid"
)

// CreateListInput is the payload for creating a want list.
type CreateListInput struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	IsPublic bool   `json:"is_public"`
}

// AddLotInput is the payload for adding a lot to a list.
type AddLotInput struct {
	PartNum   string  `json:"part_num" validate:"required,min=1,max=32"`
	PartName  *string `json:"part_name" validate:"omitempty,max=255"`
	ColorName *string `json:"color_name" validate:"omitempty,max=64"`
	Quantity  int     `json:"quantity" validate:"required,min=1,max=9999"`
}

// UpdateLotInput is the patch payload for a lot. Nil fields are left as-is.
type UpdateLotInput struct {
	PartName  *string `json:"part_name" validate:"omitempty,max=255"`
	ColorName *string `json:"color_name" validate:"omitempty,max=64"`
	Quantity  *int    `json:"quantity" validate:"omitempty,min=1,max=9999"`
}

// LotDTO is one lot row as returned to the list owner.
type LotDTO struct {
	ID        uuid.UUID `json:"id"`
	ListID    uuid.UUID `json:"list_id"`
	PartNum   string    `json:"part_num"`
	PartName  *string   `json:"part_name"`
	ColorName *string   `json:"color_name"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListDTO is one want list with its lots.
type ListDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsPublic  bool      `json:"is_public"`
	Lots      []LotDTO  `json:"lots"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
