package pool

import (
	"github.com/google/uuid"
)

// PoolLotDTO is one lot of the public pool, decorated with pledge aggregates
// relative to the caller.
type PoolLotDTO struct {
	LotID             uuid.UUID `json:"lot_id"`
	ListID            uuid.UUID `json:"list_id"`
	ListName          string    `json:"list_name"`
	OwnerID           uuid.UUID `json:"owner_id"`
	OwnerName         string    `json:"owner_name"`
	PartNum           string    `json:"part_num"`
	PartName          *string   `json:"part_name"`
	ColorName         *string   `json:"color_name"`
	Quantity          int       `json:"quantity"`
	TotalOffered      int       `json:"total_offered"`
	RemainingQuantity int       `json:"remaining_quantity"`
	OffersCount       int       `json:"offers_count"`
	MyPendingQuantity int       `json:"my_pending_quantity"`
	IsOwn             bool      `json:"is_own"`
}
