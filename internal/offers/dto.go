package offers

import (
	"time"

	"github.com/gobrick/brickpool-backend/pkg/enums"
	"github.com/google/uuid"
)

// Action describes what the reconciler did with the caller's offer.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ReconcileResult is the aggregate state returned after a toggle. The client
// merges it into its local view without a full reload, so it must follow the
// exact same computation as the pool read path.
type ReconcileResult struct {
	Action            Action `json:"action"`
	AppliedQuantity   int    `json:"applied_quantity"`
	TotalOffered      int    `json:"total_offered"`
	RemainingQuantity int    `json:"remaining_quantity"`
	OffersCount       int    `json:"offers_count"`
	MyPendingQuantity int    `json:"my_pending_quantity"`
}

// UserOfferDTO is one pledger's line in an owner-facing summary.
type UserOfferDTO struct {
	DisplayName string `json:"display_name"`
	Quantity    int    `json:"quantity"`
}

// LotOfferSummaryDTO aggregates the pledges on one lot for its owner.
type LotOfferSummaryDTO struct {
	OffersCount   int            `json:"offers_count"`
	TotalQuantity int            `json:"total_quantity"`
	ByUser        []UserOfferDTO `json:"by_user"`
}

// OwnerSummaryDTO maps lot ids to their pledge summaries.
type OwnerSummaryDTO map[uuid.UUID]LotOfferSummaryDTO

// OfferedLotDTO is one row of the caller's "pieces I offered" view.
type OfferedLotDTO struct {
	LotID         uuid.UUID         `json:"lot_id"`
	PartNum       string            `json:"part_num"`
	PartName      *string           `json:"part_name"`
	ColorName     *string           `json:"color_name"`
	OwnerName     string            `json:"owner_name"`
	TotalQuantity int               `json:"total_quantity"`
	OffersCount   int               `json:"offers_count"`
	LastStatus    enums.OfferStatus `json:"last_status"`
	OfferedAt     time.Time         `json:"offered_at"`
}
