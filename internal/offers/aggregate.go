package offers

import (
	"github.com/gobrick/brickpool-backend/pkg/db/models"
	"github.com/google/uuid"
)

// LotAggregate is the derived pledge state of one lot. Every surface that
// reports totals (reconcile responses, the public pool, owner summaries)
// must go through this computation so readers never observe two different
// notions of "remaining".
type LotAggregate struct {
	TotalOffered      int
	RemainingQuantity int
	OffersCount       int
	MyPendingQuantity int
}

// ComputeLotAggregate folds the offers on a lot into its derived totals.
// Rejected offers are history only and never counted. Pass uuid.Nil as
// callerID for anonymous reads; MyPendingQuantity stays zero.
func ComputeLotAggregate(lotQuantity int, offers []models.Offer, callerID uuid.UUID) LotAggregate {
	var agg LotAggregate
	for _, offer := range offers {
		if !offer.Status.CountsTowardAggregate() {
			continue
		}
		agg.TotalOffered += offer.Quantity
		agg.OffersCount++
		if callerID != uuid.Nil && offer.UserID == callerID {
			agg.MyPendingQuantity = offer.Quantity
		}
	}
	agg.RemainingQuantity = lotQuantity - agg.TotalOffered
	if agg.RemainingQuantity < 0 {
		agg.RemainingQuantity = 0
	}
	return agg
}
