package offers

import (
	"testing"

	"github.com/gobrick/brickpool-backend/pkg/db/models"
	"github.com/gobrick/brickpool-backend/pkg/enums"
	"github.com/google/uuid"
)

func TestComputeLotAggregate(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	other := uuid.New()

	offers := []models.Offer{
		{UserID: other, Quantity: 4, Status: enums.OfferStatusPending},
		{UserID: caller, Quantity: 3, Status: enums.OfferStatusAccepted},
		{UserID: uuid.New(), Quantity: 9, Status: enums.OfferStatusRejected},
	}

	agg := ComputeLotAggregate(10, offers, caller)
	if agg.TotalOffered != 7 {
		t.Fatalf("expected total 7, got %d", agg.TotalOffered)
	}
	if agg.RemainingQuantity != 3 {
		t.Fatalf("expected remaining 3, got %d", agg.RemainingQuantity)
	}
	if agg.OffersCount != 2 {
		t.Fatalf("expected 2 counted offers, got %d", agg.OffersCount)
	}
	if agg.MyPendingQuantity != 3 {
		t.Fatalf("expected my pending 3, got %d", agg.MyPendingQuantity)
	}
}

func TestComputeLotAggregateClampsRemaining(t *testing.T) {
	t.Parallel()

	offers := []models.Offer{
		{UserID: uuid.New(), Quantity: 6, Status: enums.OfferStatusPending},
		{UserID: uuid.New(), Quantity: 6, Status: enums.OfferStatusPending},
	}

	agg := ComputeLotAggregate(10, offers, uuid.Nil)
	if agg.TotalOffered != 12 || agg.RemainingQuantity != 0 {
		t.Fatalf("expected clamped remaining, got %+v", agg)
	}
	if agg.MyPendingQuantity != 0 {
		t.Fatalf("anonymous caller should have no pending quantity")
	}
}

func TestClampQuantity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		requested int
		lotQty    int
		others    int
		want      int
	}{
		{"fits", 3, 10, 2, 3},
		{"clamped to available", 5, 10, 6, 4},
		{"floor of one on saturated lot", 2, 3, 3, 1},
		{"exact fit", 4, 10, 6, 4},
	}
	for _, tc := range cases {
		if got := clampQuantity(tc.requested, tc.lotQty, tc.others); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}
