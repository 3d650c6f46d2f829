package pool

import (
	"context"
	"errors"
	"sort"

	"github.com/gobrick/brickpool-backend/internal/offers"
	"github.com/gobrick/brickpool-backend/pkg/enums"
	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ServiceParams groups dependencies for the pool service.
type ServiceParams struct {
	Repo Repository
}

// Service builds the public pool view.
type Service struct {
	repo Repository
}

// NewService builds a pool service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// PublicLots returns every lot of every public list with its pledge
// aggregates. callerID may be uuid.Nil for anonymous browsing; it only
// affects MyPendingQuantity and the IsOwn flag. Ordering is collation-aware
// so accented part and owner names sort the way traders expect.
func (s *Service) PublicLots(ctx context.Context, callerID uuid.UUID, sortBy enums.PoolSort) ([]PoolLotDTO, error) {
	rows, err := s.repo.PublicLots(ctx)
	if err != nil {
		return nil, err
	}

	lotIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		lotIDs = append(lotIDs, row.LotID)
	}
	offersByLot, err := s.repo.OffersByLots(ctx, lotIDs)
	if err != nil {
		return nil, err
	}

	out := make([]PoolLotDTO, 0, len(rows))
	for _, row := range rows {
		agg := offers.ComputeLotAggregate(row.Quantity, offersByLot[row.LotID], callerID)
		out = append(out, PoolLotDTO{
			LotID:             row.LotID,
			ListID:            row.ListID,
			ListName:          row.ListName,
			OwnerID:           row.OwnerID,
			OwnerName:         row.OwnerName,
			PartNum:           row.PartNum,
			PartName:          row.PartName,
			ColorName:         row.ColorName,
			Quantity:          row.Quantity,
			TotalOffered:      agg.TotalOffered,
			RemainingQuantity: agg.RemainingQuantity,
			OffersCount:       agg.OffersCount,
			MyPendingQuantity: agg.MyPendingQuantity,
			IsOwn:             callerID != uuid.Nil && row.OwnerID == callerID,
		})
	}

	sortPoolLots(out, sortBy)
	return out, nil
}

func sortPoolLots(lots []PoolLotDTO, sortBy enums.PoolSort) {
	collator := collate.New(language.Spanish, collate.IgnoreCase)

	partLabel := func(lot PoolLotDTO) string {
		if lot.PartName != nil && *lot.PartName != "" {
			return *lot.PartName
		}
		return lot.PartNum
	}

	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i], lots[j]
		if sortBy == enums.PoolSortOwner {
			if cmp := collator.CompareString(a.OwnerName, b.OwnerName); cmp != 0 {
				return cmp < 0
			}
		}
		if cmp := collator.CompareString(partLabel(a), partLabel(b)); cmp != 0 {
			return cmp < 0
		}
		return a.PartNum < b.PartNum
	})
}
