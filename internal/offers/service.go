package offers

import (
	"context"
	"errors"

	"github.com/gobrick/brickpool-backend/pkg/db"
	"github.com/gobrick/brickpool-backend/pkg/db/models"
	"github.com/gobrick/brickpool-backend/pkg/enums"
	apperrors "github.com/gobrick/brickpool-backend/pkg/errors"
	"github.com/gobrick/brickpool-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultReconcileRetries = 3

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ListFinder resolves lists for ownership checks.
type ListFinder interface {
	FindByID(ctx context.Context, listID uuid.UUID) (*models.List, error)
}

// ServiceParams groups dependencies for the offer service.
type ServiceParams struct {
	Repo       Repository
	Lists      ListFinder
	Tx         TxRunner
	Logger     *logger.Logger
	MaxRetries int
}

// Service orchestrates pledge reconciliation and offer reads.
type Service struct {
	repo       Repository
	lists      ListFinder
	tx         TxRunner
	logg       *logger.Logger
	maxRetries int
}

// NewService builds an offer service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Lists == nil {
		return nil, errors.New("list finder is required")
	}
	if params.Tx == nil {
		return nil, errors.New("tx runner is required")
	}
	retries := params.MaxRetries
	if retries <= 0 {
		retries = defaultReconcileRetries
	}
	return &Service{
		repo:       params.Repo,
		lists:      params.Lists,
		tx:         params.Tx,
		logg:       params.Logger,
		maxRetries: retries,
	}, nil
}

// Reconcile applies the caller's desired quantity against a lot in a single
// transaction. A requested quantity of zero withdraws the caller's pledge and
// is idempotent; any positive quantity creates or resizes it, clamped to what
// the lot can still absorb. The returned aggregates are computed inside the
// same transaction the mutation committed in.
func (s *Service) Reconcile(ctx context.Context, callerID, lotID uuid.UUID, requested int) (*ReconcileResult, error) {
	if callerID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "missing caller identity")
	}
	if requested < 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "quantity must be zero or greater")
	}

	var result *ReconcileResult
	for attempt := 1; ; attempt++ {
		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			res, err := s.reconcileTx(ctx, s.repo.WithTx(tx), callerID, lotID, requested)
			if err != nil {
				return err
			}
			result = res
			return nil
		})
		if err == nil {
			return result, nil
		}
		if !db.IsSerializationFailure(err) {
			return nil, err
		}
		if attempt >= s.maxRetries {
			return nil, apperrors.Wrap(apperrors.CodeConcurrency, err, "lot is being reconciled concurrently")
		}
		if s.logg != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"lot_id":  lotID,
				"attempt": attempt,
			}), "retrying offer reconcile after transaction conflict")
		}
	}
}

func (s *Service) reconcileTx(ctx context.Context, repo Repository, callerID, lotID uuid.UUID, requested int) (*ReconcileResult, error) {
	lot, err := repo.LockLot(ctx, lotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "lot not found")
		}
		return nil, err
	}

	ownerID, err := repo.LotOwner(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if ownerID == callerID {
		return nil, apperrors.New(apperrors.CodeOwnerPledge, "owners cannot offer on their own lots")
	}

	existing, err := repo.ListByLot(ctx, lotID)
	if err != nil {
		return nil, err
	}

	var mine *models.Offer
	othersCounted := 0
	othersAccepted := 0
	for i := range existing {
		offer := &existing[i]
		if offer.UserID == callerID {
			mine = offer
			continue
		}
		if offer.Status.CountsTowardAggregate() {
			othersCounted += offer.Quantity
			if offer.Status == enums.OfferStatusAccepted {
				othersAccepted += offer.Quantity
			}
		}
	}

	action := ActionDeleted
	applied := 0

	if requested == 0 {
		if mine != nil {
			if mine.Status == enums.OfferStatusAccepted {
				return nil, apperrors.New(apperrors.CodeLotLocked, "accepted offers can only be released by the lot owner")
			}
			if err := repo.Delete(ctx, mine.ID); err != nil {
				return nil, err
			}
		}
	} else {
		if mine != nil && mine.Status == enums.OfferStatusAccepted {
			return nil, apperrors.New(apperrors.CodeLotLocked, "accepted offers can only be resized by the lot owner")
		}
		if othersAccepted >= lot.Quantity {
			return nil, apperrors.New(apperrors.CodeLotLocked, "lot is fully covered by accepted offers")
		}

		applied = clampQuantity(requested, lot.Quantity, othersCounted)

		if mine != nil {
			// Re-pledging over a rejected offer reopens the same row.
			action = ActionUpdated
			if mine.Status == enums.OfferStatusRejected {
				action = ActionCreated
			}
			mine.Quantity = applied
			mine.Status = enums.OfferStatusPending
			if err := repo.Update(ctx, mine); err != nil {
				return nil, err
			}
		} else {
			action = ActionCreated
			offer := &models.Offer{
				LotID:    lotID,
				UserID:   callerID,
				Quantity: applied,
				Status:   enums.OfferStatusPending,
			}
			if err := repo.Create(ctx, offer); err != nil {
				return nil, err
			}
		}
	}

	fresh, err := repo.ListByLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	agg := ComputeLotAggregate(lot.Quantity, fresh, callerID)

	return &ReconcileResult{
		Action:            action,
		AppliedQuantity:   applied,
		TotalOffered:      agg.TotalOffered,
		RemainingQuantity: agg.RemainingQuantity,
		OffersCount:       agg.OffersCount,
		MyPendingQuantity: agg.MyPendingQuantity,
	}, nil
}

// clampQuantity caps the request to what the lot can still absorb. A caller
// is always allowed to hold at least one unit as long as the lot is not
// fully covered by accepted offers.
func clampQuantity(requested, lotQuantity, othersCounted int) int {
	available := lotQuantity - othersCounted
	if available < 1 {
		available = 1
	}
	if requested < available {
		return requested
	}
	return available
}

// OwnerSummary aggregates the pledges on every lot of one of the caller's
// lists, grouped per lot with a per-user breakdown.
func (s *Service) OwnerSummary(ctx context.Context, callerID, listID uuid.UUID) (OwnerSummaryDTO, error) {
	if callerID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "missing caller identity")
	}
	list, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "list not found")
	}
	if list.OwnerID != callerID {
		return nil, apperrors.New(apperrors.CodeForbidden, "list belongs to another user")
	}

	rows, err := s.repo.OwnerSummaryRows(ctx, listID)
	if err != nil {
		return nil, err
	}

	summary := make(OwnerSummaryDTO, len(rows))
	for _, row := range rows {
		entry := summary[row.LotID]
		entry.OffersCount++
		entry.TotalQuantity += row.Quantity
		entry.ByUser = append(entry.ByUser, UserOfferDTO{
			DisplayName: row.DisplayName,
			Quantity:    row.Quantity,
		})
		summary[row.LotID] = entry
	}
	return summary, nil
}

// MyOffered lists every lot the caller currently holds a pledge on, newest
// first, joined with part and owner details.
func (s *Service) MyOffered(ctx context.Context, callerID uuid.UUID) ([]OfferedLotDTO, error) {
	if callerID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "missing caller identity")
	}
	rows, err := s.repo.OfferedLotRows(ctx, callerID)
	if err != nil {
		return nil, err
	}
	out := make([]OfferedLotDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, OfferedLotDTO{
			LotID:         row.LotID,
			PartNum:       row.PartNum,
			PartName:      row.PartName,
			ColorName:     row.ColorName,
			OwnerName:     row.OwnerName,
			TotalQuantity: row.Quantity,
			OffersCount:   row.OffersCount,
			LastStatus:    row.Status,
			OfferedAt:     row.CreatedAt,
		})
	}
	return out, nil
}
