package controllers

import (
	"context"
	"net/http"

	"github.com/gobrick/brickpool-backend/api/responses"
	"github.com/gobrick/brickpool-backend/api/validators"
	"github.com/gobrick/brickpool-backend/internal/lists"
	"github.com/gobrick/brickpool-backend/internal/offers"
	pkgerrors "github.com/gobrick/brickpool-backend/pkg/errors"
	"github.com/gobrick/brickpool-backend/pkg/logger"
	"github.com/google/uuid"
)

// ListService is the want-list management surface consumed by controllers.
type ListService interface {
	CreateList(ctx context.Context, ownerID uuid.UUID, input lists.CreateListInput) (*lists.ListDTO, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]lists.ListDTO, error)
	SetVisibility(ctx context.Context, callerID, listID uuid.UUID, isPublic bool) (*lists.ListDTO, error)
	DeleteList(ctx context.Context, callerID, listID uuid.UUID) error
	AddLot(ctx context.Context, callerID, listID uuid.UUID, input lists.AddLotInput) (*lists.LotDTO, error)
	ListLots(ctx context.Context, callerID, listID uuid.UUID) ([]lists.LotDTO, error)
}

// OwnerSummaryService exposes the owner-facing pledge summary.
type OwnerSummaryService interface {
	OwnerSummary(ctx context.Context, callerID, listID uuid.UUID) (offers.OwnerSummaryDTO, error)
}

type listVisibilityPayload struct {
	IsPublic *bool `json:"is_public" validate:"required"`
}

// ListsList returns the caller's lists with their lots.
func ListsList(svc ListService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		mine, err := svc.ListMine(ctx, caller)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, mine)
	}
}

// ListsCreate creates a new want list.
func ListsCreate(svc ListService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload lists.CreateListInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		created, err := svc.CreateList(ctx, caller, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ListVisibility publishes or hides a list in the pool.
func ListVisibility(svc ListService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listID, err := validators.PathUUID(r, "listID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload listVisibilityPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		updated, err := svc.SetVisibility(ctx, caller, listID, *payload.IsPublic)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// ListDelete removes a list together with its lots and offers.
func ListDelete(svc ListService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listID, err := validators.PathUUID(r, "listID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteList(ctx, caller, listID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ListLots returns the lots of one of the caller's lists.
func ListLots(svc ListService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listID, err := validators.PathUUID(r, "listID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		lotRows, err := svc.ListLots(ctx, caller, listID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, lotRows)
	}
}

// ListLotsCreate appends a lot to one of the caller's lists.
func ListLotsCreate(svc ListService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listID, err := validators.PathUUID(r, "listID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload lists.AddLotInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		created, err := svc.AddLot(ctx, caller, listID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ListOffers returns the pledge summary for the caller's list, keyed by lot.
func ListOffers(svc OwnerSummaryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}

		caller, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listID, err := validators.PathUUID(r, "listID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		summary, err := svc.OwnerSummary(ctx, caller, listID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
