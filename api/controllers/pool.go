package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gobrick/brickpool-backend/api/responses"
	"github.com/gobrick/brickpool-backend/api/validators"
	"github.com/gobrick/brickpool-backend/internal/offers"
	"github.com/gobrick/brickpool-backend/internal/pool"
	"github.com/gobrick/brickpool-backend/pkg/enums"
	pkgerrors "github.com/gobrick/brickpool-backend/pkg/errors"
	"github.com/gobrick/brickpool-backend/pkg/logger"
	"github.com/google/uuid"
)

// PoolService is the pool read surface consumed by controllers.
type PoolService interface {
	PublicLots(ctx context.Context, callerID uuid.UUID, sortBy enums.PoolSort) ([]pool.PoolLotDTO, error)
}

// ReconcileService is the offer toggle surface consumed by controllers.
type ReconcileService interface {
	Reconcile(ctx context.Context, callerID, lotID uuid.UUID, requested int) (*offers.ReconcileResult, error)
}

type poolOfferPayload struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=9999"`
}

// PoolLots serves the public pool, sorted by part or by owner.
func PoolLots(svc PoolService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pool service unavailable"))
			return
		}

		sortBy, err := enums.ParsePoolSort(strings.TrimSpace(r.URL.Query().Get("sort")))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort"))
			return
		}

		lots, err := svc.PublicLots(ctx, optionalCallerID(ctx), sortBy)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, lots)
	}
}

// PoolOffer reconciles the caller's pledge on a lot. Quantity zero withdraws.
func PoolOffer(svc ReconcileService, logg *logger.Logger) http.HandlerFunc {
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

		lotID, err := validators.PathUUID(r, "lotID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload poolOfferPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Reconcile(ctx, caller, lotID, *payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
