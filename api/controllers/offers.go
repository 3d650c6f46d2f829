package controllers

import (
	"context"
	"net/http"

	"github.com/gobrick/brickpool-backend/api/responses"
	"github.com/gobrick/brickpool-backend/internal/offers"
	"github.com/gobrick/brickpool-backend/pkg/logger"
	"github.com/google/uuid"
)

// OfferedService exposes the caller's own pledge listing.
type OfferedService interface {
	MyOffered(ctx context.Context, callerID uuid.UUID) ([]offers.OfferedLotDTO, error)
}

// OffersMine lists every lot the caller holds a pledge on.
func OffersMine(svc OfferedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		mine, err := svc.MyOffered(ctx, caller)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, mine)
	}
}
