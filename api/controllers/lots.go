package controllers

import (
	"context"
	"net/http"

	"github.com/gobrick/brickpool-backend/api/responses"
	"github.com/gobrick/brickpool-backend/api/validators"
	"github.com/gobrick/brickpool-backend/internal/lists"
	"github.com/gobrick/brickpool-backend/pkg/logger"
	"github.com/google/uuid"
)

// LotService is the lot management surface consumed by controllers.
type LotService interface {
	UpdateLot(ctx context.Context, callerID, lotID uuid.UUID, input lists.UpdateLotInput) (*lists.LotDTO, error)
	DeleteLot(ctx context.Context, callerID, lotID uuid.UUID) error
}

// LotUpdate patches a lot the caller owns.
func LotUpdate(svc LotService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
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

		var payload lists.UpdateLotInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		updated, err := svc.UpdateLot(ctx, caller, lotID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// LotDelete removes a lot and its offers.
func LotDelete(svc LotService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
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

		if err := svc.DeleteLot(ctx, caller, lotID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
