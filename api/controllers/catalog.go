package controllers

import (
	"context"
	"net/http"

	"github.com/gobrick/brickpool-backend/api/responses"
	"github.com/gobrick/brickpool-backend/api/validators"
	"github.com/gobrick/brickpool-backend/internal/catalog"
	pkgerrors "github.com/gobrick/brickpool-backend/pkg/errors"
	"github.com/gobrick/brickpool-backend/pkg/logger"
)

// CatalogService is the part-catalog proxy surface consumed by controllers.
type CatalogService interface {
	Search(ctx context.Context, query string) ([]catalog.PartDTO, error)
	PartsByNums(ctx context.Context, rawNums string) ([]catalog.PartDTO, error)
	PartImages(ctx context.Context, input catalog.PartImagesInput) (catalog.PartImagesResult, error)
}

// CatalogSearch proxies a free-text part search.
func CatalogSearch(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		parts, err := svc.Search(ctx, r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, parts)
	}
}

// CatalogPartsByNum fetches exact catalog records for the nums query.
func CatalogPartsByNum(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		parts, err := svc.PartsByNums(ctx, r.URL.Query().Get("nums"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, parts)
	}
}

// CatalogPartImages resolves cached image URLs for part/color pairs.
func CatalogPartImages(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload catalog.PartImagesInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		images, err := svc.PartImages(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, images)
	}
}
