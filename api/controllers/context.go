package controllers

import (
	"context"

	"github.com/gobrick/brickpool-backend/api/middleware"
	pkgerrors "github.com/gobrick/brickpool-backend/pkg/errors"
	"github.com/google/uuid"
)

func callerID(ctx context.Context) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing caller identity")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid caller identity")
	}
	return id, nil
}

// optionalCallerID returns uuid.Nil for anonymous requests.
func optionalCallerID(ctx context.Context) uuid.UUID {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
