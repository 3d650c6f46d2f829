package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gobrick/brickpool-backend/pkg/db/models"
	apperrors "github.com/gobrick/brickpool-backend/pkg/errors"
	"github.com/google/uuid"
)

// ServiceParams groups dependencies for the user service.
type ServiceParams struct {
	Repo Repository
}

// Service mirrors identity-provider users into the local store.
type Service struct {
	repo Repository
}

// NewService builds a user service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// Ensure records the authenticated identity locally, creating or refreshing
// the row as needed. Called once per authenticated request path that writes.
func (s *Service) Ensure(ctx context.Context, userID uuid.UUID, displayName string) error {
	if userID == uuid.Nil {
		return apperrors.New(apperrors.CodeUnauthorized, "missing caller identity")
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = "trader-" + userID.String()[:8]
	}
	return s.repo.Upsert(ctx, &models.User{
		ID:          userID,
		Email:       fmt.Sprintf("%s@users.brickpool.local", userID),
		DisplayName: displayName,
	})
}

// Get returns the stored profile for a user id.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
	}
	return user, nil
}
