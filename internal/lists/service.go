package lists

import (
	"context"
	"errors"
	"strings"

	"github.com/gobrick/brickpool-backend/pkg/db/models"
	apperrors "github.com/gobrick/brickpool-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the list service.
type ServiceParams struct {
	Repo    Repository
	LotRepo LotRepository
	Tx      TxRunner
}

// Service orchestrates want-list and lot management for owners.
type Service struct {
	repo    Repository
	lotRepo LotRepository
	tx      TxRunner
}

// NewService builds a list service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.LotRepo == nil {
		return nil, errors.New("lot repo is required")
	}
	if params.Tx == nil {
		return nil, errors.New("tx runner is required")
	}
	return &Service{repo: params.Repo, lotRepo: params.LotRepo, tx: params.Tx}, nil
}

// CreateList creates a want list for the caller. Lists start private unless
// the caller opts into visibility at creation time.
func (s *Service) CreateList(ctx context.Context, ownerID uuid.UUID, input CreateListInput) (*ListDTO, error) {
	if ownerID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "missing caller identity")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "list name is required")
	}

	list := &models.List{
		OwnerID:  ownerID,
		Name:     name,
		IsPublic: input.IsPublic,
	}
	if err := s.repo.Create(ctx, list); err != nil {
		return nil, err
	}
	dto := toListDTO(*list, nil)
	return &dto, nil
}

// ListMine returns the caller's lists with their lots, newest list first.
func (s *Service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]ListDTO, error) {
	if ownerID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "missing caller identity")
	}
	rows, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]ListDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toListDTO(row, row.Lots))
	}
	return out, nil
}

// SetVisibility publishes or hides a list in the public pool.
func (s *Service) SetVisibility(ctx context.Context, callerID, listID uuid.UUID, isPublic bool) (*ListDTO, error) {
	list, err := s.ownedList(ctx, callerID, listID)
	if err != nil {
		return nil, err
	}
	list.IsPublic = isPublic
	if err := s.repo.Update(ctx, list); err != nil {
		return nil, err
	}
	dto := toListDTO(*list, nil)
	return &dto, nil
}

// DeleteList removes a list together with its lots and their offers.
func (s *Service) DeleteList(ctx context.Context, callerID, listID uuid.UUID) error {
	if _, err := s.ownedList(ctx, callerID, listID); err != nil {
		return err
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		lotRepo := s.lotRepo.WithTx(tx)
		if err := lotRepo.DeleteOffersByList(ctx, listID); err != nil {
			return err
		}
		if err := lotRepo.DeleteByList(ctx, listID); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(ctx, listID)
	})
}

// AddLot appends a lot to one of the caller's lists.
func (s *Service) AddLot(ctx context.Context, callerID, listID uuid.UUID, input AddLotInput) (*LotDTO, error) {
	if _, err := s.ownedList(ctx, callerID, listID); err != nil {
		return nil, err
	}
	partNum := strings.TrimSpace(input.PartNum)
	if partNum == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "part number is required")
	}
	if input.Quantity < 1 {
		return nil, apperrors.New(apperrors.CodeValidation, "quantity must be at least 1")
	}

	lot := &models.Lot{
		ListID:    listID,
		PartNum:   partNum,
		PartName:  input.PartName,
		ColorName: input.ColorName,
		Quantity:  input.Quantity,
	}
	if err := s.lotRepo.Create(ctx, lot); err != nil {
		return nil, err
	}
	dto := toLotDTO(*lot)
	return &dto, nil
}

// ListLots returns the lots of one of the caller's lists.
func (s *Service) ListLots(ctx context.Context, callerID, listID uuid.UUID) ([]LotDTO, error) {
	if _, err := s.ownedList(ctx, callerID, listID); err != nil {
		return nil, err
	}
	rows, err := s.lotRepo.ListByList(ctx, listID)
	if err != nil {
		return nil, err
	}
	out := make([]LotDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toLotDTO(row))
	}
	return out, nil
}

// UpdateLot patches a lot the caller owns. Shrinking the quantity below the
// pledged total is allowed; derived remaining clamps to zero on read.
func (s *Service) UpdateLot(ctx context.Context, callerID, lotID uuid.UUID, input UpdateLotInput) (*LotDTO, error) {
	lot, err := s.ownedLot(ctx, callerID, lotID)
	if err != nil {
		return nil, err
	}
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, apperrors.New(apperrors.CodeValidation, "quantity must be at least 1")
		}
		lot.Quantity = *input.Quantity
	}
	if input.PartName != nil {
		lot.PartName = input.PartName
	}
	if input.ColorName != nil {
		lot.ColorName = input.ColorName
	}
	if err := s.lotRepo.Update(ctx, lot); err != nil {
		return nil, err
	}
	dto := toLotDTO(*lot)
	return &dto, nil
}

// DeleteLot removes a lot and every offer pledged against it.
func (s *Service) DeleteLot(ctx context.Context, callerID, lotID uuid.UUID) error {
	if _, err := s.ownedLot(ctx, callerID, lotID); err != nil {
		return err
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		lotRepo := s.lotRepo.WithTx(tx)
		if err := lotRepo.DeleteOffersByLot(ctx, lotID); err != nil {
			return err
		}
		return lotRepo.Delete(ctx, lotID)
	})
}

func (s *Service) ownedList(ctx context.Context, callerID, listID uuid.UUID) (*models.List, error) {
	if callerID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "missing caller identity")
	}
	list, err := s.repo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "list not found")
	}
	if list.OwnerID != callerID {
		return nil, apperrors.New(apperrors.CodeForbidden, "list belongs to another user")
	}
	return list, nil
}

func (s *Service) ownedLot(ctx context.Context, callerID, lotID uuid.UUID) (*models.Lot, error) {
	if callerID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "missing caller identity")
	}
	lot, err := s.lotRepo.FindByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "lot not found")
	}
	list, err := s.repo.FindByID(ctx, lot.ListID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "list not found")
	}
	if list.OwnerID != callerID {
		return nil, apperrors.New(apperrors.CodeForbidden, "lot belongs to another user")
	}
	return lot, nil
}

func toListDTO(list models.List, lots []models.Lot) ListDTO {
	dto := ListDTO{
		ID:        list.ID,
		Name:      list.Name,
		IsPublic:  list.IsPublic,
		Lots:      make([]LotDTO, 0, len(lots)),
		CreatedAt: list.CreatedAt,
		UpdatedAt: list.UpdatedAt,
	}
	for _, lot := range lots {
		dto.Lots = append(dto.Lots, toLotDTO(lot))
	}
	return dto
}

func toLotDTO(lot models.Lot) LotDTO {
	return LotDTO{
		ID:        lot.ID,
		ListID:    lot.ListID,
		PartNum:   lot.PartNum,
		PartName:  lot.PartName,
		ColorName: lot.ColorName,
		Quantity:  lot.Quantity,
		CreatedAt: lot.CreatedAt,
		UpdatedAt: lot.UpdatedAt,
	}
}
