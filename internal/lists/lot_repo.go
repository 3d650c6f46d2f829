package lists

import (
	"context"
	"errors"

	"github.com/gobrick/brickpool-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LotRepository handles lot persistence for list owners.
type LotRepository interface {
	WithTx(tx *gorm.DB) LotRepository
	Create(ctx context.Context, lot *models.Lot) error
	FindByID(ctx context.Context, lotID uuid.UUID) (*models.Lot, error)
	ListByList(ctx context.Context, listID uuid.UUID) ([]models.Lot, error)
	Update(ctx context.Context, lot *models.Lot) error
	Delete(ctx context.Context, lotID uuid.UUID) error
	DeleteByList(ctx context.Context, listID uuid.UUID) error
	DeleteOffersByLot(ctx context.Context, lotID uuid.UUID) error
	DeleteOffersByList(ctx context.Context, listID uuid.UUID) error
}

type lotRepository struct {
	db *gorm.DB
}

// NewLotRepository returns a lot repository bound to the provided database.
func NewLotRepository(db *gorm.DB) LotRepository {
	return &lotRepository{db: db}
}

func (r *lotRepository) WithTx(tx *gorm.DB) LotRepository {
	if tx == nil {
		return r
	}
	return &lotRepository{db: tx}
}

func (r *lotRepository) Create(ctx context.Context, lot *models.Lot) error {
	return r.db.WithContext(ctx).Create(lot).Error
}

func (r *lotRepository) FindByID(ctx context.Context, lotID uuid.UUID) (*models.Lot, error) {
	var lot models.Lot
	if err := r.db.WithContext(ctx).Where("id = ?", lotID).First(&lot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lot, nil
}

func (r *lotRepository) ListByList(ctx context.Context, listID uuid.UUID) ([]models.Lot, error) {
	var rows []models.Lot
	if err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *lotRepository) Update(ctx context.Context, lot *models.Lot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

func (r *lotRepository) Delete(ctx context.Context, lotID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Lot{}, "id = ?", lotID).Error
}

func (r *lotRepository) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Lot{}, "list_id = ?", listID).Error
}

func (r *lotRepository) DeleteOffersByLot(ctx context.Context, lotID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Offer{}, "lot_id = ?", lotID).Error
}

func (r *lotRepository) DeleteOffersByList(ctx context.Context, listID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("lot_id IN (?)", r.db.Model(&models.Lot{}).Select("id").Where("list_id = ?", listID)).
		Delete(&models.Offer{}).Error
}
