package lists

import (
	"context"
	"errors"

	"github.com/gobrick/brickpool-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles list persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, list *models.List) error
	FindByID(ctx context.Context, listID uuid.UUID) (*models.List, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.List, error)
	Update(ctx context.Context, list *models.List) error
	Delete(ctx context.Context, listID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a list repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, list *models.List) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *repository) FindByID(ctx context.Context, listID uuid.UUID) (*models.List, error) {
	var list models.List
	if err := r.db.WithContext(ctx).Where("id = ?", listID).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.List, error) {
	var rows []models.List
	if err := r.db.WithContext(ctx).
		Preload("Lots", func(db *gorm.DB) *gorm.DB {
			return db.Order("lots.created_at ASC")
		}).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Update(ctx context.Context, list *models.List) error {
	return r.db.WithContext(ctx).Save(list).Error
}

func (r *repository) Delete(ctx context.Context, listID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.List{}, "id = ?", listID).Error
}
