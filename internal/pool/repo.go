package pool

import (
	"context"

	"github.com/gobrick/brickpool-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository reads the public side of the pool.
type Repository interface {
	PublicLots(ctx context.Context) ([]PublicLotRow, error)
	OffersByLots(ctx context.Context, lotIDs []uuid.UUID) (map[uuid.UUID][]models.Offer, error)
}

// PublicLotRow is one lot belonging to a public list, joined with its list
// and owner.
type PublicLotRow struct {
	LotID     uuid.UUID
	ListID    uuid.UUID
	ListName  string
	OwnerID   uuid.UUID
	OwnerName string
	PartNum   string
	PartName  *string
	ColorName *string
	Quantity  int
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a pool repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) PublicLots(ctx context.Context) ([]PublicLotRow, error) {
	var rows []PublicLotRow
	err := r.db.WithContext(ctx).
		Model(&models.Lot{}).
		Select(`lots.id AS lot_id,
			lists.id AS list_id,
			lists.name AS list_name,
			users.id AS owner_id,
			users.display_name AS owner_name,
			lots.part_num AS part_num,
			lots.part_name AS part_name,
			lots.color_name AS color_name,
			lots.quantity AS quantity`).
		Joins("JOIN lists ON lists.id = lots.list_id").
		Joins("JOIN users ON users.id = lists.owner_id").
		Where("lists.is_public = ?", true).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) OffersByLots(ctx context.Context, lotIDs []uuid.UUID) (map[uuid.UUID][]models.Offer, error) {
	grouped := make(map[uuid.UUID][]models.Offer, len(lotIDs))
	if len(lotIDs) == 0 {
		return grouped, nil
	}
	var rows []models.Offer
	if err := r.db.WithContext(ctx).
		Where("lot_id IN ?", lotIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, offer := range rows {
		grouped[offer.LotID] = append(grouped[offer.LotID], offer)
	}
	return grouped, nil
}
