package offers

import (
	"context"
	"time"

	"github.com/gobrick/brickpool-backend/pkg/db/models"
	"github.com/gobrick/brickpool-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles offer persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	LockLot(ctx context.Context, lotID uuid.UUID) (*models.Lot, error)
	LotOwner(ctx context.Context, lotID uuid.UUID) (uuid.UUID, error)
	ListByLot(ctx context.Context, lotID uuid.UUID) ([]models.Offer, error)
	Create(ctx context.Context, offer *models.Offer) error
	Update(ctx context.Context, offer *models.Offer) error
	Delete(ctx context.Context, offerID uuid.UUID) error
	OwnerSummaryRows(ctx context.Context, listID uuid.UUID) ([]OwnerSummaryRow, error)
	OfferedLotRows(ctx context.Context, userID uuid.UUID) ([]OfferedLotRow, error)
}

// OwnerSummaryRow is one pledge on one lot of an owner's list.
type OwnerSummaryRow struct {
	LotID       uuid.UUID
	DisplayName string
	Quantity    int
	Status      enums.OfferStatus
}

// OfferedLotRow is one lot the user holds a pledge on, joined with its list
// owner and the lot's live offer count.
type OfferedLotRow struct {
	LotID       uuid.UUID
	PartNum     string
	PartName    *string
	ColorName   *string
	OwnerName   string
	Quantity    int
	Status      enums.OfferStatus
	OffersCount int
	CreatedAt   time.Time
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an offer repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// LockLot loads the lot row and, on Postgres, takes a FOR UPDATE lock so
// concurrent reconciles on the same lot serialize. SQLite serializes writers
// on its own and rejects the locking clause.
func (r *repository) LockLot(ctx context.Context, lotID uuid.UUID) (*models.Lot, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var lot models.Lot
	if err := query.Where("id = ?", lotID).First(&lot).Error; err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *repository) LotOwner(ctx context.Context, lotID uuid.UUID) (uuid.UUID, error) {
	var ownerID uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Lot{}).
		Select("lists.owner_id").
		Joins("JOIN lists ON lists.id = lots.list_id").
		Where("lots.id = ?", lotID).
		Scan(&ownerID).Error
	if err != nil {
		return uuid.Nil, err
	}
	if ownerID == uuid.Nil {
		return uuid.Nil, gorm.ErrRecordNotFound
	}
	return ownerID, nil
}

func (r *repository) ListByLot(ctx context.Context, lotID uuid.UUID) ([]models.Offer, error) {
	var rows []models.Offer
	if err := r.db.WithContext(ctx).
		Where("lot_id = ?", lotID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Create(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *repository) Update(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Save(offer).Error
}

func (r *repository) Delete(ctx context.Context, offerID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Offer{}, "id = ?", offerID).Error
}

func (r *repository) OwnerSummaryRows(ctx context.Context, listID uuid.UUID) ([]OwnerSummaryRow, error) {
	var rows []OwnerSummaryRow
	err := r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Select("offers.lot_id AS lot_id, users.display_name AS display_name, offers.quantity AS quantity, offers.status AS status").
		Joins("JOIN lots ON lots.id = offers.lot_id").
		Joins("JOIN users ON users.id = offers.user_id").
		Where("lots.list_id = ?", listID).
		Where("offers.status IN ?", countedStatuses()).
		Order("offers.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) OfferedLotRows(ctx context.Context, userID uuid.UUID) ([]OfferedLotRow, error) {
	var rows []OfferedLotRow
	err := r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Select(`offers.lot_id AS lot_id,
			lots.part_num AS part_num,
			lots.part_name AS part_name,
			lots.color_name AS color_name,
			users.display_name AS owner_name,
			offers.quantity AS quantity,
			offers.status AS status,
			offers.created_at AS created_at,
			(SELECT COUNT(*) FROM offers peers WHERE peers.lot_id = offers.lot_id AND peers.status IN ('pending', 'accepted')) AS offers_count`).
		Joins("JOIN lots ON lots.id = offers.lot_id").
		Joins("JOIN lists ON lists.id = lots.list_id").
		Joins("JOIN users ON users.id = lists.owner_id").
		Where("offers.user_id = ?", userID).
		Order("offers.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func countedStatuses() []enums.OfferStatus {
	return []enums.OfferStatus{enums.OfferStatusPending, enums.OfferStatusAccepted}
}
