package pool

import (
	"context"
	"testing"

	"github.com/gobrick/brickpool-backend/pkg/db/models"
	"github.com/gobrick/brickpool-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:pool_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.List{}, &models.Lot{}, &models.Offer{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: NewRepository(db)})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	user := models.User{Email: uuid.NewString() + "@test.local", DisplayName: name}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user.ID
}

func seedListWithLot(t *testing.T, db *gorm.DB, ownerID uuid.UUID, public bool, partNum, partName string, qty int) uuid.UUID {
	t.Helper()
	list := models.List{OwnerID: ownerID, Name: "wants", IsPublic: public}
	if err := db.Create(&list).Error; err != nil {
		t.Fatalf("seed list: %v", err)
	}
	lot := models.Lot{ListID: list.ID, PartNum: partNum, PartName: &partName, Quantity: qty}
	if err := db.Create(&lot).Error; err != nil {
		t.Fatalf("seed lot: %v", err)
	}
	return lot.ID
}

func TestPublicLotsFiltersPrivateLists(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	seedListWithLot(t, db, owner, true, "3001", "Brick 2x4", 10)
	seedListWithLot(t, db, owner, false, "3002", "Brick 2x3", 5)

	lots, err := svc.PublicLots(ctx, uuid.Nil, enums.PoolSortPart)
	if err != nil {
		t.Fatalf("public lots: %v", err)
	}
	if len(lots) != 1 || lots[0].PartNum != "3001" {
		t.Fatalf("expected only the public lot, got %+v", lots)
	}
}

func TestPublicLotsAggregates(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	lotID := seedListWithLot(t, db, owner, true, "3001", "Brick 2x4", 10)

	for _, offer := range []models.Offer{
		{LotID: lotID, UserID: alice, Quantity: 6, Status: enums.OfferStatusPending},
		{LotID: lotID, UserID: bob, Quantity: 4, Status: enums.OfferStatusAccepted},
	} {
		if err := db.Create(&offer).Error; err != nil {
			t.Fatalf("seed offer: %v", err)
		}
	}

	lots, err := svc.PublicLots(ctx, alice, enums.PoolSortPart)
	if err != nil {
		t.Fatalf("public lots: %v", err)
	}
	if len(lots) != 1 {
		t.Fatalf("expected 1 lot, got %d", len(lots))
	}
	lot := lots[0]
	if lot.TotalOffered != 10 || lot.RemainingQuantity != 0 || lot.OffersCount != 2 {
		t.Fatalf("unexpected aggregates: %+v", lot)
	}
	if lot.MyPendingQuantity != 6 {
		t.Fatalf("expected caller pending 6, got %d", lot.MyPendingQuantity)
	}
	if lot.IsOwn {
		t.Fatalf("lot should not be marked as caller's own")
	}

	ownerView, err := svc.PublicLots(ctx, owner, enums.PoolSortPart)
	if err != nil {
		t.Fatalf("owner view: %v", err)
	}
	if !ownerView[0].IsOwn {
		t.Fatalf("expected owner flag on own lot")
	}
}

func TestPublicLotsCollatedSort(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	zoe := seedUser(t, db, "Zoe")
	angel := seedUser(t, db, "Ángel")
	alberto := seedUser(t, db, "alberto")

	seedListWithLot(t, db, zoe, true, "p1", "Zócalo", 1)
	seedListWithLot(t, db, angel, true, "p2", "árbol", 1)
	seedListWithLot(t, db, alberto, true, "p3", "Brick", 1)

	byPart, err := svc.PublicLots(ctx, uuid.Nil, enums.PoolSortPart)
	if err != nil {
		t.Fatalf("sort by part: %v", err)
	}
	gotParts := []string{*byPart[0].PartName, *byPart[1].PartName, *byPart[2].PartName}
	wantParts := []string{"árbol", "Brick", "Zócalo"}
	for i := range wantParts {
		if gotParts[i] != wantParts[i] {
			t.Fatalf("part order mismatch: got %v want %v", gotParts, wantParts)
		}
	}

	byOwner, err := svc.PublicLots(ctx, uuid.Nil, enums.PoolSortOwner)
	if err != nil {
		t.Fatalf("sort by owner: %v", err)
	}
	gotOwners := []string{byOwner[0].OwnerName, byOwner[1].OwnerName, byOwner[2].OwnerName}
	wantOwners := []string{"alberto", "Ángel", "Zoe"}
	for i := range wantOwners {
		if gotOwners[i] != wantOwners[i] {
			t.Fatalf("owner order mismatch: got %v want %v", gotOwners, wantOwners)
		}
	}
}
