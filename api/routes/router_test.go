package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gobrick/brickpool-backend/internal/catalog"
	"github.com/gobrick/brickpool-backend/internal/lists"
	"github.com/gobrick/brickpool-backend/internal/offers"
	"github.com/gobrick/brickpool-backend/internal/pool"
	pkgauth "github.com/gobrick/brickpool-backend/pkg/auth"
	"github.com/gobrick/brickpool-backend/pkg/config"
	"github.com/gobrick/brickpool-backend/pkg/enums"
	"github.com/google/uuid"
)

type allowAllSessions struct{}

func (allowAllSessions) HasSession(context.Context, string) (bool, error) {
	return true, nil
}

type noopMirror struct{}

func (noopMirror) Ensure(context.Context, uuid.UUID, string) error {
	return nil
}

type fakePoolService struct{}

func (fakePoolService) PublicLots(context.Context, uuid.UUID, enums.PoolSort) ([]pool.PoolLotDTO, error) {
	return []pool.PoolLotDTO{}, nil
}

type fakeOfferService struct{}

func (fakeOfferService) Reconcile(context.Context, uuid.UUID, uuid.UUID, int) (*offers.ReconcileResult, error) {
	return &offers.ReconcileResult{Action: offers.ActionCreated, AppliedQuantity: 1}, nil
}

func (fakeOfferService) OwnerSummary(context.Context, uuid.UUID, uuid.UUID) (offers.OwnerSummaryDTO, error) {
	return offers.OwnerSummaryDTO{}, nil
}

func (fakeOfferService) MyOffered(context.Context, uuid.UUID) ([]offers.OfferedLotDTO, error) {
	return []offers.OfferedLotDTO{}, nil
}

type fakeListService struct{}

func (fakeListService) CreateList(context.Context, uuid.UUID, lists.CreateListInput) (*lists.ListDTO, error) {
	return &lists.ListDTO{}, nil
}

func (fakeListService) ListMine(context.Context, uuid.UUID) ([]lists.ListDTO, error) {
	return []lists.ListDTO{}, nil
}

func (fakeListService) SetVisibility(context.Context, uuid.UUID, uuid.UUID, bool) (*lists.ListDTO, error) {
	return &lists.ListDTO{}, nil
}

func (fakeListService) DeleteList(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (fakeListService) AddLot(context.Context, uuid.UUID, uuid.UUID, lists.AddLotInput) (*lists.LotDTO, error) {
	return &lists.LotDTO{}, nil
}

func (fakeListService) ListLots(context.Context, uuid.UUID, uuid.UUID) ([]lists.LotDTO, error) {
	return []lists.LotDTO{}, nil
}

func (fakeListService) UpdateLot(context.Context, uuid.UUID, uuid.UUID, lists.UpdateLotInput) (*lists.LotDTO, error) {
	return &lists.LotDTO{}, nil
}

func (fakeListService) DeleteLot(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type fakeCatalogService struct{}

func (fakeCatalogService) Search(context.Context, string) ([]catalog.PartDTO, error) {
	return []catalog.PartDTO{}, nil
}

func (fakeCatalogService) PartsByNums(context.Context, string) ([]catalog.PartDTO, error) {
	return []catalog.PartDTO{}, nil
}

func (fakeCatalogService) PartImages(context.Context, catalog.PartImagesInput) (catalog.PartImagesResult, error) {
	return catalog.PartImagesResult{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "brickpool-test",
			ExpirationMinutes: 15,
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		Config:         cfg,
		Sessions:       allowAllSessions{},
		IdentityMirror: noopMirror{},
		PoolService:    fakePoolService{},
		OfferService:   fakeOfferService{},
		ListService:    fakeListService{},
		CatalogService: fakeCatalogService{},
	})
}

func mintToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID:      uuid.New(),
		DisplayName: "tester",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestRouterPublicEndpoints(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	for _, path := range []string{"/health/live", "/api/v1/pool/lots"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestRouterProtectedEndpointsRequireAuth(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/lists"},
		{http.MethodGet, "/api/v1/offers/mine"},
		{http.MethodPost, "/api/v1/pool/lots/" + uuid.NewString() + "/offer"},
		{http.MethodGet, "/api/v1/catalog/parts"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", tc.method, tc.path, resp.Code)
		}
	}
}

func TestRouterAcceptsValidToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)
	token := mintToken(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/offers/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRouterRejectsGarbageToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lists", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
