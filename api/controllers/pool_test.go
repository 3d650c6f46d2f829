package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gobrick/brickpool-backend/api/middleware"
	"github.com/gobrick/brickpool-backend/internal/offers"
	"github.com/gobrick/brickpool-backend/internal/pool"
	"github.com/gobrick/brickpool-backend/pkg/enums"
	pkgerrors "github.com/gobrick/brickpool-backend/pkg/errors"
	"github.com/google/uuid"
)

type stubPoolService struct {
	lots []pool.PoolLotDTO
	err  error

	gotCaller uuid.UUID
	gotSort   enums.PoolSort
}

func (s *stubPoolService) PublicLots(_ context.Context, callerID uuid.UUID, sortBy enums.PoolSort) ([]pool.PoolLotDTO, error) {
	s.gotCaller = callerID
	s.gotSort = sortBy
	return s.lots, s.err
}

type stubReconcileService struct {
	result *offers.ReconcileResult
	err    error

	gotLot uuid.UUID
	gotQty int
}

func (s *stubReconcileService) Reconcile(_ context.Context, _, lotID uuid.UUID, requested int) (*offers.ReconcileResult, error) {
	s.gotLot = lotID
	s.gotQty = requested
	return s.result, s.err
}

func withRouteParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestPoolLotsDefaultsToPartSort(t *testing.T) {
	svc := &stubPoolService{lots: []pool.PoolLotDTO{{PartNum: "3001"}}}
	handler := PoolLots(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pool/lots", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotSort != enums.PoolSortPart {
		t.Fatalf("expected part sort, got %s", svc.gotSort)
	}
	if svc.gotCaller != uuid.Nil {
		t.Fatalf("expected anonymous caller")
	}

	var envelope struct {
		Data []pool.PoolLotDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].PartNum != "3001" {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestPoolLotsRejectsUnknownSort(t *testing.T) {
	handler := PoolLots(&stubPoolService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pool/lots?sort=color", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestPoolOfferReconciles(t *testing.T) {
	caller := uuid.New()
	lotID := uuid.New()
	svc := &stubReconcileService{result: &offers.ReconcileResult{
		Action:          offers.ActionCreated,
		AppliedQuantity: 4,
	}}
	handler := PoolOffer(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pool/lots/"+lotID.String()+"/offer", strings.NewReader(`{"quantity": 4}`))
	req = withRouteParam(req, "lotID", lotID.String())
	req = req.WithContext(middleware.WithUserID(req.Context(), caller.String()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotLot != lotID || svc.gotQty != 4 {
		t.Fatalf("unexpected service call: lot=%s qty=%d", svc.gotLot, svc.gotQty)
	}

	var envelope struct {
		Data offers.ReconcileResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Action != offers.ActionCreated || envelope.Data.AppliedQuantity != 4 {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestPoolOfferAcceptsZeroQuantity(t *testing.T) {
	caller := uuid.New()
	lotID := uuid.New()
	svc := &stubReconcileService{result: &offers.ReconcileResult{Action: offers.ActionDeleted}}
	handler := PoolOffer(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/offer", strings.NewReader(`{"quantity": 0}`))
	req = withRouteParam(req, "lotID", lotID.String())
	req = req.WithContext(middleware.WithUserID(req.Context(), caller.String()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotQty != 0 {
		t.Fatalf("expected quantity 0, got %d", svc.gotQty)
	}
}

func TestPoolOfferValidatesBody(t *testing.T) {
	handler := PoolOffer(&stubReconcileService{}, nil)
	lotID := uuid.New()

	for body, want := range map[string]int{
		`{}`:                 http.StatusBadRequest,
		`{"quantity": -1}`:   http.StatusBadRequest,
		`{"quantity": "no"}`: http.StatusBadRequest,
	} {
		req := httptest.NewRequest(http.MethodPost, "/offer", strings.NewReader(body))
		req = withRouteParam(req, "lotID", lotID.String())
		req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))

		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != want {
			t.Fatalf("body %s: expected %d got %d", body, want, resp.Code)
		}
	}
}

func TestPoolOfferRequiresAuth(t *testing.T) {
	handler := PoolOffer(&stubReconcileService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/offer", strings.NewReader(`{"quantity": 1}`))
	req = withRouteParam(req, "lotID", uuid.NewString())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestPoolOfferMapsDomainErrors(t *testing.T) {
	lotID := uuid.New()
	cases := map[pkgerrors.Code]int{
		pkgerrors.CodeOwnerPledge: http.StatusForbidden,
		pkgerrors.CodeLotLocked:   http.StatusUnprocessableEntity,
		pkgerrors.CodeConcurrency: http.StatusConflict,
		pkgerrors.CodeNotFound:    http.StatusNotFound,
	}
	for code, want := range cases {
		svc := &stubReconcileService{err: pkgerrors.New(code, "nope")}
		handler := PoolOffer(svc, nil)

		req := httptest.NewRequest(http.MethodPost, "/offer", strings.NewReader(`{"quantity": 1}`))
		req = withRouteParam(req, "lotID", lotID.String())
		req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))

		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != want {
			t.Fatalf("code %s: expected %d got %d", code, want, resp.Code)
		}

		var envelope struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode error envelope: %v", err)
		}
		if envelope.Error.Code != string(code) {
			t.Fatalf("expected code %s, got %s", code, envelope.Error.Code)
		}
	}
}
