package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeOwnerPledge, status: http.StatusForbidden, publicMsg: "owners may not offer on their own lots"},
		{code: CodeLotLocked, status: http.StatusUnprocessableEntity, publicMsg: "offer is locked", detailsOK: true},
		{code: CodeConcurrency, status: http.StatusConflict, publicMsg: "concurrent update detected, retry the request", retryable: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeDependency, cause, "downstream failed")
	if wrapped.Unwrap() != cause {
		t.Fatalf("expected cause to unwrap")
	}
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("errors.Is should find the cause")
	}

	withDetails := New(CodeLotLocked, "offer accepted").WithDetails(map[string]string{"lot_id": "abc"})
	if withDetails.Details() == nil {
		t.Fatalf("expected details to be set")
	}
}

func TestDumpWalksChainAndDriverDetail(t *testing.T) {
	if got := Dump(nil); got.TopMessage != "" || got.Chain != nil {
		t.Fatalf("nil error should dump empty, got %+v", got)
	}

	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "offers_lot_user_key",
		TableName:      "offers",
		Detail:         "Key (lot_id, user_id) already exists.",
	}
	wrapped := Wrap(CodeConflict, fmt.Errorf("create offer: %w", pgErr), "duplicate pledge")

	dump := Dump(wrapped)
	if dump.Code != CodeConflict {
		t.Fatalf("expected conflict code, got %s", dump.Code)
	}
	if len(dump.Chain) < 3 {
		t.Fatalf("expected full unwrap chain, got %v", dump.Chain)
	}
	if dump.PGCode != "23505" || dump.PGConstraint != "offers_lot_user_key" || dump.PGTable != "offers" {
		t.Fatalf("expected driver detail, got %+v", dump)
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	inner := New(CodeOwnerPledge, "own lot")
	outer := Wrap(CodeInternal, inner, "reconcile failed")

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeInternal {
		t.Fatalf("expected outermost code, got %s", typed.Code())
	}

	if !IsCode(inner, CodeOwnerPledge) {
		t.Fatal("IsCode should match the owner pledge code")
	}
	if IsCode(nil, CodeOwnerPledge) {
		t.Fatal("IsCode on nil should be false")
	}
}
