package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("row not found")
	wrapped := Wrap(CodeNotFound, cause, "customer missing")

	if wrapped.Code() != CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %s", wrapped.Code())
	}
	if !errors.Is(wrapped, cause) {
		t.Fatal("expected wrapped error to unwrap to cause")
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	inner := New(CodeValidation, "customer id is required")
	outer := fmt.Errorf("loading history: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error in chain")
	}
	if typed.Code() != CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %s", typed.Code())
	}
}

func TestAsReturnsNilForPlainErrors(t *testing.T) {
	if As(errors.New("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500 fallback, got %d", meta.HTTPStatus)
	}
}

func TestWithDetailsSurfacesPayload(t *testing.T) {
	err := New(CodeValidation, "validation failed").WithDetails(map[string]string{"customer_id": "must match cus_ prefix"})
	details, ok := err.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected map details, got %T", err.Details())
	}
	if details["customer_id"] == "" {
		t.Fatal("expected customer_id detail")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeDependency, cause, "billing store unreachable")

	d := Dump(err)
	if d.Code != CodeDependency {
		t.Fatalf("expected DEPENDENCY_ERROR, got %s", d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected chain with cause, got %v", d.Chain)
	}
}
