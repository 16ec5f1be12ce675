package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("db down")
	err := Wrap(CodeDependency, cause, "load profile")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("expected dependency code, got %s", err.Code())
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	typed := New(CodeNotFound, "order not found")
	wrapped := fmt.Errorf("handler: %w", typed)

	got := As(wrapped)
	if got == nil {
		t.Fatal("expected typed error in chain")
	}
	if got.Code() != CodeNotFound {
		t.Fatalf("expected not found code, got %s", got.Code())
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500 fallback, got %d", meta.HTTPStatus)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := errors.New("timeout")
	err := Wrap(CodeDependency, cause, "fetch status")

	d := Dump(err)
	if d.Code != CodeDependency {
		t.Fatalf("expected code in dump, got %q", d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected unwrapped chain, got %v", d.Chain)
	}
}
