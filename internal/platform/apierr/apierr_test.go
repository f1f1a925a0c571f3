package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsCarryStatus(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Validation("bad", nil), http.StatusBadRequest},
		{Unauthorized("nope", nil), http.StatusUnauthorized},
		{NotFound("missing", nil), http.StatusNotFound},
		{Conflict("dup", nil), http.StatusConflict},
		{Upstream("ai_unavailable", nil), http.StatusBadGateway},
		{Internal("boom", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if tc.err.Status != tc.want {
			t.Fatalf("%s: status=%d want=%d", tc.err.Code, tc.err.Status, tc.want)
		}
	}
}

func TestStatusOfWrapped(t *testing.T) {
	base := NotFound("product_not_found", errors.New("product not found"))
	wrapped := fmt.Errorf("load product: %w", base)
	if got := StatusOf(wrapped); got != http.StatusNotFound {
		t.Fatalf("StatusOf=%d want 404", got)
	}
	if got := StatusOf(errors.New("plain")); got != http.StatusInternalServerError {
		t.Fatalf("StatusOf(plain)=%d want 500", got)
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	if got := New(http.StatusTeapot, "", nil).Error(); got != "api error (418)" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := New(0, "code_only", nil).Error(); got != "code_only" {
		t.Fatalf("unexpected message: %q", got)
	}
	inner := errors.New("inner")
	if !errors.Is(Internal("x", inner), inner) {
		t.Fatal("Unwrap should expose inner error")
	}
}
