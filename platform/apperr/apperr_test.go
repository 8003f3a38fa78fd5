package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatus_MapsKindsToCodes(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("missing"), http.StatusNotFound},
		{Validation("bad field"), http.StatusBadRequest},
		{OutOfRange("too long"), http.StatusBadRequest},
		{BadRequest("malformed"), http.StatusBadRequest},
		{Conflict("duplicate"), http.StatusConflict},
		{Forbidden("nope"), http.StatusForbidden},
		{Unauthorized("who are you"), http.StatusUnauthorized},
		{Timeout("too slow"), http.StatusGatewayTimeout},
		{Unavailable("down"), http.StatusServiceUnavailable},
		{Internal("broken"), http.StatusInternalServerError},
		{Unknown("mystery", errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Fatalf("kind %d: expected status %d, got %d", tc.err.Kind, tc.want, got)
		}
	}
}

func TestRetryable_OnlyTransientKinds(t *testing.T) {
	if !Timeout("too slow").Retryable() {
		t.Fatalf("expected timeout to be retryable")
	}
	if !Unavailable("down").Retryable() {
		t.Fatalf("expected unavailable to be retryable")
	}
	if Validation("bad field").Retryable() {
		t.Fatalf("expected validation to be terminal")
	}
	if Internal("broken").Retryable() {
		t.Fatalf("expected internal to be terminal")
	}
}

func TestError_FormatsWithOp(t *testing.T) {
	err := NotFound("note not found").WithOp("notes.GetByID")
	if got := err.Error(); got != "notes.GetByID: note not found" {
		t.Fatalf("unexpected message: %q", got)
	}

	bare := NotFound("note not found")
	if got := bare.Error(); got != "note not found" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindUnavailable, "backend unreachable", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable via errors.Is")
	}
	if GetKind(err) != KindUnavailable {
		t.Fatalf("expected unavailable kind, got %d", GetKind(err))
	}
}

func TestGetKind_NonTypedErrorsAreUnknown(t *testing.T) {
	if got := GetKind(errors.New("boom")); got != KindUnknown {
		t.Fatalf("expected unknown for plain errors, got %d", got)
	}
	if got := GetKind(nil); got != KindUnknown {
		t.Fatalf("expected unknown for nil, got %d", got)
	}
	if !Is(Conflict("dup"), KindConflict) {
		t.Fatalf("expected Is to match the kind")
	}
	if Is(Conflict("dup"), KindNotFound) {
		t.Fatalf("expected Is to reject a different kind")
	}
}
