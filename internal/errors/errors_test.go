package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   Kind
	}{
		{AuthenticationRequired(), http.StatusUnauthorized, KindAuthentication},
		{NotFound("meeting"), http.StatusNotFound, KindNotFound},
		{InvalidReference("bad attendee"), http.StatusBadRequest, KindInvalidReference},
		{Validation(fmt.Errorf("bad payload")), http.StatusBadRequest, KindValidation},
		{Conflict("email taken"), http.StatusConflict, KindConflict},
		{ConstructionFailure(fmt.Errorf("no definition")), http.StatusInternalServerError, KindConstruction},
		{RateLimitExceeded(50, "1s"), http.StatusTooManyRequests, KindRateLimit},
	}
	for _, tc := range cases {
		if got := StatusOf(tc.err); got != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, got)
		}
		if got := KindOf(tc.err); got != tc.kind {
			t.Fatalf("%v: expected kind %s, got %s", tc.err, tc.kind, got)
		}
	}
}

func TestUnknownErrorsMapToInternal(t *testing.T) {
	err := fmt.Errorf("plain failure")
	if got := StatusOf(err); got != http.StatusInternalServerError {
		t.Fatalf("expected 500 for plain error, got %d", got)
	}
	if got := KindOf(err); got != "" {
		t.Fatalf("expected empty kind for plain error, got %s", got)
	}
}

func TestWrappedErrorsUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := ConstructionFailure(cause)
	if !stderrors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable via Unwrap")
	}

	wrapped := fmt.Errorf("handler: %w", NotFound("task"))
	if StatusOf(wrapped) != http.StatusNotFound {
		t.Fatalf("expected status to survive wrapping")
	}
}
