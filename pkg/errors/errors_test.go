package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Auth("nope"), http.StatusUnauthorized},
		{NotFound("missing"), http.StatusNotFound},
		{Store("db down", stderrors.New("dial tcp")), http.StatusInternalServerError},
		{Notification("send failed", stderrors.New("550 rejected")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.err.HTTPStatus(); got != tt.want {
			t.Errorf("%s: HTTPStatus() = %d, want %d", tt.err.Code, got, tt.want)
		}
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := Store("db down", cause)

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}

func TestPredicates(t *testing.T) {
	if !IsNotFound(NotFound("missing")) {
		t.Error("IsNotFound failed on NotFound error")
	}
	if IsNotFound(Validation("bad")) {
		t.Error("IsNotFound matched a validation error")
	}
	if !IsValidation(Validation("bad")) {
		t.Error("IsValidation failed on validation error")
	}
	if IsValidation(stderrors.New("plain")) {
		t.Error("IsValidation matched a plain error")
	}
}
