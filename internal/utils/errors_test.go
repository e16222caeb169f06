package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{CodePrecondition, http.StatusPreconditionRequired},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		err := fmt.Errorf("wrapped: %w", E(tt.code, "Op", "msg", nil))
		if got := HTTPStatus(err); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}

	if got := HTTPStatus(ErrNotFound); got != http.StatusNotFound {
		t.Errorf("HTTPStatus(ErrNotFound) = %d", got)
	}
	if got := HTTPStatus(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("HTTPStatus(plain) = %d", got)
	}
}

func TestIsCodeAndMessage(t *testing.T) {
	err := E(CodeNotFound, "JobService.Get", "job not found", ErrNotFound)

	if !IsCode(err, CodeNotFound) {
		t.Error("expected NOT_FOUND")
	}
	if IsCode(err, CodeInternal) {
		t.Error("unexpected INTERNAL")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected wrapped ErrNotFound")
	}
	if got := Message(err, "fallback"); got != "job not found" {
		t.Errorf("Message = %q", got)
	}
	if got := Message(errors.New("x"), "fallback"); got != "fallback" {
		t.Errorf("Message(plain) = %q", got)
	}
	if got := err.Error(); got != "JobService.Get: job not found: not found" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(E(CodeConflict, "", "", nil)); got != CodeConflict {
		t.Errorf("CodeOf = %s", got)
	}
	if got := CodeOf(fmt.Errorf("x: %w", ErrNotFound)); got != CodeNotFound {
		t.Errorf("CodeOf(ErrNotFound) = %s", got)
	}
	if got := CodeOf(errors.New("x")); got != CodeInternal {
		t.Errorf("CodeOf(plain) = %s", got)
	}
	if got := (&AppError{}).Error(); got != "error" {
		t.Errorf("empty Error() = %q", got)
	}
}
