package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"ttsguard/database"
)

func TestWrapErrorMapsStorageErrors(t *testing.T) {
	notFound := fmt.Errorf("%w: building 42", database.ErrNotFound)
	appErr := WrapError(notFound, "failed to load building")
	if appErr.StatusCode() != http.StatusNotFound {
		t.Errorf("expected 404, got %d", appErr.StatusCode())
	}

	invalid := fmt.Errorf("%w: amount must be positive", database.ErrValidation)
	appErr = WrapError(invalid, "failed to record payment")
	if appErr.StatusCode() != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", appErr.StatusCode())
	}

	appErr = WrapError(errors.New("disk full"), "failed to export report")
	if appErr.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", appErr.StatusCode())
	}
	// Детали внутренней ошибки не попадают в пользовательское сообщение.
	if appErr.UserMessage() != "internal server error" {
		t.Errorf("unexpected user message: %q", appErr.UserMessage())
	}
}

func TestWrapErrorKeepsAppErrorStatus(t *testing.T) {
	conflict := NewConflictError("ticket already resolved", nil)
	wrapped := WrapError(conflict, "failed to update ticket")

	if wrapped.StatusCode() != http.StatusConflict {
		t.Errorf("expected 409, got %d", wrapped.StatusCode())
	}
	if wrapped.UserMessage() != "failed to update ticket: ticket already resolved" {
		t.Errorf("unexpected message: %q", wrapped.UserMessage())
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := errors.New("sql: no rows")
	appErr := NewNotFoundError("client not found", inner)

	if !errors.Is(appErr, inner) {
		t.Error("expected errors.Is to reach the wrapped error")
	}
	if appErr.Error() != "client not found: sql: no rows" {
		t.Errorf("unexpected Error(): %q", appErr.Error())
	}
}

func TestWrapErrorNil(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("expected nil for nil input")
	}
}
