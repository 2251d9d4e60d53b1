package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestAppError_NotFound_Success(t *testing.T) {
	err := NotFound("post")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.HTTPStatus)
	}
	if err.Details["resource"] != "post" {
		t.Errorf("expected resource=post, got %v", err.Details["resource"])
	}
}

func TestAppError_UsernameTaken_Status(t *testing.T) {
	err := UsernameTaken("alice")
	if err.Code != ErrCodeAlreadyExists {
		t.Errorf("expected ALREADY_EXISTS, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("registration conflicts map to 400, got %d", err.HTTPStatus)
	}
	if err.Details["username"] != "alice" {
		t.Errorf("expected username detail, got %v", err.Details)
	}
}

func TestAppError_InvalidCredentials_UniformMessage(t *testing.T) {
	// The same constructor serves both wrong-username and wrong-password
	// failures, so the two must be indistinguishable.
	a := InvalidCredentials()
	b := InvalidCredentials()
	if a.Message != b.Message || a.Code != b.Code || a.HTTPStatus != b.HTTPStatus {
		t.Error("InvalidCredentials must produce identical errors on every call")
	}
	if a.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", a.HTTPStatus)
	}
}

func TestAppError_TokenErrors_Status(t *testing.T) {
	if InvalidToken().HTTPStatus != http.StatusUnauthorized {
		t.Error("INVALID_TOKEN should map to 401")
	}
	if TokenExpired().HTTPStatus != http.StatusUnauthorized {
		t.Error("TOKEN_EXPIRED should map to 401")
	}
	if Forbidden("").HTTPStatus != http.StatusForbidden {
		t.Error("FORBIDDEN should map to 403")
	}
}

func TestAppError_WithCause_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := DatabaseError(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.Error() == "" {
		t.Error("expected non-empty error string")
	}
}

func TestAppError_WithDetail_Success(t *testing.T) {
	err := Validation("bad input").WithDetail("field", "username")
	if err.Details["field"] != "username" {
		t.Errorf("expected field detail, got %v", err.Details)
	}
}

func TestAsAppError_Conversion(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NotFound("user"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to unwrap")
	}
	if appErr.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", appErr.Code)
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain errors must not convert")
	}
}

func TestToResponse_Shape(t *testing.T) {
	resp := UsernameTaken("bob").ToResponse()
	if resp.Error.Code != ErrCodeAlreadyExists {
		t.Errorf("expected ALREADY_EXISTS in body, got %s", resp.Error.Code)
	}
	if resp.Error.Message == "" {
		t.Error("expected message in body")
	}
}
