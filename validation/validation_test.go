package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/blogd/errors"
)

type registerPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func TestValidate_Success(t *testing.T) {
	p := registerPayload{Username: "alice", Password: "long enough"}
	if err := Validate(p); err != nil {
		t.Errorf("expected valid payload, got %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	p := registerPayload{Password: "long enough"}
	err := Validate(p)
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "username") {
		t.Errorf("expected json field name in message, got %q", appErr.Message)
	}
}

func TestValidate_PasswordBounds(t *testing.T) {
	short := registerPayload{Username: "alice", Password: "short"}
	if err := Validate(short); err == nil {
		t.Error("expected failure for a 5-char password")
	}

	long := registerPayload{Username: "alice", Password: strings.Repeat("x", 73)}
	if err := Validate(long); err == nil {
		t.Error("expected failure for a 73-char password")
	}

	exact := registerPayload{Username: "alice", Password: strings.Repeat("x", 72)}
	if err := Validate(exact); err != nil {
		t.Errorf("72 chars must pass, got %v", err)
	}
}

func TestValidate_FieldDetails(t *testing.T) {
	err := Validate(registerPayload{})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected []FieldError details, got %T", appErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(fields))
	}
}
