package auth

import (
	"context"
	"testing"

	"github.com/kbukum/blogd/auth/token"
	apperrors "github.com/kbukum/blogd/errors"
	"github.com/kbukum/blogd/store"
)

func testTokens(t *testing.T) *token.Service {
	t.Helper()
	svc, err := token.NewService(token.Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func lookupFor(users map[uint]*store.User) LookupFunc {
	return func(_ context.Context, id uint) (*store.User, error) {
		if u, ok := users[id]; ok {
			return u, nil
		}
		return nil, apperrors.NotFound("user")
	}
}

func TestResolver_Resolve_Success(t *testing.T) {
	tokens := testTokens(t)
	alice := &store.User{ID: 42, Username: "alice"}
	r := NewResolver(tokens, lookupFor(map[uint]*store.User{42: alice}))

	tok, err := tokens.Issue("42")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	user, err := r.Resolve(context.Background(), tok)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if user != alice {
		t.Errorf("expected alice, got %+v", user)
	}
}

func TestResolver_Resolve_BadToken(t *testing.T) {
	r := NewResolver(testTokens(t), lookupFor(nil))

	_, err := r.Resolve(context.Background(), "not-a-token")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeInvalidToken {
		t.Errorf("expected INVALID_TOKEN, got %v", err)
	}
}

func TestResolver_Resolve_NonNumericSubject(t *testing.T) {
	tokens := testTokens(t)
	r := NewResolver(tokens, lookupFor(nil))

	tok, err := tokens.Issue("not-a-number")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Must fail cleanly as an invalid token, never crash into the lookup.
	_, err = r.Resolve(context.Background(), tok)
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeInvalidToken {
		t.Errorf("expected INVALID_TOKEN, got %v", err)
	}
}

func TestResolver_Resolve_UserGone(t *testing.T) {
	tokens := testTokens(t)
	r := NewResolver(tokens, lookupFor(map[uint]*store.User{}))

	tok, err := tokens.Issue("7")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = r.Resolve(context.Background(), tok)
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}
