// Package auth resolves bearer tokens into authenticated users and guards
// the protected routes. Resolution is a pure function of the token and the
// injected user lookup: validate the token, parse its subject as a user id,
// load the user. It has no side effects, so a failed resolution aborts a
// request before any storage work happens.
package auth

import (
	"context"
	"strconv"

	apperrors "github.com/kbukum/blogd/errors"
	"github.com/kbukum/blogd/store"
)

// TokenValidator validates a token string and returns its subject claim.
// *token.Service satisfies this.
type TokenValidator interface {
	Validate(token string) (subject string, err error)
}

// LookupFunc loads a user by id. It is injected so the resolver stays
// independent of how storage sessions are scoped.
type LookupFunc func(ctx context.Context, id uint) (*store.User, error)

// Resolver turns bearer tokens into users.
type Resolver struct {
	tokens TokenValidator
	lookup LookupFunc
}

// NewResolver creates a Resolver.
func NewResolver(tokens TokenValidator, lookup LookupFunc) *Resolver {
	return &Resolver{tokens: tokens, lookup: lookup}
}

// Resolve validates the token, parses its subject as a numeric user id, and
// loads the user. A subject that is not a valid integer is an invalid
// token, not a server error. An id with no matching user is NotFound.
func (r *Resolver) Resolve(ctx context.Context, tokenString string) (*store.User, error) {
	subject, err := r.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return nil, apperrors.InvalidToken().WithCause(err)
	}

	user, err := r.lookup(ctx, uint(id))
	if err != nil {
		return nil, err
	}
	return user, nil
}
