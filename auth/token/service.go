// Package token issues and validates the signed bearer tokens blogd hands
// out on login. Tokens are stateless: the claim set is just {sub, exp, iat}
// plus an optional issuer, signed with a fixed HMAC secret.
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/kbukum/blogd/errors"
)

// AccessClaims is the claim set carried by blogd access tokens.
type AccessClaims struct {
	gojwt.RegisteredClaims
}

// Service signs and validates access tokens against a fixed configuration.
type Service struct {
	cfg Config
}

// NewService creates a token service from config.
func NewService(cfg Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	return &Service{cfg: cfg}, nil
}

// TTL returns the configured access token lifetime.
func (s *Service) TTL() time.Duration {
	return s.cfg.AccessTokenTTL
}

// Issue creates a signed access token for the given subject. Expiry is
// computed from wall-clock time at issuance.
func (s *Service) Issue(subject string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
			Issuer:    s.cfg.Issuer,
		},
	}

	tok := gojwt.NewWithClaims(s.cfg.signingMethod(), claims)
	signed, err := tok.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Validate verifies the signature, algorithm, and expiry of a token and
// returns its subject claim. Expired tokens fail with TokenExpired; every
// other failure (bad signature, wrong algorithm, structural garbage) is
// InvalidToken.
func (s *Service) Validate(tokenString string) (string, error) {
	claims := &AccessClaims{}
	tok, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return "", apperrors.TokenExpired().WithCause(err)
		}
		return "", apperrors.InvalidToken().WithCause(err)
	}
	if !tok.Valid {
		return "", apperrors.InvalidToken()
	}
	return claims.Subject, nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Service) keyFunc(tok *gojwt.Token) (interface{}, error) {
	expected := s.cfg.signingMethod()
	if tok.Method.Alg() != expected.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", tok.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

// parserOptions returns jwt.ParserOption based on config.
func (s *Service) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{string(s.cfg.Method)}),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}
	return opts
}
