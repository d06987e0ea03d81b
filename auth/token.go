package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/storefront-labs/storefront-api/apperrors"
	"github.com/storefront-labs/storefront-api/config"
)

// TokenService issues and validates self-contained HS256 tokens. The key is
// fixed for the process lifetime; there is no server-side session state and
// no revocation before natural expiry.
type TokenService struct {
	key      []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenService(cfg config.Config) *TokenService {
	return &TokenService{
		key:      []byte(cfg.JWTSecret),
		lifetime: cfg.JWTLifetime,
		now:      time.Now,
	}
}

// Lifetime is the configured validity window of issued tokens.
func (s *TokenService) Lifetime() time.Duration { return s.lifetime }

// Issue signs a claims payload of {subject, issued-at, expires-at} for the
// given username and returns the encoded token.
func (s *TokenService) Issue(username string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// ResolveIdentity verifies signature and expiry and returns the embedded
// subject. Every failure is a typed *apperrors.AuthError; callers collapse
// the kinds into one unauthenticated response and log the kind only.
func (s *TokenService) ResolveIdentity(tokenString string) (string, error) {
	parser := jwt.NewParser(jwt.WithTimeFunc(s.now))
	claims := &jwt.RegisteredClaims{}

	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &apperrors.AuthError{Kind: apperrors.AuthUnsupported}
		}
		return s.key, nil
	})
	if err != nil {
		return "", classifyTokenError(err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", &apperrors.AuthError{Kind: apperrors.AuthMalformed}
	}
	return claims.Subject, nil
}

func classifyTokenError(err error) error {
	var authErr *apperrors.AuthError
	switch {
	case errors.As(err, &authErr):
		return authErr
	case errors.Is(err, jwt.ErrTokenExpired):
		return &apperrors.AuthError{Kind: apperrors.AuthExpired, Cause: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &apperrors.AuthError{Kind: apperrors.AuthSignatureInvalid, Cause: err}
	case errors.Is(err, jwt.ErrTokenMalformed):
		return &apperrors.AuthError{Kind: apperrors.AuthMalformed, Cause: err}
	default:
		return &apperrors.AuthError{Kind: apperrors.AuthMalformed, Cause: err}
	}
}
