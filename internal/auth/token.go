package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any token that cannot be
// accepted: bad signature, malformed payload, wrong signing method, missing
// subject, or expiry at or before the current instant.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService issues and verifies stateless session tokens.
//
// Tokens are HS256-signed JWTs carrying the user id as subject and an
// absolute expiry. Validity is defined entirely by signature and expiry;
// no server-side session state exists, so rotating the secret invalidates
// every outstanding token at once.
type TokenService struct {
	secret []byte
	ttl    time.Duration

	// now is a clock seam for expiry tests.
	now func() time.Time
}

// NewTokenService returns a TokenService signing with secret and issuing
// tokens valid for ttl.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a signed token asserting userID until the configured TTL
// elapses.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates tokenString and returns the embedded user id.
// Any verification failure is reported as ErrInvalidToken; callers do not
// need to distinguish a forged token from an expired one.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
