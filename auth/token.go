// Package auth holds the identity primitives: signed session tokens and
// salted password derivation.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is how long an issued token stays valid. It matches the session
// cookie lifetime.
const TokenTTL = 7 * 24 * time.Hour

var (
	// ErrInvalidToken means the token is malformed, its signature does not
	// verify, or it has expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMissingSubject means the token verified but carries no user id.
	ErrMissingSubject = errors.New("token carries no subject")
)

// TokenIssuer issues and verifies signed identity tokens. The signing secret
// is fixed at construction; the issuer is safe for concurrent use.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string) TokenIssuer {
	return TokenIssuer{secret: []byte(secret), ttl: TokenTTL}
}

// Issue produces a signed token embedding userID, valid for the issuer's TTL.
func (i TokenIssuer) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify checks the token's signature and expiry and returns the embedded
// user id. It returns ErrInvalidToken for anything that does not verify and
// ErrMissingSubject for a valid token with an empty or unparseable subject.
func (i TokenIssuer) Verify(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return uuid.Nil, ErrMissingSubject
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrMissingSubject
	}

	return userID, nil
}
