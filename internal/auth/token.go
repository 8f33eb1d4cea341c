// Package auth implements the signed session credential and the password
// digest adapter.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidCredential is returned by Verify for every failure mode —
// tampered payload, wrong secret, malformed token, or elapsed expiry.
// Callers must not be able to tell which one occurred.
var ErrInvalidCredential = errors.New("invalid credential")

// TokenTTL is how long an issued credential stays valid.
const TokenTTL = 24 * time.Hour

// Identity is the request-scoped authenticated identity decoded from a
// verified credential. It is never persisted.
type Identity struct {
	UserID    uint
	Username  string
	ExpiresAt time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
}

// TokenCodec signs and verifies session credentials with a process-wide
// HS256 secret. The secret is injected once at startup and never changes.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec around the given signing secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Issue produces a signed token asserting the given user for TokenTTL.
func (tc *TokenCodec) Issue(userID uint, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		UserID:   userID,
		Username: username,
	})
	return token.SignedString(tc.secret)
}

// Verify checks the signature and expiry of a token and returns the embedded
// identity. Any failure collapses to ErrInvalidCredential.
func (tc *TokenCodec) Verify(tokenString string) (Identity, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredential
		}
		return tc.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidCredential
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return Identity{
		UserID:    claims.UserID,
		Username:  claims.Username,
		ExpiresAt: expires,
	}, nil
}
