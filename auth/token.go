// Package auth implements password hashing, bearer-token issuing and the
// middleware that resolves a token to a user id on each request.
//
// Tokens are HS256-signed JWTs with a subject and an expiry claim. No session
// state is kept server-side; the token is the sole credential and is replayed
// by the client on every request.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and verifies signed, time-limited tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// CreateToken generates a JWT for the given user id.
// The token is signed using the HS256 algorithm and expires after the
// configured TTL.
func (tm *TokenManager) CreateToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(tm.ttl).Unix(),
	})
	return token.SignedString(tm.secret)
}

// VerifyToken validates a token string and extracts the user id from its
// subject claim. Expired or malformed tokens return an error.
func (tm *TokenManager) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("subject not found in token claims")
	}
	return sub, nil
}
