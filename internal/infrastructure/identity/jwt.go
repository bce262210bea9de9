package identity

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"findmymechanic-service/internal/domain/apperrors"
)

// TokenManager issues and verifies HS256 tokens whose subject is the actor
// id. This is the local/dev identity mode; production deployments verify
// Google ID tokens instead.
type TokenManager struct {
	secret string
	issuer string
}

// NewTokenManager creates a token manager for the given signing secret.
func NewTokenManager(secret, issuer string) *TokenManager {
	if issuer == "" {
		issuer = "findmymechanic"
	}
	return &TokenManager{secret: secret, issuer: issuer}
}

// GenerateToken mints a token for an actor id.
func (tm *TokenManager) GenerateToken(actorID string, expiresIn time.Duration) (string, error) {
	if actorID == "" {
		return "", apperrors.Validationf("actor id is required")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   actorID,
		Issuer:    tm.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tm.secret))
}

// VerifyToken resolves a token to its actor id.
func (tm *TokenManager) VerifyToken(_ context.Context, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.Authorizationf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(tm.secret), nil
	}, jwt.WithIssuer(tm.issuer))
	if err != nil {
		return "", apperrors.Authorizationf("invalid token: %v", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperrors.Authorizationf("token has no subject")
	}
	return claims.Subject, nil
}
