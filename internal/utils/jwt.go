package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateCSRFToken creates a signed HMAC-SHA256 JWT used as an
// anti-forgery token.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - ID        (jti): a fresh random identifier, so every token is unique
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus ttl
//
// All parameters are required. Returns an error if any of them are empty or zero.
func GenerateCSRFToken(issuer, id string, ttl time.Duration, signKey string) (string, error) {
	if issuer == "" || id == "" || ttl <= 0 || signKey == "" {
		return "", errors.New("invalid params for generating CSRF token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		ID:        id,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing CSRF token: %w", err)
	}

	return tokenString, nil
}

// ValidateCSRFToken verifies the signature, issuer and expiry of an
// anti-forgery token.
func ValidateCSRFToken(tokenString, signKey, issuer string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return fmt.Errorf("error occurred validating CSRF token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return errors.New("CSRF token has no id")
	}

	return nil
}
