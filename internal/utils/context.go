// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password hashing,
// opaque token generation, anti-forgery token signing, HTTP response writing
// and HTTP client initialization.
package utils

import (
	"context"

	"github.com/MKhiriev/go-upload-desk/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey is the key under which the authenticated user is stored in the
// request context by the auth middleware.
var UserCtxKey = contextKey("user")

// TokenKeyCtxKey is the key under which the presented token key is stored.
var TokenKeyCtxKey = contextKey("tokenKey")

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext retrieves the authenticated user from the context.
//
// Returns ok == false when the value is missing or has an unexpected type.
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}

// WithTokenKey returns a copy of ctx carrying the presented token key.
func WithTokenKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, TokenKeyCtxKey, key)
}

// GetTokenKeyFromContext retrieves the presented token key from the context.
func GetTokenKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(TokenKeyCtxKey).(string)
	return key, ok
}
