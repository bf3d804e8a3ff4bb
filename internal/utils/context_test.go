package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-upload-desk/models"
	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	user := models.User{ID: 7, Username: "alice"}

	ctx := WithUser(context.Background(), user)
	got, ok := GetUserFromContext(ctx)

	assert.True(t, ok)
	assert.Equal(t, user, got)
}

func TestUserContext_Missing(t *testing.T) {
	_, ok := GetUserFromContext(context.Background())
	assert.False(t, ok)
}

func TestUserContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserCtxKey, "not a user")
	_, ok := GetUserFromContext(ctx)
	assert.False(t, ok)
}

func TestTokenKeyContext(t *testing.T) {
	ctx := WithTokenKey(context.Background(), "abc")
	key, ok := GetTokenKeyFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc", key)

	_, ok = GetTokenKeyFromContext(context.Background())
	assert.False(t, ok)
}

func TestContextKey_String(t *testing.T) {
	assert.Equal(t, "user", UserCtxKey.String())
}
