package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenKeyBytes is the amount of randomness in an auth token key.
// Hex encoding doubles it to 40 characters.
const TokenKeyBytes = 20

// GenerateTokenKey returns a new random 40-character lowercase hex key for
// an auth token.
func GenerateTokenKey() (string, error) {
	b := make([]byte, TokenKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("error generating token key: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// IsWellFormedTokenKey reports whether key looks like a key produced by
// [GenerateTokenKey].
func IsWellFormedTokenKey(key string) bool {
	if len(key) != TokenKeyBytes*2 {
		return false
	}
	_, err := hex.DecodeString(key)
	return err == nil
}
