package utils

import (
	"regexp"
	"testing"
)

var hexKeyPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

func TestGenerateTokenKey(t *testing.T) {
	key, err := GenerateTokenKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hexKeyPattern.MatchString(key) {
		t.Errorf("expected 40 lowercase hex characters, got %q", key)
	}
}

func TestGenerateTokenKey_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		key, err := GenerateTokenKey()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate key generated: %s", key)
		}
		seen[key] = struct{}{}
	}
}

func TestIsWellFormedTokenKey(t *testing.T) {
	key, _ := GenerateTokenKey()

	cases := map[string]bool{
		key:            true,
		"":             false,
		"abc":          false,
		key[:39] + "z": false,
		key + "00":     false,
	}
	for in, want := range cases {
		if got := IsWellFormedTokenKey(in); got != want {
			t.Errorf("IsWellFormedTokenKey(%q) = %v, want %v", in, got, want)
		}
	}
}
