package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordValidator_Check(t *testing.T) {
	v := NewPasswordValidator()
	attrs := []UserAttribute{
		{Name: "username", Value: "johnsmith"},
		{Name: "first name", Value: "John"},
		{Name: "last name", Value: "Smith"},
		{Name: "email address", Value: "john.smith@example.com"},
	}

	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{
			name:     "strong",
			password: "Sup3r-Secret!pw",
		},
		{
			name:     "too short",
			password: "Ab1!x",
			want:     []string{"This password is too short. It must contain at least 8 characters."},
		},
		{
			name:     "common",
			password: "Password",
			want:     []string{"This password is too common."},
		},
		{
			name:     "entirely numeric",
			password: "73918264",
			want:     []string{"This password is entirely numeric."},
		},
		{
			name:     "short common numeric",
			password: "123456",
			want: []string{
				"This password is too short. It must contain at least 8 characters.",
				"This password is too common.",
				"This password is entirely numeric.",
			},
		},
		{
			name:     "similar to username",
			password: "johnsmith1",
			want:     []string{"The password is too similar to the username."},
		},
		{
			name:     "low entropy",
			password: "aaaaaaaaaaaa",
			want:     []string{msgPasswordWeak},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Check(tt.password, attrs...))
		})
	}
}

func TestPasswordValidator_SimilarToEmailLocalPart(t *testing.T) {
	v := NewPasswordValidator()
	got := v.Check("Wonderland7", UserAttribute{Name: "email address", Value: "wonderland@example.com"})
	assert.Equal(t, []string{"The password is too similar to the email address."}, got)
}

func TestPasswordValidator_NoAttributes(t *testing.T) {
	assert.Empty(t, NewPasswordValidator().Check("Sup3r-Secret!pw"))
}

func TestQuickRatio(t *testing.T) {
	assert.InDelta(t, 1.0, quickRatio("abc", "cba"), 1e-9)
	assert.InDelta(t, 0.0, quickRatio("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.5, quickRatio("ab", "bc"), 1e-9)
	assert.InDelta(t, 1.0, quickRatio("", ""), 1e-9)
}

func TestExceedsLengthRatio(t *testing.T) {
	assert.True(t, exceedsLengthRatio("averyveryverylongpassword", "x", DefaultMaxSimilarity))
	assert.False(t, exceedsLengthRatio("password", "pass", DefaultMaxSimilarity))
}

func TestLoadCommonPasswords(t *testing.T) {
	set := loadCommonPasswords([]byte("One\n  two \n\nTHREE\n"))
	assert.Len(t, set, 3)
	assert.Contains(t, set, "one")
	assert.Contains(t, set, "two")
	assert.Contains(t, set, "three")
}
