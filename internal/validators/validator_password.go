package validators

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	passwordvalidator "github.com/wagslane/go-password-validator"
)

const (
	// DefaultMinPasswordLength is the shortest accepted password.
	DefaultMinPasswordLength = 8
	// DefaultMaxSimilarity is the quick-ratio at which a password counts as
	// too close to a user attribute.
	DefaultMaxSimilarity = 0.7
	// DefaultMinEntropyBits is the entropy floor applied after the rule based
	// checks pass.
	DefaultMinEntropyBits = 40
)

const (
	msgPasswordTooShort = "This password is too short. It must contain at least %d characters."
	msgPasswordCommon   = "This password is too common."
	msgPasswordNumeric  = "This password is entirely numeric."
	msgPasswordSimilar  = "The password is too similar to the %s."
	msgPasswordWeak     = "This password is too easy to guess. Use a longer mix of letters, numbers and symbols."
)

//go:embed common_passwords.txt
var commonPasswordsList []byte

var attributeSplit = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// UserAttribute is a named user value a password must not resemble.
// Name is the human label used in the failure message.
type UserAttribute struct {
	Name  string
	Value string
}

// PasswordValidator rejects passwords that are short, common, entirely
// numeric, similar to the owner's attributes or below an entropy floor.
type PasswordValidator struct {
	minLength      int
	maxSimilarity  float64
	minEntropyBits float64
	common         map[string]struct{}
}

// NewPasswordValidator builds a validator with the default thresholds and
// the embedded common password list.
func NewPasswordValidator() *PasswordValidator {
	return &PasswordValidator{
		minLength:      DefaultMinPasswordLength,
		maxSimilarity:  DefaultMaxSimilarity,
		minEntropyBits: DefaultMinEntropyBits,
		common:         loadCommonPasswords(commonPasswordsList),
	}
}

func loadCommonPasswords(list []byte) map[string]struct{} {
	set := make(map[string]struct{})
	sc := bufio.NewScanner(bytes.NewReader(list))
	for sc.Scan() {
		line := strings.ToLower(strings.TrimSpace(sc.Text()))
		if line != "" {
			set[line] = struct{}{}
		}
	}
	return set
}

// Check returns every failure message for password. An empty result means
// the password is accepted. The entropy floor is only consulted when no
// other rule failed.
func (v *PasswordValidator) Check(password string, attrs ...UserAttribute) []string {
	var msgs []string

	if name, ok := v.similarAttribute(password, attrs); ok {
		msgs = append(msgs, fmt.Sprintf(msgPasswordSimilar, name))
	}
	if utf8.RuneCountInString(password) < v.minLength {
		msgs = append(msgs, fmt.Sprintf(msgPasswordTooShort, v.minLength))
	}
	if _, ok := v.common[strings.ToLower(strings.TrimSpace(password))]; ok {
		msgs = append(msgs, msgPasswordCommon)
	}
	if isNumeric(password) {
		msgs = append(msgs, msgPasswordNumeric)
	}

	if len(msgs) == 0 && passwordvalidator.Validate(password, v.minEntropyBits) != nil {
		msgs = append(msgs, msgPasswordWeak)
	}
	return msgs
}

func (v *PasswordValidator) similarAttribute(password string, attrs []UserAttribute) (string, bool) {
	pw := strings.ToLower(password)
	for _, attr := range attrs {
		if attr.Value == "" {
			continue
		}
		value := strings.ToLower(attr.Value)
		parts := append(attributeSplit.Split(value, -1), value)
		for _, part := range parts {
			if exceedsLengthRatio(pw, part, v.maxSimilarity) {
				continue
			}
			if quickRatio(pw, part) >= v.maxSimilarity {
				return attr.Name, true
			}
		}
	}
	return "", false
}

// exceedsLengthRatio skips attribute parts so short relative to the
// password that they can never reach the similarity threshold.
func exceedsLengthRatio(password, value string, maxSimilarity float64) bool {
	pwLen := utf8.RuneCountInString(password)
	valueLen := utf8.RuneCountInString(value)
	bound := maxSimilarity / 2 * float64(pwLen)
	return pwLen >= 10*valueLen && float64(valueLen) < bound
}

// quickRatio is an upper bound on the similarity of a and b: twice the size
// of their character multiset intersection over their combined length.
func quickRatio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}

	avail := make(map[rune]int)
	for _, r := range b {
		avail[r]++
	}
	matches := 0
	for _, r := range a {
		if avail[r] > 0 {
			avail[r]--
			matches++
		}
	}
	return 2 * float64(matches) / float64(total)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
