package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns a random (v4) UUID as exactly 32 lowercase hex characters.
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// IsID32 reports whether s is 32 lowercase hex characters.
func IsID32(s string) bool {
	if len(s) != 32 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// ParseRequestID accepts a canonical UUID or a 32-hex id and returns the
// 32-hex form.
func ParseRequestID(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if IsID32(s) {
		return s, true
	}
	u, err := uuid.Parse(s)
	if err != nil || len(s) != 36 {
		return "", false
	}
	return strings.ReplaceAll(u.String(), "-", ""), true
}
