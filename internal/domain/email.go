package domain

import (
	"fmt"
	"strings"
)

// Email is a validated, normalized account identifier. The zero value is
// not valid; construct one with ParseEmail.
type Email struct {
	value string
}

// ParseEmail validates and normalizes an untrusted address. The check is
// deliberately shallow: the address must contain "@" and be at least 8
// characters after trimming. Full RFC validation is left to the mail
// infrastructure that actually delivers to it.
func ParseEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if !strings.Contains(normalized, "@") || len(normalized) < 8 {
		return Email{}, fmt.Errorf("invalid email address")
	}
	return Email{value: normalized}, nil
}

func (e Email) String() string {
	return e.value
}

func (e Email) IsZero() bool {
	return e.value == ""
}
