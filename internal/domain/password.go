package domain

import "errors"

// Password wraps a validated plaintext secret for the short window between
// request parsing and hashing or comparison. It is never serialized and
// String deliberately does not reveal it.
type Password struct {
	value string
}

func ParsePassword(raw string) (Password, error) {
	if len(raw) < 8 {
		return Password{}, errors.New("password must be at least 8 characters")
	}
	return Password{value: raw}, nil
}

// Reveal returns the plaintext. Call sites should hand the result straight
// to bcrypt and nothing else.
func (p Password) Reveal() string {
	return p.value
}

// String keeps the secret out of logs and fmt verbs.
func (p Password) String() string {
	return "********"
}
