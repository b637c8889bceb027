package domain

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// ChallengeID identifies one pending second-factor attempt. A fresh random
// UUID is generated per login; the value supplied at verification must match
// it exactly.
type ChallengeID struct {
	value string
}

func ParseChallengeID(raw string) (ChallengeID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ChallengeID{}, errors.New("challenge id is not a valid uuid")
	}
	return ChallengeID{value: id.String()}, nil
}

// NewChallengeID draws a random UUID from rnd. Pass nil for crypto/rand.
func NewChallengeID(rnd io.Reader) (ChallengeID, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	id, err := uuid.NewRandomFromReader(rnd)
	if err != nil {
		return ChallengeID{}, err
	}
	return ChallengeID{value: id.String()}, nil
}

func (c ChallengeID) String() string {
	return c.value
}

func (c ChallengeID) Equal(other ChallengeID) bool {
	return c.value == other.value
}

// OneTimeCode is the six-digit secret delivered out of band. Parsing
// requires exactly six ASCII digits; anything else is rejected rather than
// length-checked alone, so a shaped-but-garbage code never reaches a store
// lookup.
type OneTimeCode struct {
	value string
}

const oneTimeCodeLength = 6

func ParseOneTimeCode(raw string) (OneTimeCode, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) != oneTimeCodeLength {
		return OneTimeCode{}, errors.New("code must be exactly 6 digits")
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return OneTimeCode{}, errors.New("code must be exactly 6 digits")
		}
	}
	return OneTimeCode{value: trimmed}, nil
}

// NewOneTimeCode draws six independent uniform digits from rnd, preserving
// leading zeros. Pass nil for crypto/rand.
func NewOneTimeCode(rnd io.Reader) (OneTimeCode, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	var b strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < oneTimeCodeLength; i++ {
		digit, err := rand.Int(rnd, ten)
		if err != nil {
			return OneTimeCode{}, err
		}
		b.WriteByte(byte('0' + digit.Int64()))
	}
	return OneTimeCode{value: b.String()}, nil
}

func (c OneTimeCode) String() string {
	return c.value
}

func (c OneTimeCode) Equal(other OneTimeCode) bool {
	return c.value == other.value
}
