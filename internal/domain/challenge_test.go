package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestParseChallengeID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "valid uuid passes", raw: uuid.NewString()},
		{name: "uuid with surrounding spaces passes", raw: "  " + uuid.NewString() + " "},
		{name: "not a uuid fails", raw: "not-a-uuid", wantErr: true},
		{name: "empty fails", raw: "", wantErr: true},
		{name: "truncated uuid fails", raw: uuid.NewString()[:20], wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseChallengeID(tt.raw)
			if tt.wantErr && err == nil {
				t.Fatalf("expected error for %q", tt.raw)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.raw, err)
			}
		})
	}
}

func TestNewChallengeIDRoundTrips(t *testing.T) {
	id, err := NewChallengeID(nil)
	if err != nil {
		t.Fatalf("failed generating challenge id: %v", err)
	}

	parsed, err := ParseChallengeID(id.String())
	if err != nil {
		t.Fatalf("generated id %q did not re-parse: %v", id, err)
	}
	if !parsed.Equal(id) {
		t.Fatalf("expected %q to equal %q after round trip", parsed, id)
	}
}

func TestNewChallengeIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewChallengeID(nil)
		if err != nil {
			t.Fatalf("failed generating challenge id: %v", err)
		}
		if seen[id.String()] {
			t.Fatalf("generated duplicate challenge id %q", id)
		}
		seen[id.String()] = true
	}
}

func TestParseOneTimeCode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "six digits pass", raw: "123456"},
		{name: "leading zeros pass", raw: "000042"},
		{name: "surrounding spaces are trimmed", raw: " 123456 "},
		{name: "five digits fail", raw: "12345", wantErr: true},
		{name: "seven digits fail", raw: "1234567", wantErr: true},
		{name: "letters fail", raw: "12a456", wantErr: true},
		{name: "empty fails", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := ParseOneTimeCode(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.raw, err)
			}
			if code.String() != strings.TrimSpace(tt.raw) {
				t.Fatalf("expected %q, got %q", strings.TrimSpace(tt.raw), code)
			}
		})
	}
}

func TestNewOneTimeCodeShape(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := NewOneTimeCode(nil)
		if err != nil {
			t.Fatalf("failed generating code: %v", err)
		}
		if len(code.String()) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		if _, err := ParseOneTimeCode(code.String()); err != nil {
			t.Fatalf("generated code %q did not re-parse: %v", code, err)
		}
	}
}
