package profile

import (
	"context"
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{
			name:     "already normalized",
			email:    "a@b.com",
			expected: "a@b.com",
		},
		{
			name:     "mixed case",
			email:    "A@B.Com",
			expected: "a@b.com",
		},
		{
			name:     "surrounding whitespace",
			email:    "  A@B.com \n",
			expected: "a@b.com",
		},
		{
			name:     "empty",
			email:    "",
			expected: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := NormalizeEmail(test.email); got != test.expected {
				t.Errorf("NormalizeEmail(%q) = %q; want %q", test.email, got, test.expected)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		display  string
		email    string
		expected string
	}{
		{
			name:     "provider name wins",
			display:  "Alice",
			email:    "alice@example.com",
			expected: "Alice",
		},
		{
			name:     "fallback to local part",
			display:  "",
			email:    "alice@example.com",
			expected: "alice",
		},
		{
			name:     "no at sign",
			display:  "",
			email:    "alice",
			expected: "alice",
		},
		{
			name:     "both empty",
			display:  "",
			email:    "",
			expected: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := DisplayName(test.display, test.email); got != test.expected {
				t.Errorf("DisplayName(%q, %q) = %q; want %q", test.display, test.email, got, test.expected)
			}
		})
	}
}

func TestSaveRejectsMissingUID(t *testing.T) {
	// validation happens before any store access, nil client must be safe
	err := Save(context.Background(), nil, "", "a@b.com", "", "")
	if !errors.Is(err, ErrMissingUID) {
		t.Errorf("Save with empty uid = %v; want ErrMissingUID", err)
	}
}
