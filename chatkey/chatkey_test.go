package chatkey

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected string
	}{
		{
			name:     "already sorted",
			a:        "abc",
			b:        "xyz",
			expected: "abc_xyz",
		},
		{
			name:     "reversed",
			a:        "xyz",
			b:        "abc",
			expected: "abc_xyz",
		},
		{
			name:     "equal uids",
			a:        "abc",
			b:        "abc",
			expected: "abc_abc",
		},
		{
			name:     "lexicographic not numeric",
			a:        "u10",
			b:        "u9",
			expected: "u10_u9",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Resolve(test.a, test.b)
			if got != test.expected {
				t.Errorf("Resolve(%q, %q) = %q; want %q", test.a, test.b, got, test.expected)
			}
			if rev := Resolve(test.b, test.a); rev != got {
				t.Errorf("Resolve(%q, %q) = %q; want %q (order independence)", test.b, test.a, rev, got)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		expectedA string
		expectedB string
		ok        bool
	}{
		{
			name:      "valid key",
			key:       "abc_xyz",
			expectedA: "abc",
			expectedB: "xyz",
			ok:        true,
		},
		{
			name: "no separator",
			key:  "abcxyz",
			ok:   false,
		},
		{
			name: "empty component",
			key:  "abc_",
			ok:   false,
		},
		{
			name: "empty key",
			key:  "",
			ok:   false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, b, ok := Split(test.key)
			if ok != test.ok || a != test.expectedA || b != test.expectedB {
				t.Errorf("Split(%q) = (%q, %q, %v); want (%q, %q, %v)",
					test.key, a, b, ok, test.expectedA, test.expectedB, test.ok)
			}
		})
	}
}

func TestPartner(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		self     string
		expected string
	}{
		{
			name:     "self is first",
			key:      "abc_xyz",
			self:     "abc",
			expected: "xyz",
		},
		{
			name:     "self is second",
			key:      "abc_xyz",
			self:     "xyz",
			expected: "abc",
		},
		{
			name:     "self not a participant",
			key:      "abc_xyz",
			self:     "other",
			expected: "",
		},
		{
			name:     "malformed key",
			key:      "abcxyz",
			self:     "abc",
			expected: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Partner(test.key, test.self); got != test.expected {
				t.Errorf("Partner(%q, %q) = %q; want %q", test.key, test.self, got, test.expected)
			}
		})
	}
}
