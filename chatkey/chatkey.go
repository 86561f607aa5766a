package chatkey

import "strings"

// Separator joins the two participant uids inside a chatroom id.
// Firebase uids are alphanumeric, so "_" can never appear inside one.
const Separator = "_"

// Resolve derives the chatroom id for a pair of participants.
// The result is the same regardless of argument order.
func Resolve(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + Separator + b
}

// Split returns the two participant uids encoded in a chatroom id.
// ok is false when the id does not have the two-part form.
func Split(key string) (a, b string, ok bool) {
	a, b, ok = strings.Cut(key, Separator)
	if !ok || a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}

// Partner extracts the other participant's uid from a chatroom id.
// Returns "" when self is not a participant or the id is malformed.
func Partner(key, self string) string {
	a, b, ok := Split(key)
	if !ok {
		return ""
	}
	switch self {
	case a:
		return b
	case b:
		return a
	}
	return ""
}
