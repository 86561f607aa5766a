// Package profile mirrors identity-provider accounts into the queryable
// users collection. The mirror is an upsert, refreshed on every login.
package profile

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/chatroom/contract"
)

var ErrMissingUID = errors.New("missing uid")

// Save upserts the user's profile document. Fields not written here
// (nothing today, but the merge keeps it future-safe) are left untouched.
func Save(ctx context.Context, client *firestore.Client, uid, email, displayName, photoURL string) error {
	if uid == "" {
		return ErrMissingUID
	}

	email = NormalizeEmail(email)
	data := map[string]any{
		"uid":         uid,
		"email":       email,
		"displayName": DisplayName(displayName, email),
		"lastSeen":    firestore.ServerTimestamp,
	}
	if photoURL != "" {
		data["photoURL"] = photoURL
	}

	_, err := client.Collection(contract.UserCollection).Doc(uid).Set(ctx, data, firestore.MergeAll)
	return err
}

// NormalizeEmail applies the canonical form used everywhere emails are
// stored or compared: trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DisplayName falls back to the email local part when the provider
// supplied no name.
func DisplayName(name, email string) string {
	if name != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}
