// Package room manages chatroom documents. A room must exist, with a fresh
// profile snapshot for both participants, before any message is written to it.
package room

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/chatroom/chatkey"
	"github.com/chatroom/contract"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrSelfChat = errors.New("cannot open a chatroom with yourself")

// Ensure guarantees the chatroom document for the two participants exists and
// carries current participant data, and returns its id. One point read and at
// most one write. On an existing room only the participant list and the
// profile snapshot are merged in; createdAt and the last-message metadata are
// never touched. The snapshot is overwritten whole, not patched per field.
func Ensure(ctx context.Context, client *firestore.Client, a, b contract.Profile) (string, error) {
	if a.UID == b.UID {
		return "", ErrSelfChat
	}
	if a.UID == "" || b.UID == "" {
		return "", errors.New("both participants must have a uid")
	}

	key := chatkey.Resolve(a.UID, b.UID)
	docRef := client.Collection(contract.RoomCollection).Doc(key)

	_, err := docRef.Get(ctx)
	if status.Code(err) == codes.NotFound {
		if _, err := docRef.Set(ctx, createData(a, b)); err != nil {
			return "", fmt.Errorf("creating chatroom %s: %w", key, err)
		}
		return key, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading chatroom %s: %w", key, err)
	}

	if _, err := docRef.Set(ctx, refreshData(a, b), firestore.MergeAll); err != nil {
		return "", fmt.Errorf("refreshing chatroom %s: %w", key, err)
	}
	return key, nil
}

// createData is the full document for a brand-new room.
func createData(a, b contract.Profile) contract.Room {
	return contract.Room{
		Participants: participants(a, b),
		Profiles:     snapshot(a, b),
	}
}

// refreshData carries only the participant list and the profile snapshot.
// Merging it into an existing room must never touch createdAt or the
// last-message metadata.
func refreshData(a, b contract.Profile) map[string]any {
	return map[string]any{
		"participants":         participants(a, b),
		"participantsProfiles": snapshot(a, b),
	}
}

func participants(a, b contract.Profile) []string {
	uids := []string{a.UID, b.UID}
	sort.Strings(uids)
	return uids
}

// snapshot builds the denormalized profile map stored on a room document.
func snapshot(a, b contract.Profile) map[string]contract.Profile {
	return map[string]contract.Profile{
		a.UID: a,
		b.UID: b,
	}
}
