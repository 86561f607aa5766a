// Package partner answers "who can I chat with": the set of users the caller
// already shares a chatroom with, plus on-demand exact-email lookup.
package partner

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/chatroom/chatkey"
	"github.com/chatroom/contract"
	"github.com/chatroom/logger"
	"github.com/chatroom/profile"
	"google.golang.org/api/iterator"
)

// Firestore rejects "in" filters with more than 10 values.
const inQueryLimit = 10

// List returns the caller's existing chat partners, sorted by email with
// unknown emails first. Partner emails come from the denormalized room
// snapshots; uids whose email is still unknown after that pass are resolved
// against the users collection in chunked "in" queries. A failed chunk is
// logged and skipped, the remaining partners keep uid-only entries.
func List(ctx context.Context, client *firestore.Client, uid string) ([]contract.Profile, error) {
	log := logger.FromContext(ctx)

	iter := client.Collection(contract.RoomCollection).
		Where("participants", "array-contains", uid).
		Documents(ctx)
	defer iter.Stop()

	partners := map[string]contract.Profile{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing chatrooms for %s: %w", uid, err)
		}
		var rm contract.Room
		if err := doc.DataTo(&rm); err != nil {
			log.Printf("skipping malformed chatroom %s: %v", doc.Ref.ID, err)
			continue
		}
		collect(partners, doc.Ref.ID, rm, uid)
	}

	for _, uids := range chunk(missingEmails(partners), inQueryLimit) {
		usersIter := client.Collection(contract.UserCollection).
			Where("uid", "in", uids).
			Documents(ctx)
		if err := mergeChunk(partners, usersIter); err != nil {
			log.Printf("partner email lookup failed for chunk %v: %v", uids, err)
		}
	}

	return sortedList(partners), nil
}

func mergeChunk(partners map[string]contract.Profile, iter *firestore.DocumentIterator) error {
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}
		var u contract.User
		if err := doc.DataTo(&u); err != nil {
			continue
		}
		if u.UID != "" {
			partners[u.UID] = contract.Profile{UID: u.UID, Email: u.Email}
		}
	}
}

// FindByEmail looks up user profiles by exact email match, excluding the
// caller. Zero matches is a normal outcome and returns an empty slice.
func FindByEmail(ctx context.Context, client *firestore.Client, email, selfUID string) ([]contract.Profile, error) {
	email = profile.NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}

	iter := client.Collection(contract.UserCollection).
		Where("email", "==", email).
		Documents(ctx)
	defer iter.Stop()

	var results []contract.Profile
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("searching users by email: %w", err)
		}
		var u contract.User
		if err := doc.DataTo(&u); err != nil {
			continue
		}
		if u.UID == "" || u.UID == selfUID {
			continue
		}
		results = append(results, contract.Profile{UID: u.UID, Email: u.Email})
	}
	return results, nil
}

// collect extracts the other participant of a room into partners. Prefers the
// denormalized snapshot; when the snapshot is missing or lists nobody but the
// caller, falls back to splitting the room id. The caller is never collected,
// even from malformed rooms that list them twice.
func collect(partners map[string]contract.Profile, roomID string, rm contract.Room, self string) {
	found := false
	for _, prof := range rm.Profiles {
		if prof.UID == "" || prof.UID == self {
			continue
		}
		partners[prof.UID] = prof
		found = true
	}
	if found {
		return
	}
	if other := chatkey.Partner(roomID, self); other != "" && other != self {
		if _, ok := partners[other]; !ok {
			partners[other] = contract.Profile{UID: other}
		}
	}
}

// missingEmails returns the uids whose email is still unknown, in a stable
// order so chunking is deterministic.
func missingEmails(partners map[string]contract.Profile) []string {
	var uids []string
	for uid, prof := range partners {
		if prof.Email == "" {
			uids = append(uids, uid)
		}
	}
	sort.Strings(uids)
	return uids
}

// chunk splits uids into slices of at most size elements.
func chunk(uids []string, size int) [][]string {
	if len(uids) == 0 {
		return nil
	}
	var chunks [][]string
	for len(uids) > size {
		chunks = append(chunks, uids[:size])
		uids = uids[size:]
	}
	return append(chunks, uids)
}

// sortedList flattens partners into a list ordered by email ascending, comparing
// case-insensitively, with empty emails first. Ties fall back to uid.
func sortedList(partners map[string]contract.Profile) []contract.Profile {
	list := make([]contract.Profile, 0, len(partners))
	for _, prof := range partners {
		list = append(list, prof)
	}
	sort.Slice(list, func(i, j int) bool {
		ei, ej := strings.ToLower(list[i].Email), strings.ToLower(list[j].Email)
		if ei != ej {
			return ei < ej
		}
		return list[i].UID < list[j].UID
	})
	return list
}
