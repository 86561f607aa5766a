// Package message is the append-only write path and the live-updating read
// path for a chatroom's messages.
package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/chatroom/contract"
	"github.com/chatroom/log"
	"google.golang.org/api/iterator"
)

var ErrEmptyMessage = errors.New("empty message content")

// Send appends a message to the room and returns its store-assigned id.
// Empty or whitespace-only content is rejected before any store access.
// Ordering is whatever the server assigns at write time, clients never
// supply timestamps. The room's last-message metadata is updated best-effort
// afterwards; a metadata failure does not fail the send.
func Send(ctx context.Context, client *firestore.Client, roomID, senderUID, senderEmail, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyMessage
	}

	roomRef := client.Collection(contract.RoomCollection).Doc(roomID)
	docRef, _, err := roomRef.Collection(contract.MessageCollection).Add(ctx, contract.Message{
		Content:     content,
		SenderUID:   senderUID,
		SenderEmail: senderEmail,
	})
	if err != nil {
		return "", fmt.Errorf("appending message to %s: %w", roomID, err)
	}

	if _, err := roomRef.Set(ctx, map[string]any{
		"lastMessageAt":      firestore.ServerTimestamp,
		"lastMessagePreview": preview(content),
	}, firestore.MergeAll); err != nil {
		// advisory only, the message itself is already durable
		log.LoggerFromContext(ctx).Warn("failed to update room metadata",
			slog.String("roomID", roomID),
			slog.String("errorMsg", err.Error()),
		)
	}
	return docRef.ID, nil
}

func collectMessages(snap *firestore.QuerySnapshot) ([]contract.Message, error) {
	msgs := make([]contract.Message, 0, snap.Size)
	docs := snap.Documents
	for {
		doc, err := docs.Next()
		if err == iterator.Done {
			return msgs, nil
		}
		if err != nil {
			return nil, err
		}
		var m contract.Message
		if err := doc.DataTo(&m); err != nil {
			return nil, err
		}
		m.ID = doc.Ref.ID
		msgs = append(msgs, m)
	}
}
