package chatroom

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/chatroom/auth"
	"github.com/chatroom/contract"
	"github.com/chatroom/log"
	"github.com/chatroom/message"
	"github.com/chatroom/room"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// handleSend delivers one message to the room shared with the requested
// partner. The room document is ensured first; a failed ensure aborts the
// send so a message can never exist without its room.
func handleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.LoggerFromContext(ctx)

	ident, err := auth.Authenticate(r)
	if err != nil {
		logger.Error("error while authenticating", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	logger = logger.With(slog.String(userIDLogField, ident.UID))

	data, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("error while reading request body", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req contract.SendRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Error("error while decoding request", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	// local validation first, nothing below may touch the store for bad input
	if req.To == "" {
		http.Error(w, "missing recipient", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		http.Error(w, "empty message", http.StatusBadRequest)
		return
	}
	if req.To == ident.UID {
		http.Error(w, room.ErrSelfChat.Error(), http.StatusBadRequest)
		return
	}

	client, err := newStoreClient(ctx)
	if err != nil {
		logger.Error("error while creating firestore client", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer client.Close()

	ctx = log.WithLogger(ctx, logger)
	sender := contract.Profile{UID: ident.UID, Email: ident.Email}
	recipient := lookupProfile(ctx, client, req.To)

	roomID, err := room.Ensure(ctx, client, sender, recipient)
	if err != nil {
		if errors.Is(err, room.ErrSelfChat) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error("error while ensuring chatroom", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	logger = logger.With(slog.String(roomIDLogField, roomID))

	messageID, err := message.Send(ctx, client, roomID, ident.UID, ident.Email, req.Content)
	if err != nil {
		logger.Error("error while sending message", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info("message sent")
	writeJSON(w, http.StatusOK, contract.SendResponse{RoomID: roomID, MessageID: messageID})
}

// lookupProfile fetches the recipient's mirrored profile. A user who never
// completed the profile mirror still gets a uid-only snapshot; it heals on
// their next login.
func lookupProfile(ctx context.Context, client *firestore.Client, uid string) contract.Profile {
	doc, err := client.Collection(contract.UserCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			log.LoggerFromContext(ctx).Warn("recipient profile lookup failed",
				slog.String(ErrorMsgLogField, err.Error()))
		}
		return contract.Profile{UID: uid}
	}
	var u contract.User
	if err := doc.DataTo(&u); err != nil {
		return contract.Profile{UID: uid}
	}
	return contract.Profile{UID: uid, Email: u.Email}
}
