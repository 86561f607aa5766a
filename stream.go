package chatroom

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chatroom/auth"
	"github.com/chatroom/chatkey"
	"github.com/chatroom/log"
	"github.com/chatroom/message"
	"github.com/chatroom/room"
)

// streamRoomID resolves the room a stream request targets. Only rooms the
// caller can also send to are streamable, so a self-room is rejected the same
// way the send path rejects it.
func streamRoomID(self, with string) (string, error) {
	if with == "" {
		return "", errors.New("missing with parameter")
	}
	if with == self {
		return "", room.ErrSelfChat
	}
	return chatkey.Resolve(self, with), nil
}

// handleStream serves the live message history for the room shared with the
// requested partner as a server-sent event stream. Every event carries the
// full ordered message list; the subscription is torn down when the client
// disconnects. One stream request maps to exactly one store subscription.
func handleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.LoggerFromContext(ctx)

	ident, err := auth.Authenticate(r)
	if err != nil {
		logger.Error("error while authenticating", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	logger = logger.With(slog.String(userIDLogField, ident.UID))

	roomID, err := streamRoomID(ident.UID, r.URL.Query().Get("with"))
	if err != nil {
		logger.Error("error while resolving stream room", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	logger = logger.With(slog.String(roomIDLogField, roomID))
	ctx = log.WithLogger(ctx, logger)

	client, err := newStoreClient(ctx)
	if err != nil {
		logger.Error("error while creating firestore client", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer client.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Error("streaming unsupported!")
		http.Error(w, "Streaming unsupported!", http.StatusInternalServerError)
		return
	}

	sub := message.Subscribe(ctx, client, roomID)
	defer sub.Stop()
	logger.Info("message stream opened")

	for msgs := range sub.Updates() {
		jsonData, err := json.Marshal(msgs)
		if err != nil {
			logger.Error("error while encoding snapshot", slog.String(ErrorMsgLogField, err.Error()))
			return
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", jsonData); err != nil {
			return
		}
		flusher.Flush()
	}

	if err := sub.Err(); err != nil {
		logger.Error("message stream failed", slog.String(ErrorMsgLogField, err.Error()))
		return
	}
	logger.Info("message stream closed")
}
