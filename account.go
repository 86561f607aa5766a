package chatroom

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/chatroom/auth"
	"github.com/chatroom/contract"
	"github.com/chatroom/log"
	"github.com/chatroom/profile"
)

// handleAuthMessage translates a provider error code into the fixed
// user-facing message the login form shows. Unauthenticated on purpose:
// the caller is someone who just failed to sign in.
func handleAuthMessage(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	writeJSON(w, http.StatusOK, contract.AuthMessageResponse{
		Message: auth.UserMessage(code),
	})
}

type profileRequest struct {
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// handleProfile mirrors the signed-in user into the users collection. The
// client calls it after every successful provider login so the profile
// record is queryable and fresh.
func handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.LoggerFromContext(ctx)

	ident, err := auth.Authenticate(r)
	if err != nil {
		logger.Error("error while authenticating", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	logger = logger.With(slog.String(userIDLogField, ident.UID))

	var req profileRequest
	if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
		// body is optional, a bare POST mirrors uid and email only
		if err := json.Unmarshal(data, &req); err != nil {
			logger.Error("error while decoding request", slog.String(ErrorMsgLogField, err.Error()))
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
	}

	client, err := newStoreClient(ctx)
	if err != nil {
		logger.Error("error while creating firestore client", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer client.Close()

	if err := profile.Save(ctx, client, ident.UID, ident.Email, req.DisplayName, req.PhotoURL); err != nil {
		logger.Error("error while saving profile", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info("profile mirrored")
	writeJSON(w, http.StatusOK, contract.LoginResponse{OK: true})
}
