package chatroom

import (
	"log/slog"
	"net/http"

	"github.com/chatroom/auth"
	"github.com/chatroom/contract"
	"github.com/chatroom/log"
	"github.com/chatroom/partner"
)

// handlePartners lists the users the caller already has a chatroom with.
// Store failure degrades to an empty, flagged list rather than an error
// response: the sidebar stays usable.
func handlePartners(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.LoggerFromContext(ctx)

	ident, err := auth.Authenticate(r)
	if err != nil {
		logger.Error("error while authenticating", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	logger = logger.With(slog.String(userIDLogField, ident.UID))

	client, err := newStoreClient(ctx)
	if err != nil {
		logger.Error("error while creating firestore client", slog.String(ErrorMsgLogField, err.Error()))
		writeJSON(w, http.StatusOK, contract.PartnersResponse{Partners: []contract.Profile{}, Degraded: true})
		return
	}
	defer client.Close()

	partners, err := partner.List(ctx, client, ident.UID)
	if err != nil {
		logger.Error("error while listing partners", slog.String(ErrorMsgLogField, err.Error()))
		writeJSON(w, http.StatusOK, contract.PartnersResponse{Partners: []contract.Profile{}, Degraded: true})
		return
	}

	writeJSON(w, http.StatusOK, contract.PartnersResponse{Partners: partners})
}

// handleSearch is the exact-email user lookup. No match is a normal empty
// result; only a store failure produces an error status.
func handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.LoggerFromContext(ctx)

	ident, err := auth.Authenticate(r)
	if err != nil {
		logger.Error("error while authenticating", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	logger = logger.With(slog.String(userIDLogField, ident.UID))

	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "missing email parameter", http.StatusBadRequest)
		return
	}

	client, err := newStoreClient(ctx)
	if err != nil {
		logger.Error("error while creating firestore client", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer client.Close()

	results, err := partner.FindByEmail(ctx, client, email, ident.UID)
	if err != nil {
		logger.Error("error while searching users", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []contract.Profile{}
	}

	writeJSON(w, http.StatusOK, contract.SearchResponse{Results: results})
}
