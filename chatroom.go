package chatroom

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	_ "time/tzdata"

	"cloud.google.com/go/compute/metadata"
	"cloud.google.com/go/firestore"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/chatroom/contract"
	"github.com/chatroom/log"
	"github.com/google/uuid"
)

const (
	ErrorMsgLogField  = "errorMsg"
	userIDLogField    = "userID"
	roomIDLogField    = "roomID"
	pathLogField      = "path"
	requestIDLogField = "requestID"

	gcloudFuncSourceDir = "serverless_function_source_code"
)

func init() {
	functions.HTTP("Api", Api)
	fixDir()
}

// in GCP Functions, source code is placed in a directory named "serverless_function_source_code"
func fixDir() {
	fileInfo, err := os.Stat(gcloudFuncSourceDir)
	if err == nil && fileInfo.IsDir() {
		_ = os.Chdir(gcloudFuncSourceDir)
	}
}

func Api(w http.ResponseWriter, r *http.Request) {
	ctx := log.WithTrace(r.Context(), r.Header.Get("X-Cloud-Trace-Context"))
	logger := log.LoggerFromContext(ctx).With(
		slog.String(requestIDLogField, uuid.NewString()),
		slog.String(pathLogField, r.URL.Path),
	)
	ctx = log.WithLogger(ctx, logger)
	r = r.WithContext(ctx)

	switch {
	case r.URL.Path == "/login" && r.Method == http.MethodPost:
		handleLogin(w, r)
	case r.URL.Path == "/auth/message" && r.Method == http.MethodGet:
		handleAuthMessage(w, r)
	case r.URL.Path == "/profile" && r.Method == http.MethodPost:
		handleProfile(w, r)
	case r.URL.Path == "/partners" && r.Method == http.MethodGet:
		handlePartners(w, r)
	case r.URL.Path == "/users/search" && r.Method == http.MethodGet:
		handleSearch(w, r)
	case r.URL.Path == "/messages" && r.Method == http.MethodPost:
		handleSend(w, r)
	case r.URL.Path == "/messages/stream" && r.Method == http.MethodGet:
		handleStream(w, r)
	case r.URL.Path == "/route" && r.Method == http.MethodGet:
		handleRoute(w, r)
	default:
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

// handleLogin is the placeholder acknowledgment endpoint. The actual sign-in
// happens against Firebase Auth on the client; nothing in the chat flow
// depends on this route.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	log.LoggerFromContext(r.Context()).Info("login acknowledged")
	writeJSON(w, http.StatusOK, contract.LoginResponse{OK: true})
}

func newStoreClient(ctx context.Context) (*firestore.Client, error) {
	projectID, err := metadata.ProjectIDWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return firestore.NewClient(ctx, projectID)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
