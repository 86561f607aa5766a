package chatroom

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/chatroom/contract"
	"github.com/chatroom/log"
)

var (
	graphhopperAPIKey  = os.Getenv("GRAPHHOPPER_API_KEY")
	graphhopperBaseURL = "https://graphhopper.com/api/1"
)

// handleRoute proxies routing requests for the map demo to GraphHopper so
// the API key never reaches the browser. A missing key degrades to a
// feature-level alert instead of an error.
func handleRoute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.LoggerFromContext(ctx)

	if graphhopperAPIKey == "" {
		logger.Warn("GRAPHHOPPER_API_KEY is not set, routing disabled")
		writeJSON(w, http.StatusOK, contract.RouteAlertResponse{
			Alert: "Routing is unavailable: no routing API key configured",
		})
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		http.Error(w, "missing from/to parameters", http.StatusBadRequest)
		return
	}

	params := url.Values{}
	params.Add("point", from)
	params.Add("point", to)
	params.Set("profile", "car")
	params.Set("points_encoded", "false")
	params.Set("key", graphhopperAPIKey)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		graphhopperBaseURL+"/route?"+params.Encode(),
		http.NoBody,
	)
	if err != nil {
		logger.Error("error while building route request", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.Error("error while calling routing provider", slog.String(ErrorMsgLogField, err.Error()))
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Error("unexpected routing provider status",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.Error("error while relaying route response", slog.String(ErrorMsgLogField, err.Error()))
	}
}
