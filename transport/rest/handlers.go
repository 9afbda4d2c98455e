package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type handlers struct {
	logger  *slog.Logger
	results resultService
}

func newHandlers(logger *slog.Logger, results resultService) *handlers {
	return &handlers{
		logger:  logger,
		results: results,
	}
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// gameResults - returns the full result log as JSON, oldest game first.
func (that *handlers) gameResults(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "gameResults")

	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	results, err := that.results.GetAllResults(r.Context())
	if err != nil {
		log.Error("failed to get game results", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(results); err != nil {
		log.Error("failed to encode game results", "error", err)
	}
}
