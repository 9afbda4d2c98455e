package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/dominoes-backend/internal/entity"
)

type resultServiceStub struct {
	results []*entity.GameResult
	err     error
}

func (that *resultServiceStub) GetAllResults(_ context.Context) ([]*entity.GameResult, error) {
	return that.results, that.err
}

func newTestHandlers(stub *resultServiceStub) *handlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newHandlers(logger, stub)
}

func TestHandlers_Ping(t *testing.T) {
	// Given: a handler set
	h := newTestHandlers(&resultServiceStub{})

	// When: pinging the server
	rec := httptest.NewRecorder()
	h.ping(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// Then: it answers pong
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestHandlers_GameResults(t *testing.T) {
	t.Run("returns the result log as JSON", func(t *testing.T) {
		// Given: two recorded games
		stub := &resultServiceStub{
			results: []*entity.GameResult{
				{ID: 1, Player1Name: "Alice", Player2Name: "Bob", Status: "player1_wins", Turns: 29},
				{ID: 2, Player1Name: "Carol", Player2Name: "Dave", Status: "player2_wins", Turns: 4},
			},
		}
		h := newTestHandlers(stub)

		// When: requesting the results
		rec := httptest.NewRecorder()
		h.gameResults(rec, httptest.NewRequest(http.MethodGet, "/results", nil))

		// Then: both are returned, oldest first
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var got []*entity.GameResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Alice", got[0].Player1Name)
		assert.Equal(t, "player1_wins", got[0].Status)
		assert.Equal(t, 29, got[0].Turns)
		assert.Equal(t, "Carol", got[1].Player1Name)
	})

	t.Run("rejects non-GET requests", func(t *testing.T) {
		// Given: a handler set
		h := newTestHandlers(&resultServiceStub{})

		// When: posting to the results endpoint
		rec := httptest.NewRecorder()
		h.gameResults(rec, httptest.NewRequest(http.MethodPost, "/results", nil))

		// Then: the method is not allowed
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("reports storage failures", func(t *testing.T) {
		// Given: a result service that fails
		h := newTestHandlers(&resultServiceStub{err: errors.New("storage down")})

		// When: requesting the results
		rec := httptest.NewRecorder()
		h.gameResults(rec, httptest.NewRequest(http.MethodGet, "/results", nil))

		// Then: the failure becomes a 500
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("round-trips timestamps", func(t *testing.T) {
		// Given: a result with a creation time and duration
		createdAt := time.Date(2024, 11, 2, 15, 4, 5, 0, time.UTC)
		stub := &resultServiceStub{
			results: []*entity.GameResult{
				{ID: 7, Player1Name: "Alice", Player2Name: "Bob", Status: "player1_wins", Turns: 1, CreatedAt: createdAt, Duration: 95 * time.Second},
			},
		}
		h := newTestHandlers(stub)

		// When: requesting the results
		rec := httptest.NewRecorder()
		h.gameResults(rec, httptest.NewRequest(http.MethodGet, "/results", nil))

		// Then: the timestamp survives encoding
		var got []*entity.GameResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.True(t, got[0].CreatedAt.Equal(createdAt))
		assert.Equal(t, 95*time.Second, got[0].Duration)
	})
}
