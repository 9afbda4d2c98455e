package entity

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/dominoes-backend/internal/apperror"
	"github.com/rocketscienceinc/dominoes-backend/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	t.Run("Creates a waiting session with an empty board", func(t *testing.T) {
		// When: creating a new session
		g, err := NewGame("123", PrivateType, 8)

		// Then: the session wraps a fresh engine state
		require.NoError(t, err)
		assert.Equal(t, "123", g.ID)
		assert.Equal(t, StatusWaiting, g.Status)
		assert.Equal(t, game.MarkPlayer1, g.State.CurrentPlayer())
		assert.Equal(t, 0, g.State.TurnCount())
		assert.False(t, g.StartedAt.IsZero())
	})

	t.Run("Propagates an unplayable board size", func(t *testing.T) {
		// When: creating a session with a 1x1 board
		g, err := NewGame("123", PrivateType, 1)

		// Then: construction fails before any state exists
		require.ErrorIs(t, err, game.ErrBoardTooSmall)
		assert.Nil(t, g)
	})
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}
		assert.True(t, game.IsFinished())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}
		assert.True(t, game.IsOngoing())
	})

	t.Run("IsWaiting returns true when game status is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}
		assert.True(t, game.IsWaiting())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}
		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}
		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}
		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown game status")
	})
}

func TestGame_MakeTurn(t *testing.T) {
	newOngoing := func(t *testing.T) *Game {
		t.Helper()

		g, err := NewGame("123", PrivateType, 8)
		require.NoError(t, err)
		g.Status = StatusOngoing

		return g
	}

	t.Run("Successful turn switches the mover", func(t *testing.T) {
		// Given: an ongoing session
		g := newOngoing(t)

		// When: Player 1 places a domino at (0,0)
		err := g.MakeTurn(game.MarkPlayer1, game.Position{Row: 0, Col: 0})

		// Then: both cells are marked and it is Player 2's turn
		require.NoError(t, err)
		assert.Equal(t, game.MarkPlayer1, g.State.PlayerAt(game.Position{Row: 0, Col: 0}))
		assert.Equal(t, game.MarkPlayer1, g.State.PlayerAt(game.Position{Row: 0, Col: 1}))
		assert.Equal(t, game.MarkPlayer2, g.State.CurrentPlayer())
		assert.Equal(t, StatusOngoing, g.Status)
	})

	t.Run("Rejects a turn out of order", func(t *testing.T) {
		// Given: an ongoing session with Player 1 to move
		g := newOngoing(t)

		// When: Player 2 tries to move first
		err := g.MakeTurn(game.MarkPlayer2, game.Position{Row: 0, Col: 0})

		// Then: the turn is rejected and nothing changes
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, 0, g.State.TurnCount())
	})

	t.Run("Surfaces an illegal placement as ErrIllegalMove", func(t *testing.T) {
		// Given: an ongoing session with (0,0)/(0,1) occupied
		g := newOngoing(t)
		require.NoError(t, g.MakeTurn(game.MarkPlayer1, game.Position{Row: 0, Col: 0}))

		// When: Player 2 anchors on the occupied cell
		err := g.MakeTurn(game.MarkPlayer2, game.Position{Row: 0, Col: 0})

		// Then: the session reports the engine's rejection
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, game.MarkPlayer2, g.State.CurrentPlayer())
		assert.Equal(t, 1, g.State.TurnCount())
	})

	t.Run("Finishes the session when the next mover is stuck", func(t *testing.T) {
		// Given: an ongoing 2x2 session
		g, err := NewGame("123", PrivateType, 2)
		require.NoError(t, err)
		g.Status = StatusOngoing

		// When: Player 1 takes the top row, leaving no vertical pair
		require.NoError(t, g.MakeTurn(game.MarkPlayer1, game.Position{Row: 0, Col: 0}))

		// Then: the session is finished and Player 1 holds the win
		assert.Equal(t, StatusFinished, g.Status)
		assert.Equal(t, game.MarkPlayer1, g.Winner)

		// Then: further turns are refused
		err = g.MakeTurn(game.MarkPlayer2, game.Position{Row: 1, Col: 0})
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestNewGameResult(t *testing.T) {
	// Given: a finished 2x2 session with named players
	g, err := NewGame("123", PublicType, 2)
	require.NoError(t, err)
	g.Status = StatusOngoing
	g.Players = []*Player{
		{ID: "p1", Name: "Alice", Mark: game.MarkPlayer1},
		{ID: "p2", Name: "Bob", Mark: game.MarkPlayer2},
	}
	require.NoError(t, g.MakeTurn(game.MarkPlayer1, game.Position{Row: 0, Col: 0}))
	require.True(t, g.IsFinished())

	// When: assembling the result record
	result := NewGameResult(g, g.PlayerByMark(game.MarkPlayer1), g.PlayerByMark(game.MarkPlayer2))

	// Then: it carries the final status, turn count and timing
	assert.Equal(t, "Alice", result.Player1Name)
	assert.Equal(t, "Bob", result.Player2Name)
	assert.Equal(t, game.StatusPlayer1Wins, result.Status)
	assert.Equal(t, 1, result.Turns)
	assert.Equal(t, g.StartedAt, result.CreatedAt)
	assert.GreaterOrEqual(t, result.Duration, time.Duration(0))
}
