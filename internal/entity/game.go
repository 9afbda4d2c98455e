package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/dominoes-backend/internal/apperror"
	"github.com/rocketscienceinc/dominoes-backend/internal/game"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const (
	PublicType  = "public"
	PrivateType = "private"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is the session wrapped around a single board: two players, a
// lifecycle status and the engine state itself.
type Game struct {
	ID        string     `json:"id"`
	State     *game.Game `json:"state"`
	Winner    string     `json:"winner,omitempty"`
	Status    string     `json:"status"`
	StartedAt time.Time  `json:"started_at"`
	Players   []*Player  `json:"players,omitempty"`
	Type      string     `json:"type,omitempty"`
}

func NewGame(id, gameType string, boardSize int) (*Game, error) {
	state, err := game.New(boardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &Game{
		ID:        id,
		State:     state,
		Status:    StatusWaiting,
		StartedAt: time.Now().UTC(),
		Type:      gameType,
	}, nil
}

// MakeTurn applies one placement for the given mark. The engine's
// silent-flag rejection is translated into the session error taxonomy so
// remote callers get an explicit signal.
func (that *Game) MakeTurn(playerMark string, pos game.Position) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.State.CurrentPlayer() != playerMark {
		return apperror.ErrNotYourTurn
	}

	that.State.MakeMove(pos)
	if !that.State.WasLastMoveLegal() {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrIllegalMove, pos.Row, pos.Col)
	}

	that.UpdateGameState()

	return nil
}

// UpdateGameState - finalizes the session once the player to move is stuck.
func (that *Game) UpdateGameState() {
	switch that.State.Status() {
	case game.StatusPlayer1Wins:
		that.Winner = game.MarkPlayer1
		that.Status = StatusFinished
	case game.StatusPlayer2Wins:
		that.Winner = game.MarkPlayer2
		that.Status = StatusFinished
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsPublic() bool {
	return that.Type == PublicType
}

// PlayerByMark - returns the display name of the player holding the mark.
func (that *Game) PlayerByMark(mark string) string {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player.Name
		}
	}
	return ""
}
