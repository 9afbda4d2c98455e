package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/dominoes-backend/internal/entity"
	"github.com/rocketscienceinc/dominoes-backend/internal/game"
)

type resultRecorder interface {
	Save(ctx context.Context, result *entity.GameResult) error
}

// Game drives a full domino match over a line-based text interface: it
// renders the board, prompts the player to move, feeds parsed positions to
// the engine and re-prompts on malformed or illegal input.
type Game struct {
	logger *slog.Logger
	state  *game.Game

	in  *bufio.Scanner
	out io.Writer

	player1Name string
	player2Name string

	recorder  resultRecorder
	startedAt time.Time
}

func New(logger *slog.Logger, boardSize int, in io.Reader, out io.Writer, player1Name, player2Name string) (*Game, error) {
	state, err := game.New(boardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &Game{
		logger:      logger,
		state:       state,
		in:          bufio.NewScanner(in),
		out:         out,
		player1Name: player1Name,
		player2Name: player2Name,
		startedAt:   time.Now().UTC(),
	}, nil
}

// RecordResults - attaches a result log written once the game finishes.
func (that *Game) RecordResults(recorder resultRecorder) {
	that.recorder = recorder
}

// Run plays the game until the player to move is stuck or the input ends.
func (that *Game) Run(ctx context.Context) error {
	log := that.logger.With("component", "console")

	for !that.state.IsGameOver() {
		fmt.Fprint(that.out, that.state.String())
		fmt.Fprintf(that.out, "%s (%s) move [row col]: ", that.currentPlayerName(), that.state.CurrentPlayer())

		if !that.in.Scan() {
			if err := that.in.Err(); err != nil {
				return fmt.Errorf("failed to read move: %w", err)
			}

			log.Info("input closed before the game finished")

			return nil
		}

		pos, err := ParseMove(that.in.Text())
		if errors.Is(err, ErrInvalidMoveFormat) {
			fmt.Fprintln(that.out, "Enter two numbers separated by a space, e.g. 2 3.")
			continue
		}

		that.state.MakeMove(pos)
		if !that.state.WasLastMoveLegal() {
			fmt.Fprintln(that.out, "That placement is not allowed, try again.")
		}
	}

	fmt.Fprint(that.out, that.state.String())
	fmt.Fprintf(that.out, "%s wins after %d turns.\n", that.winnerName(), that.state.TurnCount())

	if that.recorder != nil {
		if err := that.saveResult(ctx); err != nil {
			return fmt.Errorf("failed to save game result: %w", err)
		}

		log.Info("game result saved", "status", that.state.Status(), "turns", that.state.TurnCount())
	}

	return nil
}

func (that *Game) saveResult(ctx context.Context) error {
	result := &entity.GameResult{
		Player1Name: that.player1Name,
		Player2Name: that.player2Name,
		Status:      that.state.Status(),
		Turns:       that.state.TurnCount(),
		CreatedAt:   that.startedAt,
		Duration:    time.Since(that.startedAt),
	}

	return that.recorder.Save(ctx, result)
}

func (that *Game) currentPlayerName() string {
	if that.state.CurrentPlayer() == game.MarkPlayer1 {
		return that.player1Name
	}
	return that.player2Name
}

func (that *Game) winnerName() string {
	if that.state.Status() == game.StatusPlayer1Wins {
		return that.player1Name
	}
	return that.player2Name
}
