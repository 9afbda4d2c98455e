package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	StatusInProgress  = "in_progress"
	StatusPlayer1Wins = "player1_wins"
	StatusPlayer2Wins = "player2_wins"

	MarkPlayer1 = "X"
	MarkPlayer2 = "O"

	MarkNone = ""

	emptyGlyph = "."
)

// ErrBoardTooSmall - no domino fits on a board smaller than 2x2.
var ErrBoardTooSmall = errors.New("board size must be at least 2")

// Position is a 0-indexed (row, column) pair on the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Observer is notified about every cell that changes owner.
type Observer func(pos Position, mark string)

// Game holds the state of a domino tiling game: Player 1 places horizontal
// dominoes, Player 2 places vertical ones, and the player who cannot move
// loses. All mutation goes through MakeMove.
type Game struct {
	Size          int        `json:"size"`
	Board         [][]string `json:"board"`
	Turn          string     `json:"turn"`
	Turns         int        `json:"turns"`
	LastMoveLegal bool       `json:"last_move_legal"`

	observers []Observer
}

// New - creates a game with an empty size x size board and Player 1 to move.
func New(size int) (*Game, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBoardTooSmall, size)
	}

	board := make([][]string, size)
	for i := range board {
		board[i] = make([]string, size)
	}

	return &Game{
		Size:          size,
		Board:         board,
		Turn:          MarkPlayer1,
		Turns:         0,
		LastMoveLegal: true,
	}, nil
}

// Opponent - returns the other player's mark.
func Opponent(mark string) string {
	if mark == MarkPlayer1 {
		return MarkPlayer2
	}
	return MarkPlayer1
}

// Observe registers a cell-change observer. Observers run synchronously
// inside MakeMove, on the caller's goroutine.
func (that *Game) Observe(fn Observer) {
	that.observers = append(that.observers, fn)
}

// PlayerAt - returns the mark occupying the cell, or MarkNone for an empty
// or out-of-bounds position.
func (that *Game) PlayerAt(pos Position) string {
	if !that.inBounds(pos) {
		return MarkNone
	}
	return that.Board[pos.Row][pos.Col]
}

// CurrentPlayer - returns the mark of the player to move.
func (that *Game) CurrentPlayer() string {
	return that.Turn
}

// TurnCount - returns the number of successfully applied moves.
func (that *Game) TurnCount() int {
	return that.Turns
}

// WasLastMoveLegal - reports whether the most recent MakeMove was accepted.
func (that *Game) WasLastMoveLegal() bool {
	return that.LastMoveLegal
}

// IsLegalMove - checks whether the current player may anchor a domino at pos.
// Player 1 needs pos and its right neighbor empty, Player 2 needs pos and
// the cell below it empty. The board is never mutated here.
func (that *Game) IsLegalMove(pos Position) bool {
	if !that.inBounds(pos) {
		return false
	}

	if that.Turn == MarkPlayer1 {
		return pos.Col < that.Size-1 &&
			that.Board[pos.Row][pos.Col] == MarkNone &&
			that.Board[pos.Row][pos.Col+1] == MarkNone
	}

	return pos.Row < that.Size-1 &&
		that.Board[pos.Row][pos.Col] == MarkNone &&
		that.Board[pos.Row+1][pos.Col] == MarkNone
}

// MakeMove - places the current player's domino anchored at pos. An illegal
// attempt only clears the last-move-legal flag; board, turn and counter stay
// untouched. Legality is fully decided before any cell is written.
func (that *Game) MakeMove(pos Position) {
	if !that.IsLegalMove(pos) {
		that.LastMoveLegal = false
		return
	}

	second := Position{Row: pos.Row, Col: pos.Col + 1}
	if that.Turn == MarkPlayer2 {
		second = Position{Row: pos.Row + 1, Col: pos.Col}
	}

	that.setCell(pos, that.Turn)
	that.setCell(second, that.Turn)

	that.LastMoveLegal = true
	that.Turns++
	that.Turn = Opponent(that.Turn)
}

// IsGameOver - reports whether the player to move has no legal placement
// anywhere on the board.
func (that *Game) IsGameOver() bool {
	for row := 0; row < that.Size; row++ {
		for col := 0; col < that.Size; col++ {
			if that.IsLegalMove(Position{Row: row, Col: col}) {
				return false
			}
		}
	}

	return true
}

// Status - resolves the game outcome: the stuck player loses, so a finished
// game is won by the opponent of the player to move.
func (that *Game) Status() string {
	if !that.IsGameOver() {
		return StatusInProgress
	}

	if that.Turn == MarkPlayer1 {
		return StatusPlayer2Wins
	}

	return StatusPlayer1Wins
}

// IsWinner - reports whether the given mark has won. Always false while the
// game is in progress.
func (that *Game) IsWinner(mark string) bool {
	switch that.Status() {
	case StatusPlayer1Wins:
		return mark == MarkPlayer1
	case StatusPlayer2Wins:
		return mark == MarkPlayer2
	default:
		return false
	}
}

// String - renders the board for diagnostics: a header row of column
// indices, then each board row prefixed by its index, cells separated by
// single spaces, "." for empty cells.
func (that *Game) String() string {
	var sb strings.Builder

	sb.WriteString("  ")
	for col := 0; col < that.Size; col++ {
		fmt.Fprintf(&sb, "%d ", col)
	}
	sb.WriteString("\n")

	for row := 0; row < that.Size; row++ {
		fmt.Fprintf(&sb, "%d ", row)
		for col := 0; col < that.Size; col++ {
			glyph := that.Board[row][col]
			if glyph == MarkNone {
				glyph = emptyGlyph
			}
			sb.WriteString(glyph + " ")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (that *Game) inBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < that.Size && pos.Col >= 0 && pos.Col < that.Size
}

func (that *Game) setCell(pos Position, mark string) {
	that.Board[pos.Row][pos.Col] = mark

	for _, fn := range that.observers {
		fn(pos, mark)
	}
}
