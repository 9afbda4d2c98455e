package console

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/dominoes-backend/internal/game"
)

// ErrInvalidMoveFormat - the input line is not two whitespace-separated
// non-negative integers.
var ErrInvalidMoveFormat = errors.New("invalid move format")

var movePattern = regexp.MustCompile(`^\d+\s+\d+$`)

// ParseMove converts a raw input line into a board position. Leading and
// trailing whitespace is ignored; anything other than exactly two
// non-negative integers is rejected. Range checking is left to the engine.
func ParseMove(s string) (game.Position, error) {
	s = strings.TrimSpace(s)

	if !movePattern.MatchString(s) {
		return game.Position{}, fmt.Errorf("%w: %q", ErrInvalidMoveFormat, s)
	}

	fields := strings.Fields(s)

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return game.Position{}, fmt.Errorf("%w: %q", ErrInvalidMoveFormat, s)
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.Position{}, fmt.Errorf("%w: %q", ErrInvalidMoveFormat, s)
	}

	return game.Position{Row: row, Col: col}, nil
}
