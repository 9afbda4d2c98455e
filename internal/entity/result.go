package entity

import "time"

// GameResult is the immutable record written once per finished game.
type GameResult struct {
	ID          int64         `json:"id,omitempty"`
	Player1Name string        `json:"player1_name"`
	Player2Name string        `json:"player2_name"`
	Status      string        `json:"status"`
	Turns       int           `json:"turns"`
	CreatedAt   time.Time     `json:"created_at"`
	Duration    time.Duration `json:"duration"`
}

// NewGameResult - assembles the result record for a finished session.
func NewGameResult(g *Game, player1Name, player2Name string) *GameResult {
	return &GameResult{
		Player1Name: player1Name,
		Player2Name: player2Name,
		Status:      g.State.Status(),
		Turns:       g.State.TurnCount(),
		CreatedAt:   g.StartedAt,
		Duration:    time.Since(g.StartedAt),
	}
}
