package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/dominoes-backend/internal/entity"
)

type GameResultRepository interface {
	Save(ctx context.Context, result *entity.GameResult) error
	GetAll(ctx context.Context) ([]*entity.GameResult, error)
}

type dbGameResult struct {
	conn *sql.DB
}

func NewGameResultRepository(conn *sql.DB) GameResultRepository {
	return &dbGameResult{
		conn: conn,
	}
}

func (that *dbGameResult) Save(ctx context.Context, result *entity.GameResult) error {
	query := `INSERT INTO game_results (player1_name, player2_name, status, turns, created_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.Player1Name,
		result.Player2Name,
		result.Status,
		result.Turns,
		result.CreatedAt.UTC().Format(time.RFC3339Nano),
		result.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert game result: %w", err)
	}

	return nil
}

func (that *dbGameResult) GetAll(ctx context.Context) ([]*entity.GameResult, error) {
	query := `SELECT id, player1_name, player2_name, status, turns, created_at, duration_ms
		FROM game_results ORDER BY id`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query game results: %w", err)
	}
	defer rows.Close()

	var results []*entity.GameResult

	for rows.Next() {
		var (
			result     entity.GameResult
			createdAt  string
			durationMS int64
		)

		if err = rows.Scan(
			&result.ID,
			&result.Player1Name,
			&result.Player2Name,
			&result.Status,
			&result.Turns,
			&createdAt,
			&durationMS,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}

		result.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		result.Duration = time.Duration(durationMS) * time.Millisecond

		results = append(results, &result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game results: %w", err)
	}

	return results, nil
}
