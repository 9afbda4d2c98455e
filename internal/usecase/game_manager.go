package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/dominoes-backend/internal/apperror"
	"github.com/rocketscienceinc/dominoes-backend/internal/entity"
	"github.com/rocketscienceinc/dominoes-backend/internal/game"
	"github.com/rocketscienceinc/dominoes-backend/internal/pkg"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.GameResult) error
	GetAll(ctx context.Context) ([]*entity.GameResult, error)
}

// GameManager drives game sessions end to end: players, live games in
// redis, and the durable result log once a game finishes.
type GameManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	gameRepo   gameRepo
	resultRepo resultRepo

	boardSize int
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, resultRepo resultRepo, boardSize int) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		resultRepo: resultRepo,

		boardSize: boardSize,
	}
}

// MakeTurn applies one placement for the player and persists the outcome.
// A finished game is reported with apperror.ErrGameFinished after its
// result has been written to the log.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, pos game.Position) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	currentGame, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	if currentGame.IsWaiting() {
		return currentGame, apperror.ErrGameIsNotStarted
	}

	if err = currentGame.MakeTurn(player.Mark, pos); err != nil {
		return currentGame, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.updateGame(ctx, currentGame); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	if currentGame.IsFinished() {
		that.finishGame(ctx, currentGame)

		return currentGame, apperror.ErrGameFinished
	}

	return currentGame, nil
}

// ConnectToGame joins a second player to an existing game and starts it.
func (that *GameManager) ConnectToGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	existingGame, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == existingGame.ID {
		return existingGame, nil
	}

	if len(existingGame.Players) == 2 {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameAlreadyFull, gameID)
	}

	player.GameID = existingGame.ID
	player.Mark = game.MarkPlayer2
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed update player by id: %w", err)
	}

	existingGame.Status = entity.StatusOngoing
	existingGame.Players = append(existingGame.Players, player)
	if err = that.updateGame(ctx, existingGame); err != nil {
		return nil, fmt.Errorf("failed update game by id: %w", err)
	}

	return existingGame, nil
}

// GetOrCreateGame returns the player's current game or creates a new
// waiting one with the player as Player 1.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == "" {
		existingGame, err := that.createGame(ctx, player)
		if err != nil {
			return nil, fmt.Errorf("failed create game: %w", err)
		}

		return existingGame, nil
	}

	existingGame, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// GetAllResults - returns every recorded game result, oldest first.
func (that *GameManager) GetAllResults(ctx context.Context) ([]*entity.GameResult, error) {
	results, err := that.resultRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game results: %w", err)
	}

	return results, nil
}

// finishGame writes the immutable result record, removes the live game and
// detaches both players so they can queue up again.
func (that *GameManager) finishGame(ctx context.Context, finishedGame *entity.Game) {
	log := that.logger.With("method", "finishGame", "gameID", finishedGame.ID)

	result := entity.NewGameResult(
		finishedGame,
		that.playerName(finishedGame, game.MarkPlayer1),
		that.playerName(finishedGame, game.MarkPlayer2),
	)

	if err := that.resultRepo.Save(ctx, result); err != nil {
		log.Error("failed to save game result", "error", err)
	}

	if err := that.gameRepo.DeleteByID(ctx, finishedGame.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	for _, player := range finishedGame.Players {
		player.Mark = ""
		player.GameID = ""

		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			log.Error("failed to update player", "error", err)
		}
	}

	log.Info("game finished", "winner", finishedGame.Winner, "turns", finishedGame.State.TurnCount())
}

func (that *GameManager) playerName(g *entity.Game, mark string) string {
	for _, player := range g.Players {
		if player.Mark != mark {
			continue
		}

		if player.Name != "" {
			return player.Name
		}

		return player.ID
	}

	return ""
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	gameID := pkg.GenerateGameID()
	player.GameID = gameID
	player.Mark = game.MarkPlayer1

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed update player: %w", err)
	}

	newGame, err := entity.NewGame(gameID, entity.PrivateType, that.boardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	newGame.Players = []*entity.Player{
		player,
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return newGame, nil
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	playerID := pkg.GenerateNewSessionID()

	player := &entity.Player{
		ID: playerID,
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
