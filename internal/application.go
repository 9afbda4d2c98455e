package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/dominoes-backend/internal/config"
	"github.com/rocketscienceinc/dominoes-backend/internal/console"
	"github.com/rocketscienceinc/dominoes-backend/internal/game"
	"github.com/rocketscienceinc/dominoes-backend/internal/repository"
	"github.com/rocketscienceinc/dominoes-backend/internal/repository/storage"
	"github.com/rocketscienceinc/dominoes-backend/internal/usecase"
	"github.com/rocketscienceinc/dominoes-backend/transport/rest"
	"github.com/rocketscienceinc/dominoes-backend/transport/websocket"
)

var (
	ErrAddrNotFound     = errors.New("redis address string is empty")
	ErrUnknownMode      = errors.New("unknown application mode")
	ErrStoragePathUnset = errors.New("sqlite storage path is empty")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	// an unplayable board is a configuration error; refuse to start
	if conf.BoardSize < 2 {
		return fmt.Errorf("%w: board-size %d", game.ErrBoardTooSmall, conf.BoardSize)
	}

	switch conf.Mode {
	case config.ModeConsole:
		return runConsole(ctx, logger, conf)
	case config.ModeServer:
		return runServer(ctx, logger, conf)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMode, conf.Mode)
	}
}

// runConsole plays a single local game on stdin/stdout, recording the
// result when a storage path is configured.
func runConsole(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	consoleGame, err := console.New(
		logger,
		conf.BoardSize,
		os.Stdin,
		os.Stdout,
		conf.Console.Player1Name,
		conf.Console.Player2Name,
	)
	if err != nil {
		return fmt.Errorf("could not create console game: %w", err)
	}

	if conf.SQLiteStoragePath != "" {
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return fmt.Errorf("could not open sqlite storage: %w", err)
		}

		defer func() {
			if err = sqliteStorage.Close(); err != nil {
				log.Error("could not close sqlite storage", "error", err)
			}
		}()

		if err = sqliteStorage.Init(ctx); err != nil {
			return fmt.Errorf("could not init sqlite storage: %w", err)
		}

		consoleGame.RecordResults(repository.NewGameResultRepository(sqliteStorage.Connection))
	}

	if err = consoleGame.Run(ctx); err != nil {
		return fmt.Errorf("console game failed: %w", err)
	}

	return nil
}

// runServer wires redis, sqlite and both transports together.
func runServer(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	if conf.SQLiteStoragePath == "" {
		return ErrStoragePathUnset
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	playerRepo := repository.NewPlayerRepository(redisStorage.Connection)
	gameRepo := repository.NewGameRepository(redisStorage.Connection)
	resultRepo := repository.NewGameResultRepository(sqliteStorage.Connection)
	gameManager := usecase.NewGameManager(logger, playerRepo, gameRepo, resultRepo, conf.BoardSize)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(logger, conf.HTTPPort, gameManager); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
