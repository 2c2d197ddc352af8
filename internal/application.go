package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/oxoxo-backend/internal/config"
	"github.com/rocketscienceinc/oxoxo-backend/internal/repository"
	"github.com/rocketscienceinc/oxoxo-backend/internal/repository/storage"
	"github.com/rocketscienceinc/oxoxo-backend/internal/rules"
	"github.com/rocketscienceinc/oxoxo-backend/internal/usecase"
	"github.com/rocketscienceinc/oxoxo-backend/transport/rest"
	"github.com/rocketscienceinc/oxoxo-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if conf.Redis.Host == "" || conf.Redis.Port == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	rulesCache, err := rules.NewCache(conf.RulesCacheSize)
	if err != nil {
		return err
	}

	gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.Redis.GameTTL, conf.Redis.LockTTL)
	gameUseCase := usecase.NewGameManager(logger, gameRepo, rulesCache, conf.Game)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err := rest.New(logger, gameUseCase, redisStorage).Start(groupCtx, conf.HTTPPort); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if err := websocket.New(logger, gameUseCase).Start(groupCtx, conf.SocketPort); err != nil {
			return fmt.Errorf("WebSocket server error: %w", err)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
