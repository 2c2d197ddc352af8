package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/oxoxo-backend/internal/apperror"
	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
)

const gameKeyPrefix = "oxoxo:game:"

// GameRepository keeps games that are still being played. Finished games are
// removed by the caller; nothing here keeps history.
type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
	// Lock reserves a game for one driver. It fails with ErrGameBusy while
	// another holder keeps the lock alive.
	Lock(ctx context.Context, id string) (Lock, error)
}

type dbGame struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

// NewGameRepository stores games with the given expiry; 0 keeps them forever.
// Locks expire after lockTTL unless extended.
func NewGameRepository(client *redis.Client, ttl, lockTTL time.Duration) GameRepository {
	return &dbGame{
		client:  client,
		ttl:     ttl,
		lockTTL: lockTTL,
	}
}

func gameKey(id string) string {
	return gameKeyPrefix + id
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, gameKey(game.ID), gameJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal(response, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, gameKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if deleted == 0 {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	return nil
}

// ListIDs returns the ids of every stored game, in no particular order.
func (that *dbGame) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string

	iter := that.client.Scan(ctx, 0, gameKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, iter.Val()[len(gameKeyPrefix):])
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan games: %w", err)
	}

	return ids, nil
}
