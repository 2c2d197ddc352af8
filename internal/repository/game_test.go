package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/oxoxo-backend/internal/apperror"
	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
	"github.com/rocketscienceinc/oxoxo-backend/testing/suite"
)

func newGame(id string) *entity.Game {
	game := entity.NewGame(id, 3, 2, 9, []entity.PlayerID{1, 2})
	game.Board[4] = 1
	game.Seats[1].DidPlay = false
	game.Turn = 1
	game.Plies = 1

	return game
}

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	t.Run("Stores the game with expiry", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage.Connection, time.Hour, time.Minute)

		// Given: a game in progress
		game := newGame("123")

		// When: CreateOrUpdate is called
		err := gameRepo.CreateOrUpdate(ctx, game)

		// Then: the game is stored under its key with a TTL
		require.NoError(t, err)

		ttl, err := st.Storage.Connection.TTL(ctx, "oxoxo:game:123").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("Overwrites an existing game", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage.Connection, 0, time.Minute)

		game := newGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		game.Status = entity.StatusWon
		game.Winner = 1
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusWon, stored.Status)
		assert.Equal(t, entity.PlayerID(1), stored.Winner)
	})
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage.Connection, time.Hour, time.Minute)

		// Given: a stored game
		game := newGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the whole state round-trips
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage.Connection, time.Hour, time.Minute)

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage.Connection, time.Hour, time.Minute)

		// Given: a stored game
		game := newGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: DeleteByID is called with existing ID
		err := gameRepo.DeleteByID(ctx, game.ID)

		// Then: no error should be returned and the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage.Connection, time.Hour, time.Minute)

		// When: DeleteByID is called with non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameRepository_ListIDs(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage.Connection, time.Hour, time.Minute)

	// Given: two games and an unrelated key
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, newGame("a")))
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, newGame("b")))
	require.NoError(t, st.Storage.Connection.Set(ctx, "other", "x", 0).Err())

	// When: listing
	ids, err := gameRepo.ListIDs(ctx)

	// Then: only the game ids come back
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}
