package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/oxoxo-backend/internal/apperror"
	"github.com/rocketscienceinc/oxoxo-backend/internal/config"
	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
	"github.com/rocketscienceinc/oxoxo-backend/internal/metrics"
	"github.com/rocketscienceinc/oxoxo-backend/internal/oxoxo"
	"github.com/rocketscienceinc/oxoxo-backend/internal/repository"
	"github.com/rocketscienceinc/oxoxo-backend/internal/rules"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
	Lock(ctx context.Context, id string) (repository.Lock, error)
}

type rulesCache interface {
	Get(size, dimensions int) (*rules.RuleSet, error)
}

// Observer receives a copy of the game after every ply of a run.
type Observer func(game *entity.Game)

type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	rules    rulesCache
	settings config.Game
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, rules rulesCache, settings config.Game) *GameManager {
	return &GameManager{
		logger: logger,

		gameRepo: gameRepo,
		rules:    rules,
		settings: settings,
	}
}

func (that *GameManager) CreateGame(ctx context.Context, opts GameOptions) (*entity.Game, error) {
	opts = that.withDefaults(opts)
	if err := that.validate(opts); err != nil {
		return nil, err
	}

	ruleSet, err := that.rules.Get(opts.Size, opts.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("failed to get rules: %w", err)
	}

	game, err := oxoxo.New(uuid.NewString(), ruleSet, oxoxo.NewHeuristics(playerIDs(opts.Players)))
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.updateGame(ctx, game.State()); err != nil {
		return nil, err
	}

	metrics.GamesCreated.Inc()
	that.logger.Info("game created", "id", game.State().ID,
		"size", opts.Size, "dimensions", opts.Dimensions, "players", opts.Players)

	return game.State(), nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// Inspect returns the stored game together with its current survey.
func (that *GameManager) Inspect(ctx context.Context, id string) (*entity.Game, oxoxo.Survey, error) {
	state, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	game, err := that.restore(state)
	if err != nil {
		return nil, nil, err
	}

	return state, game.Survey(), nil
}

// ListGames returns every stored game. Games that expire while listing are skipped.
func (that *GameManager) ListGames(ctx context.Context) ([]*entity.Game, error) {
	ids, err := that.gameRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]*entity.Game, 0, len(ids))
	for _, id := range ids {
		game, err := that.gameRepo.GetByID(ctx, id)
		if errors.Is(err, apperror.ErrGameNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get game: %w", err)
		}

		games = append(games, game)
	}

	return games, nil
}

// Step plays one ply. A game that ends is removed from storage and returned
// in its final state. Fails with ErrGameBusy while another driver holds the game.
func (that *GameManager) Step(ctx context.Context, id string) (*entity.Game, error) {
	lock, err := that.lockGame(ctx, id)
	if err != nil {
		return nil, err
	}
	defer that.unlockGame(ctx, id, lock)

	state, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = state.ConfirmOngoingState(); err != nil {
		return state, err
	}

	game, err := that.restore(state)
	if err != nil {
		return nil, err
	}

	if _, err = that.step(game); err != nil {
		return nil, err
	}

	if err = that.settle(ctx, game); err != nil {
		return nil, err
	}

	return game.State(), nil
}

// Run plays until the game ends, the context is cancelled or the configured
// ply cap is hit. Progress made before an interruption is saved. The game
// stays locked for the whole run.
func (that *GameManager) Run(ctx context.Context, id string, observer Observer) (*entity.Game, error) {
	lock, err := that.lockGame(ctx, id)
	if err != nil {
		return nil, err
	}
	defer that.unlockGame(ctx, id, lock)

	state, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = state.ConfirmOngoingState(); err != nil {
		return state, err
	}

	game, err := that.restore(state)
	if err != nil {
		return nil, err
	}

	return that.run(ctx, game, lock, observer)
}

// Play creates a game and runs it to the end.
func (that *GameManager) Play(ctx context.Context, opts GameOptions, observer Observer) (*entity.Game, error) {
	state, err := that.CreateGame(ctx, opts)
	if err != nil {
		return nil, err
	}

	return that.Run(ctx, state.ID, observer)
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	lock, err := that.lockGame(ctx, id)
	if err != nil {
		return err
	}
	defer that.unlockGame(ctx, id, lock)

	if err = that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

func (that *GameManager) run(ctx context.Context, game *oxoxo.Game, lock repository.Lock, observer Observer) (*entity.Game, error) {
	log := that.logger.With("method", "run", "id", game.State().ID)

	for plies := 0; ; plies++ {
		if err := ctx.Err(); err != nil {
			return game.State(), that.interrupt(ctx, game, fmt.Errorf("run interrupted: %w", err))
		}

		if that.settings.MaxPlies > 0 && plies >= that.settings.MaxPlies {
			log.Warn("ply limit reached", "plies", plies)
			return game.State(), that.interrupt(ctx, game, fmt.Errorf("%w: %d plies", apperror.ErrPlyLimit, plies))
		}

		// a lost lock means another driver may own the game now, so nothing is saved
		if err := lock.Extend(ctx); err != nil {
			return game.State(), fmt.Errorf("failed to keep game lock: %w", err)
		}

		current, err := that.step(game)
		if err != nil {
			return nil, that.interrupt(ctx, game, err)
		}

		if observer != nil {
			observer(game.State().Clone())
		}

		if current.IsTerminal() {
			if err = that.settle(ctx, game); err != nil {
				return nil, err
			}

			return game.State(), nil
		}
	}
}

func (that *GameManager) step(game *oxoxo.Game) (oxoxo.State, error) {
	before := game.State().Plies

	current, err := game.Step()
	if err != nil {
		return current, fmt.Errorf("failed to step game: %w", err)
	}

	metrics.Plies.Add(float64(game.State().Plies - before))

	return current, nil
}

// settle saves an ongoing game or removes a finished one.
func (that *GameManager) settle(ctx context.Context, game *oxoxo.Game) error {
	state := game.State()
	if state.IsOngoing() {
		return that.updateGame(ctx, state)
	}

	metrics.GamesFinished.WithLabelValues(state.Status).Inc()
	that.logger.Info("game finished", "id", state.ID, "status", state.Status,
		"winner", state.Winner, "plies", state.Plies)

	that.deleteGame(ctx, state)

	return nil
}

// interrupt saves progress and returns cause, joined with any save failure.
func (that *GameManager) interrupt(ctx context.Context, game *oxoxo.Game, cause error) error {
	saveCtx := context.WithoutCancel(ctx)
	if err := that.updateGame(saveCtx, game.State()); err != nil {
		return errors.Join(cause, err)
	}

	return cause
}

func (that *GameManager) lockGame(ctx context.Context, id string) (repository.Lock, error) {
	lock, err := that.gameRepo.Lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lock game: %w", err)
	}

	return lock, nil
}

func (that *GameManager) unlockGame(ctx context.Context, id string, lock repository.Lock) {
	if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
		that.logger.With("method", "unlockGame").Error("failed to release game lock", "id", id, "error", err)
	}
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "deleteGame")

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "id", game.ID, "error", err)
		return
	}

	log.Debug("game deleted", "id", game.ID)
}
