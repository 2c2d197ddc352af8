package usecase

import (
	"fmt"

	"github.com/rocketscienceinc/oxoxo-backend/internal/apperror"
	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
	"github.com/rocketscienceinc/oxoxo-backend/internal/oxoxo"
	"github.com/rocketscienceinc/oxoxo-backend/internal/rules"
)

// GameOptions describes a requested board. Zero fields take the configured defaults.
type GameOptions struct {
	Size       int `json:"size"`
	Dimensions int `json:"dimensions"`
	Players    int `json:"players"`
}

func (that *GameManager) withDefaults(opts GameOptions) GameOptions {
	if opts.Size == 0 {
		opts.Size = that.settings.Size
	}
	if opts.Dimensions == 0 {
		opts.Dimensions = that.settings.Dimensions
	}
	if opts.Players == 0 {
		opts.Players = that.settings.Players
	}

	return opts
}

// validate rejects boards the server is not willing to enumerate.
func (that *GameManager) validate(opts GameOptions) error {
	if opts.Players < 1 || (that.settings.MaxPlayers > 0 && opts.Players > that.settings.MaxPlayers) {
		return fmt.Errorf("%w: %d players, want 1..%d", apperror.ErrInvalidConfiguration, opts.Players, that.settings.MaxPlayers)
	}

	slots, err := rules.CountSlots(opts.Size, opts.Dimensions)
	if err != nil {
		return err
	}

	if that.settings.MaxSlots > 0 && slots > that.settings.MaxSlots {
		return fmt.Errorf("%w: %d^%d has %d slots, limit is %d", apperror.ErrInvalidConfiguration,
			opts.Size, opts.Dimensions, slots, that.settings.MaxSlots)
	}

	lines, err := rules.CountLines(opts.Size, opts.Dimensions)
	if err != nil {
		return err
	}

	if that.settings.MaxLines > 0 && lines > that.settings.MaxLines {
		return fmt.Errorf("%w: %d^%d has %d lines, limit is %d", apperror.ErrInvalidConfiguration,
			opts.Size, opts.Dimensions, lines, that.settings.MaxLines)
	}

	return nil
}

func playerIDs(count int) []entity.PlayerID {
	ids := make([]entity.PlayerID, 0, count)
	for i := 1; i <= count; i++ {
		ids = append(ids, entity.PlayerID(i))
	}

	return ids
}

// restore seats a heuristic player on every seat of a stored game.
func (that *GameManager) restore(state *entity.Game) (*oxoxo.Game, error) {
	ruleSet, err := that.rules.Get(state.Size, state.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("failed to get rules: %w", err)
	}

	game, err := oxoxo.Restore(ruleSet, state, oxoxo.NewHeuristics(state.PlayerIDs()))
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return game, nil
}
