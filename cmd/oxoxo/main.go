// Command oxoxo plays one game between heuristic players in the terminal and
// prints the board after every ply.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
	"github.com/rocketscienceinc/oxoxo-backend/internal/oxoxo"
	"github.com/rocketscienceinc/oxoxo-backend/internal/render"
	"github.com/rocketscienceinc/oxoxo-backend/internal/rules"
)

func main() {
	size := flag.Int("size", 4, "board side length, also the line length to win")
	dimensions := flag.Int("dimensions", 3, "number of board axes")
	players := flag.Int("players", 3, "number of heuristic players")
	quiet := flag.Bool("quiet", false, "print only the final board")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if err := play(os.Stdout, *size, *dimensions, *players, *quiet); err != nil {
		logger.Error("game failed", "error", err)
		os.Exit(1)
	}
}

func play(out io.Writer, size, dimensions, players int, quiet bool) error {
	ruleSet, err := rules.New(size, dimensions)
	if err != nil {
		return err
	}

	ids := make([]entity.PlayerID, 0, players)
	for i := 1; i <= players; i++ {
		ids = append(ids, entity.PlayerID(i))
	}

	game, err := oxoxo.New("console", ruleSet, oxoxo.NewHeuristics(ids))
	if err != nil {
		return err
	}

	state := oxoxo.InProgress
	for !state.IsTerminal() {
		if state, err = game.Step(); err != nil {
			return err
		}

		if !quiet || state.IsTerminal() {
			fmt.Fprintf(out, "ply %d\n%s\n", game.State().Plies, render.Text(game.Snapshot(), size, dimensions))
		}
	}

	result := game.State()
	switch state {
	case oxoxo.Won:
		fmt.Fprintf(out, "player %s (%c) wins after %d plies\n", result.Winner, render.Symbol(result.Winner), result.Plies)
	default:
		fmt.Fprintf(out, "stalemate after %d plies\n", result.Plies)
	}

	return nil
}
