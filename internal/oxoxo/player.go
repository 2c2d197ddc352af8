package oxoxo

import (
	"fmt"

	"github.com/rocketscienceinc/oxoxo-backend/internal/apperror"
	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
	"github.com/rocketscienceinc/oxoxo-backend/internal/rules"
)

// Player picks and applies at most one move per turn. Play reports whether
// a mark was placed; an error means the game state is no longer trustworthy.
type Player interface {
	ID() entity.PlayerID
	Play(game *Game, survey Survey) (bool, error)
}

// Heuristic completes the most nearly finished line it can find, preferring
// its own lines, then opponents' in rotation order, then untouched lines.
type Heuristic struct {
	id entity.PlayerID
}

func NewHeuristic(id entity.PlayerID) *Heuristic {
	return &Heuristic{id: id}
}

// NewHeuristics builds one heuristic player per id.
func NewHeuristics(ids []entity.PlayerID) []Player {
	players := make([]Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, NewHeuristic(id))
	}

	return players
}

func (that *Heuristic) ID() entity.PlayerID {
	return that.id
}

func (that *Heuristic) Play(game *Game, survey Survey) (bool, error) {
	owners := make([]entity.PlayerID, 0, len(game.state.Seats)+2)
	owners = append(owners, that.id)
	owners = append(owners, game.Rotation()...)
	owners = append(owners, entity.Wildcard)

	for need := 1; need <= game.rules.Size(); need++ {
		byOwner := survey.WithNeed(need).ByOwner()

		for _, owner := range owners {
			entries := byOwner[owner]
			if len(entries) == 0 {
				continue
			}

			free := game.FreeSlots(entries[0].Line)
			if len(free) == 0 {
				return false, fmt.Errorf("%w: line %s needs %d but has no free slot", apperror.ErrSlotTaken, entries[0].Line, need)
			}

			if err := game.Claim(free[0], that.id); err != nil {
				return false, err
			}

			return true, nil
		}
	}

	return false, nil
}

// Scripted replays a fixed list of moves, skipping cells already taken.
// It stops playing once the list is exhausted.
type Scripted struct {
	id    entity.PlayerID
	moves []rules.Coord
	next  int
}

func NewScripted(id entity.PlayerID, moves ...rules.Coord) *Scripted {
	return &Scripted{id: id, moves: moves}
}

func (that *Scripted) ID() entity.PlayerID {
	return that.id
}

func (that *Scripted) Play(game *Game, _ Survey) (bool, error) {
	for that.next < len(that.moves) {
		pos := that.moves[that.next]
		that.next++

		cell, err := game.Get(pos)
		if err != nil {
			return false, err
		}

		if cell != entity.EmptyCell {
			continue
		}

		if err = game.Claim(pos, that.id); err != nil {
			return false, err
		}

		return true, nil
	}

	return false, nil
}
