package oxoxo

import (
	"fmt"

	"github.com/rocketscienceinc/oxoxo-backend/internal/apperror"
	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
	"github.com/rocketscienceinc/oxoxo-backend/internal/rules"
)

type State int

const (
	InProgress State = iota
	Won
	Stalemate
)

func (that State) String() string {
	switch that {
	case Won:
		return entity.StatusWon
	case Stalemate:
		return entity.StatusStalemate
	default:
		return entity.StatusOngoing
	}
}

func (that State) IsTerminal() bool {
	return that != InProgress
}

// Game drives one board through the player rotation, one ply per Step.
// It is not safe for concurrent use.
type Game struct {
	rules   *rules.RuleSet
	state   *entity.Game
	players map[entity.PlayerID]Player

	// seat index of the player inside Play, -1 between turns
	active int
}

func New(id string, ruleSet *rules.RuleSet, players []Player) (*Game, error) {
	ids := make([]entity.PlayerID, 0, len(players))
	for _, player := range players {
		ids = append(ids, player.ID())
	}

	state := entity.NewGame(id, ruleSet.Size(), ruleSet.Dimensions(), ruleSet.SlotCount(), ids)

	return Restore(ruleSet, state, players)
}

// Restore resumes a game from its persisted state.
func Restore(ruleSet *rules.RuleSet, state *entity.Game, players []Player) (*Game, error) {
	if state.Size != ruleSet.Size() || state.Dimensions != ruleSet.Dimensions() {
		return nil, fmt.Errorf("%w: game is %d^%d, rules are %d^%d", apperror.ErrInvalidConfiguration,
			state.Size, state.Dimensions, ruleSet.Size(), ruleSet.Dimensions())
	}

	if len(state.Board) != ruleSet.SlotCount() {
		return nil, fmt.Errorf("%w: board has %d slots, want %d", apperror.ErrInvalidConfiguration,
			len(state.Board), ruleSet.SlotCount())
	}

	byID, err := indexPlayers(players)
	if err != nil {
		return nil, err
	}

	if len(state.Seats) != len(byID) {
		return nil, fmt.Errorf("%w: %d seats for %d players", apperror.ErrInvalidConfiguration, len(state.Seats), len(byID))
	}

	seated := make(map[entity.PlayerID]struct{}, len(state.Seats))
	for _, seat := range state.Seats {
		if _, ok := byID[seat.ID]; !ok {
			return nil, fmt.Errorf("%w: no player for seat %s", apperror.ErrInvalidConfiguration, seat.ID)
		}

		if _, ok := seated[seat.ID]; ok {
			return nil, fmt.Errorf("%w: player %s has two seats", apperror.ErrInvalidConfiguration, seat.ID)
		}
		seated[seat.ID] = struct{}{}
	}

	for slot, cell := range state.Board {
		if cell == entity.EmptyCell {
			continue
		}

		if _, ok := seated[cell]; !ok {
			return nil, fmt.Errorf("%w: slot %d holds %s, which has no seat", apperror.ErrInvalidConfiguration, slot, cell)
		}
	}

	if state.Turn < 0 || state.Turn >= len(state.Seats) {
		return nil, fmt.Errorf("%w: turn %d outside %d seats", apperror.ErrInvalidConfiguration, state.Turn, len(state.Seats))
	}

	return &Game{
		rules:   ruleSet,
		state:   state,
		players: byID,
		active:  -1,
	}, nil
}

func indexPlayers(players []Player) (map[entity.PlayerID]Player, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: at least one player is required", apperror.ErrInvalidConfiguration)
	}

	byID := make(map[entity.PlayerID]Player, len(players))
	for _, player := range players {
		id := player.ID()
		if !id.IsPlayer() {
			return nil, fmt.Errorf("%w: player id %d must be positive", apperror.ErrInvalidConfiguration, id)
		}

		if _, ok := byID[id]; ok {
			return nil, fmt.Errorf("%w: duplicate player id %s", apperror.ErrInvalidConfiguration, id)
		}
		byID[id] = player
	}

	return byID, nil
}

func (that *Game) Rules() *rules.RuleSet {
	return that.rules
}

// State exposes the underlying state for persistence.
func (that *Game) State() *entity.Game {
	return that.state
}

// Snapshot returns a copy of the board.
func (that *Game) Snapshot() []entity.PlayerID {
	return append([]entity.PlayerID(nil), that.state.Board...)
}

// Rotation returns the ids waiting for their turn, next first. While a
// player is inside Play it is not part of the rotation.
func (that *Game) Rotation() []entity.PlayerID {
	seats := that.state.Seats
	ids := make([]entity.PlayerID, 0, len(seats))
	for i := range seats {
		idx := (that.state.Turn + i) % len(seats)
		if idx == that.active {
			continue
		}
		ids = append(ids, seats[idx].ID)
	}

	return ids
}

func (that *Game) Get(pos rules.Coord) (entity.PlayerID, error) {
	slot, err := that.rules.CoordToSlot(pos)
	if err != nil {
		return entity.EmptyCell, err
	}

	return that.state.Board[slot], nil
}

// Claim marks an empty cell for the player.
func (that *Game) Claim(pos rules.Coord, id entity.PlayerID) error {
	slot, err := that.rules.CoordToSlot(pos)
	if err != nil {
		return err
	}

	if other := that.state.Board[slot]; other != entity.EmptyCell {
		return fmt.Errorf("%w: %s already taken by %s", apperror.ErrSlotTaken, pos, other)
	}

	that.state.Board[slot] = id

	return nil
}

// LookAlong returns the cell values along a line.
func (that *Game) LookAlong(line rules.Line) []entity.PlayerID {
	cells := make([]entity.PlayerID, 0, len(line))
	for _, pos := range line {
		cell, err := that.Get(pos)
		if err != nil {
			continue
		}
		cells = append(cells, cell)
	}

	return cells
}

// FreeSlots returns the empty coordinates of a line in line order.
func (that *Game) FreeSlots(line rules.Line) []rules.Coord {
	free := make([]rules.Coord, 0, len(line))
	for _, pos := range line {
		if cell, err := that.Get(pos); err == nil && cell == entity.EmptyCell {
			free = append(free, pos)
		}
	}

	return free
}

// Step advances the game by one ply. A player that failed to move on its
// previous turn ends the game in stalemate when its turn comes round again.
func (that *Game) Step() (State, error) {
	switch that.state.Status {
	case entity.StatusWon:
		return Won, nil
	case entity.StatusStalemate:
		return Stalemate, nil
	}

	survey := that.Survey()
	if won := survey.Won(); len(won) > 0 {
		that.state.Status = entity.StatusWon
		that.state.Winner = won[0].Owner

		return Won, nil
	}

	turn := that.state.Turn
	seat := that.state.Seats[turn]
	that.state.Turn = (turn + 1) % len(that.state.Seats)

	if !seat.DidPlay {
		that.state.Status = entity.StatusStalemate

		return Stalemate, nil
	}

	that.active = turn
	played, err := that.players[seat.ID].Play(that, survey)
	that.active = -1

	if err != nil {
		that.state.Turn = turn
		return InProgress, fmt.Errorf("player %s failed to play: %w", seat.ID, err)
	}

	seat.DidPlay = played
	that.state.Plies++

	return InProgress, nil
}
