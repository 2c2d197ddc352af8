package oxoxo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/oxoxo-backend/internal/apperror"
	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
	"github.com/rocketscienceinc/oxoxo-backend/internal/rules"
)

func newTestGame(t *testing.T, size, dimensions int, players ...Player) *Game {
	t.Helper()

	ruleSet, err := rules.New(size, dimensions)
	require.NoError(t, err)

	game, err := New("test", ruleSet, players)
	require.NoError(t, err)

	return game
}

func claimAll(t *testing.T, game *Game, id entity.PlayerID, moves ...rules.Coord) {
	t.Helper()

	for _, pos := range moves {
		require.NoError(t, game.Claim(pos, id))
	}
}

func TestNew(t *testing.T) {
	ruleSet, err := rules.New(3, 2)
	require.NoError(t, err)

	t.Run("Starts empty and ongoing", func(t *testing.T) {
		game, err := New("g1", ruleSet, NewHeuristics([]entity.PlayerID{1, 2}))
		require.NoError(t, err)

		state := game.State()
		assert.Equal(t, "g1", state.ID)
		assert.Equal(t, entity.StatusOngoing, state.Status)
		assert.Len(t, state.Board, 9)
		assert.Equal(t, make([]entity.PlayerID, 9), game.Snapshot())
		assert.Equal(t, []entity.PlayerID{1, 2}, state.PlayerIDs())
		for _, seat := range state.Seats {
			assert.True(t, seat.DidPlay)
		}
	})

	t.Run("Rejects duplicate ids", func(t *testing.T) {
		_, err := New("g1", ruleSet, NewHeuristics([]entity.PlayerID{1, 1}))
		require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)
	})

	t.Run("Rejects non-positive ids", func(t *testing.T) {
		_, err := New("g1", ruleSet, NewHeuristics([]entity.PlayerID{0, 2}))
		require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)
	})

	t.Run("Rejects empty player list", func(t *testing.T) {
		_, err := New("g1", ruleSet, nil)
		require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)
	})
}

func TestRestore(t *testing.T) {
	ruleSet, err := rules.New(3, 2)
	require.NoError(t, err)

	players := NewHeuristics([]entity.PlayerID{1, 2})

	t.Run("Resumes from persisted state", func(t *testing.T) {
		// Given: a game advanced by one ply
		game, err := New("g1", ruleSet, players)
		require.NoError(t, err)
		_, err = game.Step()
		require.NoError(t, err)

		// When: restoring from a copy of its state
		restored, err := Restore(ruleSet, game.State().Clone(), players)
		require.NoError(t, err)

		// Then: the board and turn carry over
		assert.Equal(t, game.Snapshot(), restored.Snapshot())
		assert.Equal(t, []entity.PlayerID{2, 1}, restored.Rotation())
	})

	t.Run("Rejects mismatched rules", func(t *testing.T) {
		other, err := rules.New(4, 2)
		require.NoError(t, err)

		state := entity.NewGame("g1", 3, 2, 9, []entity.PlayerID{1, 2})
		_, err = Restore(other, state, players)
		require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)
	})

	t.Run("Rejects unknown seat", func(t *testing.T) {
		state := entity.NewGame("g1", 3, 2, 9, []entity.PlayerID{1, 3})
		_, err := Restore(ruleSet, state, players)
		require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)
	})

	t.Run("Rejects cells without a seat", func(t *testing.T) {
		for _, cell := range []entity.PlayerID{entity.Wildcard, 3} {
			// Given: a stored board with a mark nobody sitting at the table owns
			state := entity.NewGame("g1", 3, 2, 9, []entity.PlayerID{1, 2})
			state.Board[4] = cell

			// When: restoring it
			_, err := Restore(ruleSet, state, players)

			// Then: the board is refused
			require.ErrorIs(t, err, apperror.ErrInvalidConfiguration, "cell %d", cell)
		}
	})

	t.Run("Rejects a player seated twice", func(t *testing.T) {
		state := entity.NewGame("g1", 3, 2, 9, []entity.PlayerID{1, 1})
		_, err := Restore(ruleSet, state, players)
		require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)
	})

	t.Run("Rejects turn outside seats", func(t *testing.T) {
		state := entity.NewGame("g1", 3, 2, 9, []entity.PlayerID{1, 2})
		state.Turn = 2
		_, err := Restore(ruleSet, state, players)
		require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)
	})
}

func TestGame_Claim(t *testing.T) {
	game := newTestGame(t, 3, 2, NewHeuristic(1), NewHeuristic(2))

	t.Run("Claims an empty slot", func(t *testing.T) {
		require.NoError(t, game.Claim(rules.Coord{1, 1}, 1))

		cell, err := game.Get(rules.Coord{1, 1})
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerID(1), cell)
	})

	t.Run("Second claim on the same slot fails", func(t *testing.T) {
		err := game.Claim(rules.Coord{1, 1}, 2)

		require.ErrorIs(t, err, apperror.ErrSlotTaken)
		cell, _ := game.Get(rules.Coord{1, 1})
		assert.Equal(t, entity.PlayerID(1), cell)
	})

	t.Run("Out of range claim fails", func(t *testing.T) {
		err := game.Claim(rules.Coord{3, 1}, 2)
		require.ErrorIs(t, err, apperror.ErrOutOfRange)
	})

	t.Run("Board size never changes", func(t *testing.T) {
		assert.Len(t, game.Snapshot(), 9)
	})
}

func TestGame_LookAlongAndFreeSlots(t *testing.T) {
	game := newTestGame(t, 3, 2, NewHeuristic(1), NewHeuristic(2))
	claimAll(t, game, 2, rules.Coord{0, 1})

	line := rules.Line{{0, 0}, {0, 1}, {0, 2}}

	assert.Equal(t, []entity.PlayerID{0, 2, 0}, game.LookAlong(line))
	assert.Equal(t, []rules.Coord{{0, 0}, {0, 2}}, game.FreeSlots(line))
}

func TestGame_Step(t *testing.T) {
	t.Run("Completed row wins", func(t *testing.T) {
		// Given: player 1 has been forced onto the whole first row
		game := newTestGame(t, 3, 2, NewHeuristic(1), NewHeuristic(2))
		claimAll(t, game, 1, rules.Coord{0, 0}, rules.Coord{0, 1}, rules.Coord{0, 2})

		// Then: the survey reports the finished row
		won := game.Survey().Won()
		require.Len(t, won, 1)
		assert.Equal(t, SurveyEntry{
			Owner: 1,
			Need:  0,
			Line:  rules.Line{{0, 0}, {0, 1}, {0, 2}},
			slots: []int{0, 1, 2},
		}, won[0])

		// When: stepping
		state, err := game.Step()

		// Then: the game is won by player 1 without further moves
		require.NoError(t, err)
		assert.Equal(t, Won, state)
		assert.Equal(t, entity.StatusWon, game.State().Status)
		assert.Equal(t, entity.PlayerID(1), game.State().Winner)
		assert.Equal(t, 0, game.State().Plies)

		// And: stepping again stays won
		state, err = game.Step()
		require.NoError(t, err)
		assert.Equal(t, Won, state)
	})

	t.Run("Full board with a winning line is won", func(t *testing.T) {
		game := newTestGame(t, 3, 2, NewHeuristic(1), NewHeuristic(2))
		claimAll(t, game, 1, rules.Coord{0, 0}, rules.Coord{0, 2}, rules.Coord{1, 1}, rules.Coord{2, 1}, rules.Coord{2, 2})
		claimAll(t, game, 2, rules.Coord{0, 1}, rules.Coord{1, 0}, rules.Coord{1, 2}, rules.Coord{2, 0})

		state, err := game.Step()

		require.NoError(t, err)
		assert.Equal(t, Won, state)
		assert.Equal(t, entity.PlayerID(1), game.State().Winner)
	})

	t.Run("Stalemate after every player fails twice", func(t *testing.T) {
		// Given: every line is dead but (2,2) is still empty
		game := newTestGame(t, 3, 2, NewHeuristic(1), NewHeuristic(2))
		claimAll(t, game, 1, rules.Coord{0, 0}, rules.Coord{0, 2}, rules.Coord{1, 0}, rules.Coord{2, 1})
		claimAll(t, game, 2, rules.Coord{0, 1}, rules.Coord{1, 1}, rules.Coord{1, 2}, rules.Coord{2, 0})
		require.Empty(t, game.Survey())

		// When: both players take a turn
		for range 2 {
			state, err := game.Step()
			require.NoError(t, err)
			assert.Equal(t, InProgress, state)
		}

		// Then: neither could move and the board is untouched
		for _, seat := range game.State().Seats {
			assert.False(t, seat.DidPlay)
		}
		cell, _ := game.Get(rules.Coord{2, 2})
		assert.Equal(t, entity.EmptyCell, cell)

		// When: the first player comes round again
		state, err := game.Step()

		// Then: the game ends in stalemate
		require.NoError(t, err)
		assert.Equal(t, Stalemate, state)
		assert.Equal(t, entity.StatusStalemate, game.State().Status)

		state, err = game.Step()
		require.NoError(t, err)
		assert.Equal(t, Stalemate, state)
	})

	t.Run("Player error propagates and keeps the turn", func(t *testing.T) {
		game := newTestGame(t, 3, 2, NewScripted(1, rules.Coord{5, 5}), NewHeuristic(2))

		_, err := game.Step()

		require.ErrorIs(t, err, apperror.ErrOutOfRange)
		assert.Equal(t, 0, game.State().Turn)
		assert.Equal(t, 0, game.State().Plies)
	})

	t.Run("Heuristic game on the classic board", func(t *testing.T) {
		// Given: two heuristic players on an empty 3x3 board
		game := newTestGame(t, 3, 2, NewHeuristic(1), NewHeuristic(2))

		// When: playing the eight forced replies
		expected := []rules.Coord{
			{0, 0}, {1, 1}, {1, 0}, {2, 0}, {0, 2},
			{0, 1}, {2, 1}, {1, 2},
		}
		for i, pos := range expected {
			state, err := game.Step()
			require.NoError(t, err)
			require.Equal(t, InProgress, state)

			cell, err := game.Get(pos)
			require.NoError(t, err)
			assert.Equal(t, entity.PlayerID(i%2+1), cell, "ply %d at %s", i+1, pos)
		}

		for range 2 {
			state, err := game.Step()
			require.NoError(t, err)
			require.Equal(t, InProgress, state)
		}

		// Then: every line is dead and the next step is a stalemate
		state, err := game.Step()
		require.NoError(t, err)
		assert.Equal(t, Stalemate, state)
		assert.Equal(t, 10, game.State().Plies)
		assert.Equal(t, []entity.PlayerID{1, 2, 1, 1, 2, 2, 2, 1, 0}, game.Snapshot())
	})

	t.Run("Three players on a 4x4x4 board terminate", func(t *testing.T) {
		game := newTestGame(t, 4, 3, NewHeuristics([]entity.PlayerID{1, 2, 3})...)

		state := InProgress
		for steps := 0; !state.IsTerminal(); steps++ {
			require.Less(t, steps, 64*3+3)

			var err error
			state, err = game.Step()
			require.NoError(t, err)
		}

		assert.True(t, game.State().IsFinished())
		assert.Len(t, game.Snapshot(), 64)
	})
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "ongoing", InProgress.String())
	assert.Equal(t, "won", Won.String())
	assert.Equal(t, "stalemate", Stalemate.String())
}
