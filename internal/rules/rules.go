package rules

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/oxoxo-backend/internal/apperror"
)

// RuleSet describes an S^D board: its slot encoding and every winning line.
type RuleSet struct {
	size       int
	dimensions int
	slots      int

	lines     []Line
	lineSlots [][]int
}

// axisStep is the behaviour of one axis along a candidate line.
type axisStep struct {
	start int
	delta int
}

func New(size, dimensions int) (*RuleSet, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: size %d, must be at least 2", apperror.ErrInvalidConfiguration, size)
	}

	if dimensions < 1 {
		return nil, fmt.Errorf("%w: dimensions %d, must be at least 1", apperror.ErrInvalidConfiguration, dimensions)
	}

	slots, ok := power(size, dimensions)
	if !ok {
		return nil, fmt.Errorf("%w: %d^%d slots overflow", apperror.ErrInvalidConfiguration, size, dimensions)
	}

	ruleSet := &RuleSet{
		size:       size,
		dimensions: dimensions,
		slots:      slots,
	}

	ruleSet.enumerateLines()

	return ruleSet, nil
}

func (that *RuleSet) Size() int {
	return that.size
}

func (that *RuleSet) Dimensions() int {
	return that.dimensions
}

func (that *RuleSet) SlotCount() int {
	return that.slots
}

// WinningLines returns the canonical, deduplicated lines in enumeration order.
// The result is shared and must not be modified.
func (that *RuleSet) WinningLines() []Line {
	return that.lines
}

// LineSlots returns the slot indexes of WinningLines()[index], in line order.
func (that *RuleSet) LineSlots(index int) []int {
	return that.lineSlots[index]
}

func (that *RuleSet) CoordToSlot(pos Coord) (int, error) {
	if len(pos) != that.dimensions {
		return 0, fmt.Errorf("%w: %s has %d axes, want %d", apperror.ErrOutOfRange, pos, len(pos), that.dimensions)
	}

	slot := 0
	for _, p := range pos {
		if p < 0 || p >= that.size {
			return 0, fmt.Errorf("%w: %s outside [0,%d)", apperror.ErrOutOfRange, pos, that.size)
		}
		slot = slot*that.size + p
	}

	return slot, nil
}

func (that *RuleSet) SlotToCoord(slot int) (Coord, error) {
	if slot < 0 || slot >= that.slots {
		return nil, fmt.Errorf("%w: slot %d outside [0,%d)", apperror.ErrOutOfRange, slot, that.slots)
	}

	pos := make(Coord, that.dimensions)
	for i := that.dimensions - 1; i >= 0; i-- {
		pos[i] = slot % that.size
		slot /= that.size
	}

	return pos, nil
}

func (that *RuleSet) inBounds(pos Coord) bool {
	for _, p := range pos {
		if p < 0 || p >= that.size {
			return false
		}
	}

	return true
}

func (that *RuleSet) enumerateLines() {
	seen := make(map[string]struct{})
	path := make([]axisStep, that.dimensions)

	var walk func(axis int)
	walk = func(axis int) {
		if axis == that.dimensions {
			line := that.expand(path)
			if line == nil {
				return
			}

			line = line.Canonical()
			slots := that.slotsOf(line)

			key := slotsKey(slots)
			if _, ok := seen[key]; ok {
				return
			}
			seen[key] = struct{}{}

			that.lines = append(that.lines, line)
			that.lineSlots = append(that.lineSlots, slots)

			return
		}

		path[axis] = axisStep{start: 0, delta: 1}
		walk(axis + 1)

		path[axis] = axisStep{start: that.size - 1, delta: -1}
		walk(axis + 1)

		for p := range that.size {
			path[axis] = axisStep{start: p, delta: 0}
			walk(axis + 1)
		}
	}

	walk(0)
}

// expand steps from the path's start along its delta until leaving the board.
// Degenerate paths and runs shorter than the board side yield nil.
func (that *RuleSet) expand(path []axisStep) Line {
	moving := false
	pos := make(Coord, len(path))
	for i, step := range path {
		pos[i] = step.start
		if step.delta != 0 {
			moving = true
		}
	}

	if !moving {
		return nil
	}

	line := make(Line, 0, that.size)
	for that.inBounds(pos) {
		line = append(line, pos.clone())
		for i, step := range path {
			pos[i] += step.delta
		}
	}

	if len(line) != that.size {
		return nil
	}

	return line
}

func (that *RuleSet) slotsOf(line Line) []int {
	slots := make([]int, 0, len(line))
	for _, pos := range line {
		slot := 0
		for _, p := range pos {
			slot = slot*that.size + p
		}
		slots = append(slots, slot)
	}

	return slots
}

func slotsKey(slots []int) string {
	var builder strings.Builder
	for i, slot := range slots {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(strconv.Itoa(slot))
	}

	return builder.String()
}

// CountLines returns how many winning lines an S^D board has without
// enumerating them: every line is generated once per traversal direction.
func CountLines(size, dimensions int) (int, error) {
	if size < 2 || dimensions < 1 {
		return 0, fmt.Errorf("%w: size %d, dimensions %d", apperror.ErrInvalidConfiguration, size, dimensions)
	}

	all, ok := power(size+2, dimensions)
	if !ok {
		return 0, fmt.Errorf("%w: line count for %d^%d overflows", apperror.ErrInvalidConfiguration, size, dimensions)
	}

	fixed, _ := power(size, dimensions)

	return (all - fixed) / 2, nil
}

// CountSlots returns size^dimensions, the number of cells on the board.
func CountSlots(size, dimensions int) (int, error) {
	if size < 2 || dimensions < 1 {
		return 0, fmt.Errorf("%w: size %d, dimensions %d", apperror.ErrInvalidConfiguration, size, dimensions)
	}

	slots, ok := power(size, dimensions)
	if !ok {
		return 0, fmt.Errorf("%w: %d^%d slots overflow", apperror.ErrInvalidConfiguration, size, dimensions)
	}

	return slots, nil
}

func power(base, exp int) (int, bool) {
	result := 1
	for range exp {
		if result > math.MaxInt/base {
			return 0, false
		}
		result *= base
	}

	return result, true
}
