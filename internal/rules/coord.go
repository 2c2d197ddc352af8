package rules

import (
	"strconv"
	"strings"
)

// Coord is a cell position, one component per axis, most significant axis first.
type Coord []int

func (that Coord) String() string {
	parts := make([]string, 0, len(that))
	for _, p := range that {
		parts = append(parts, strconv.Itoa(p))
	}

	return "(" + strings.Join(parts, ",") + ")"
}

func (that Coord) Equal(other Coord) bool {
	return Compare(that, other) == 0 && len(that) == len(other)
}

func (that Coord) clone() Coord {
	return append(Coord(nil), that...)
}

// Compare orders coordinates axis by axis, first axis most significant.
func Compare(a, b Coord) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}

	return 0
}

// Line is a straight run of cells crossing the board edge to edge.
type Line []Coord

// Canonical orients the line so its first coordinate is not after its last.
func (that Line) Canonical() Line {
	if len(that) == 0 || Compare(that[0], that[len(that)-1]) <= 0 {
		return that
	}

	reversed := make(Line, len(that))
	for i, pos := range that {
		reversed[len(that)-1-i] = pos
	}

	return reversed
}

func (that Line) String() string {
	parts := make([]string, 0, len(that))
	for _, pos := range that {
		parts = append(parts, pos.String())
	}

	return "[" + strings.Join(parts, " ") + "]"
}
