package render

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
)

type Cell struct {
	Slot   int
	Owner  entity.PlayerID
	Symbol string
	// Lines is the number of live lines crossing the cell.
	Lines int
}

// Plane is a 2-D slice of the board with every axis but the last two fixed.
type Plane struct {
	Label string
	Rows  [][]Cell
}

// Planes slices the board for the HTML view. lines maps a slot to the number
// of live lines through it and may be nil.
func Planes(board []entity.PlayerID, size, dimensions int, lines map[int]int) []Plane {
	if size < 1 || len(board) == 0 {
		return nil
	}

	rowLen, rowsPerPlane := size, size
	if dimensions == 1 {
		rowsPerPlane = 1
	}
	planeLen := rowLen * rowsPerPlane

	planes := make([]Plane, 0, len(board)/planeLen)
	for start := 0; start < len(board); start += planeLen {
		plane := Plane{Label: planeLabel(start/planeLen, size, dimensions-2)}

		for row := 0; row < rowsPerPlane; row++ {
			cells := make([]Cell, 0, rowLen)
			for col := 0; col < rowLen; col++ {
				slot := start + row*rowLen + col
				cells = append(cells, Cell{
					Slot:   slot,
					Owner:  board[slot],
					Symbol: string(Symbol(board[slot])),
					Lines:  lines[slot],
				})
			}
			plane.Rows = append(plane.Rows, cells)
		}

		planes = append(planes, plane)
	}

	return planes
}

// planeLabel spells the fixed leading coordinates of a plane, e.g. "(1,0)".
func planeLabel(index, size, axes int) string {
	if axes < 1 {
		return ""
	}

	coords := make([]string, axes)
	for axis := axes - 1; axis >= 0; axis-- {
		coords[axis] = fmt.Sprint(index % size)
		index /= size
	}

	return "(" + strings.Join(coords, ",") + ")"
}
