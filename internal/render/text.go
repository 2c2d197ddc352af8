package render

import (
	"strings"

	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
)

// symbols is indexed by player id; index 0 is the empty cell.
const symbols = ".OXABCDEFGHIJKLMNPQRSTUVWYZ"

const unknownSymbol = '?'

func Symbol(id entity.PlayerID) byte {
	if id < 0 || int(id) >= len(symbols) {
		return unknownSymbol
	}

	return symbols[id]
}

// Text draws the board one row of size cells per line, the last axis running
// along the row. Every higher axis boundary adds one more blank line, so a
// 3-D board prints as planes and a 4-D board as groups of planes.
func Text(board []entity.PlayerID, size, dimensions int) string {
	if size < 1 || len(board) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(board) + len(board)/size*2)

	for i, cell := range board {
		sb.WriteByte(Symbol(cell))

		done := i + 1
		if dimensions > 1 && done%size != 0 {
			continue
		}
		if dimensions > 1 || done == len(board) {
			sb.WriteByte('\n')
		}
		if done == len(board) {
			break
		}

		for block, axis := size*size, 2; axis < dimensions && done%block == 0; axis++ {
			sb.WriteByte('\n')
			block *= size
		}
	}

	return sb.String()
}
