package oxoxo

import (
	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
	"github.com/rocketscienceinc/oxoxo-backend/internal/rules"
)

// SurveyEntry summarizes one live line: who holds it and how many marks remain.
type SurveyEntry struct {
	Owner entity.PlayerID `json:"owner"`
	Need  int             `json:"need"`
	Line  rules.Line      `json:"line"`

	slots []int
}

// Survey lists live lines in rule set enumeration order. Lines holding marks
// of two different players are dead and never appear.
type Survey []SurveyEntry

func (that *Game) Survey() Survey {
	ruleSet := that.rules
	board := that.state.Board
	lines := ruleSet.WinningLines()

	survey := make(Survey, 0, len(lines))
	for i, line := range lines {
		slots := ruleSet.LineSlots(i)

		owner, count, dead := entity.Wildcard, 0, false
		for _, slot := range slots {
			cell := board[slot]
			if cell == entity.EmptyCell {
				continue
			}

			if owner == entity.Wildcard {
				owner = cell
			} else if owner != cell {
				dead = true
				break
			}
			count++
		}

		if dead {
			continue
		}

		survey = append(survey, SurveyEntry{
			Owner: owner,
			Need:  ruleSet.Size() - count,
			Line:  line,
			slots: slots,
		})
	}

	return survey
}

func (that Survey) Filter(keep func(entry SurveyEntry) bool) Survey {
	filtered := make(Survey, 0, len(that))
	for _, entry := range that {
		if keep(entry) {
			filtered = append(filtered, entry)
		}
	}

	return filtered
}

func (that Survey) WithNeed(need int) Survey {
	return that.Filter(func(entry SurveyEntry) bool {
		return entry.Need == need
	})
}

// Won returns the completed lines.
func (that Survey) Won() Survey {
	return that.WithNeed(0)
}

// Threats returns the lines one move from completion.
func (that Survey) Threats() Survey {
	return that.WithNeed(1)
}

// ByOwner groups entries by owner, keeping their relative order.
func (that Survey) ByOwner() map[entity.PlayerID]Survey {
	groups := make(map[entity.PlayerID]Survey)
	for _, entry := range that {
		groups[entry.Owner] = append(groups[entry.Owner], entry)
	}

	return groups
}

// BySlot groups entries by every slot their line crosses.
func (that Survey) BySlot() map[int]Survey {
	groups := make(map[int]Survey)
	for _, entry := range that {
		for _, slot := range entry.slots {
			groups[slot] = append(groups[slot], entry)
		}
	}

	return groups
}
