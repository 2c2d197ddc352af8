package entity

import "strconv"

// PlayerID identifies the owner of a cell. Concrete players are positive.
type PlayerID int

const (
	EmptyCell PlayerID = 0
	// Wildcard owns survey entries whose line is entirely empty.
	Wildcard PlayerID = -1
)

func (that PlayerID) IsPlayer() bool {
	return that > 0
}

func (that PlayerID) String() string {
	switch {
	case that == Wildcard:
		return "*"
	case that == EmptyCell:
		return "-"
	default:
		return strconv.Itoa(int(that))
	}
}

// Seat is a player's place in the turn rotation.
type Seat struct {
	ID      PlayerID `json:"id"`
	DidPlay bool     `json:"did_play"`
}
