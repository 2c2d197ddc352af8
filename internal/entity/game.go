package entity

import (
	"fmt"

	"github.com/rocketscienceinc/oxoxo-backend/internal/apperror"
)

const (
	StatusOngoing   = "ongoing"
	StatusWon       = "won"
	StatusStalemate = "stalemate"
)

// Game is the serializable state of one n-in-a-row game.
type Game struct {
	ID         string     `json:"id"`
	Size       int        `json:"size"`
	Dimensions int        `json:"dimensions"`
	Board      []PlayerID `json:"board"`
	Seats      []*Seat    `json:"seats"`
	Turn       int        `json:"turn"`
	Status     string     `json:"status"`
	Winner     PlayerID   `json:"winner,omitempty"`
	Plies      int        `json:"plies"`
}

func NewGame(id string, size, dimensions, slots int, players []PlayerID) *Game {
	seats := make([]*Seat, 0, len(players))
	for _, player := range players {
		seats = append(seats, &Seat{ID: player, DidPlay: true})
	}

	return &Game{
		ID:         id,
		Size:       size,
		Dimensions: dimensions,
		Board:      make([]PlayerID, slots),
		Seats:      seats,
		Status:     StatusOngoing,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusStalemate
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch that.Status {
	case StatusOngoing:
		return nil
	case StatusWon, StatusStalemate:
		return apperror.ErrGameFinished
	default:
		return fmt.Errorf("%w: unknown game status %q", apperror.ErrInvalidConfiguration, that.Status)
	}
}

// PlayerIDs returns the seat ids in rotation order starting from seat 0.
func (that *Game) PlayerIDs() []PlayerID {
	ids := make([]PlayerID, 0, len(that.Seats))
	for _, seat := range that.Seats {
		ids = append(ids, seat.ID)
	}

	return ids
}

// Clone returns a deep copy safe to hand to observers.
func (that *Game) Clone() *Game {
	clone := *that
	clone.Board = append([]PlayerID(nil), that.Board...)
	clone.Seats = make([]*Seat, 0, len(that.Seats))
	for _, seat := range that.Seats {
		s := *seat
		clone.Seats = append(clone.Seats, &s)
	}

	return &clone
}
