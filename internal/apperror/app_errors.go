package apperror

import "errors"

var (
	ErrOutOfRange           = errors.New("coordinate is out of range")
	ErrSlotTaken            = errors.New("slot is already taken")
	ErrInvalidConfiguration = errors.New("invalid configuration")

	ErrGameFinished = errors.New("game is already finished")
	ErrGameNotFound = errors.New("game not found")
	ErrPlyLimit     = errors.New("ply limit reached")
	ErrGameBusy     = errors.New("game is being played by another request")
)
