package core

import (
	"errors"
	"fmt"
)

var (
	// ErrGenerationExhausted is returned when every attempt failed. The
	// parameters are infeasible; retrying the same call will not help.
	ErrGenerationExhausted = errors.New("failed to generate valid level")

	// ErrUnknownDifficulty is returned for a difficulty outside the table.
	ErrUnknownDifficulty = errors.New("unknown difficulty")

	// ErrUnknownTileType is returned when parsing an unknown tile name.
	ErrUnknownTileType = errors.New("unknown tile type")

	// ErrInvalidOptions is returned for malformed generation options.
	ErrInvalidOptions = errors.New("invalid level options")

	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("coordinate outside grid")

	// ErrTileFixed is returned when rotating a fixed tile.
	ErrTileFixed = errors.New("tile is fixed")

	// ErrTileNotRotatable is returned when rotating a tile whose type cannot rotate.
	ErrTileNotRotatable = errors.New("tile type is not rotatable")
)

// attemptError describes why a single generation attempt was discarded.
// It never leaves the retry loop.
type attemptError struct {
	Step   string
	Reason string
}

func (e attemptError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Reason)
}

func invalidOptions(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOptions, fmt.Sprintf(format, args...))
}
