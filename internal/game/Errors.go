package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when a grid is created or reset with
	// a width or height below five cells.
	ErrInvalidDimension = errors.New("grid dimensions must be at least 5x5")

	// ErrInsufficientFreeSpace is returned when a wall layout leaves less
	// than 10% of the grid free.
	ErrInsufficientFreeSpace = errors.New("less than 10% of grid cells are free")

	// ErrNoFreeCell is returned by Grid.RandomFree when every cell is
	// occupied. The controller skips the spawn attempt for that tick.
	ErrNoFreeCell = errors.New("no free cell on grid")

	// ErrIllegalState is returned on invalid game state machine
	// transitions, e.g. pausing a game that is not running.
	ErrIllegalState = errors.New("illegal game state transition")

	// ErrBadConfiguration is returned when a configuration value array is
	// malformed.
	ErrBadConfiguration = errors.New("malformed configuration values")
)

// CellOccupiedError reports an attempt to occupy a non-free cell. Internal
// callers maintain the invariant that only free cells are targeted, so
// hitting this from grid or snake code indicates a logic bug.
type CellOccupiedError struct {
	Point Point
	State CellState
}

func (e *CellOccupiedError) Error() string {
	return fmt.Sprintf("cell %v already occupied by %v", e.Point, e.State)
}

// UnexpectedStateError reports a clear operation finding a different cell
// state than the caller expected.
type UnexpectedStateError struct {
	Point Point
	Want  CellState
	Got   CellState
}

func (e *UnexpectedStateError) Error() string {
	return fmt.Sprintf("cell %v holds %v, expected %v", e.Point, e.Got, e.Want)
}

// DeathError is the modeled outcome of a snake stepping onto a wall, a
// bomb or its own body. It is not a programmer error; the controller
// consumes it to drive the game state machine.
type DeathError struct {
	Point Point
	State CellState
}

func (e *DeathError) Error() string {
	return fmt.Sprintf("snake died at %v on %v", e.Point, e.State)
}
