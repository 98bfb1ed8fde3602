package game

import "fmt"

// Snake is the ordered body of the player, head first. Segments live in a
// ring buffer sized to the grid cell count, so adding a head and dropping
// tail segments never reallocates; the grid occupancy checks guarantee no
// two segments ever share a cell.
type Snake struct {
	grid *Grid
	segs []Point
	head int // index of the head segment
	size int

	// pendingGrowth controls tail shrinking on each step: positive means
	// the snake nets longer, zero holds the length steady, negative
	// shrinks it. A fresh snake starts with one queued growth so the
	// first step reaches length two.
	pendingGrowth int
}

// NewSnake creates a snake with a single head segment on a random free
// cell of the grid.
func NewSnake(grid *Grid) (*Snake, error) {
	p, err := grid.RandomFree()
	if err != nil {
		return nil, err
	}
	return NewSnakeAt(grid, p)
}

// NewSnakeAt creates a snake with its head on the given cell. It fails
// with CellOccupiedError when the cell is not free.
func NewSnakeAt(grid *Grid, p Point) (*Snake, error) {
	p = grid.WrapPoint(p)
	if err := grid.putBody(p); err != nil {
		return nil, err
	}
	s := &Snake{
		grid:          grid,
		segs:          make([]Point, grid.Width()*grid.Height()),
		pendingGrowth: 1,
	}
	s.segs[0] = p
	s.size = 1
	return s, nil
}

// Size returns the snake's length in segments. It is never below one.
func (s *Snake) Size() int { return s.size }

// Head returns the position of the head segment.
func (s *Snake) Head() Point { return s.segs[s.head] }

// At returns the position of the i-th segment counting from the head.
func (s *Snake) At(i int) Point {
	n := len(s.segs)
	return s.segs[((s.head-i)%n+n)%n]
}

// Segments returns the body positions ordered head to tail.
func (s *Snake) Segments() []Point {
	out := make([]Point, s.size)
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// Grow adds to the pending growth accumulator. The controller calls this
// after a step that ate food, scaled by the configured food value; the
// snake itself has no access to the configuration.
func (s *Snake) Grow(by int) { s.pendingGrowth += by }

// HeadDirection returns the direction the head is facing, derived from
// the head and its neighbour. Requires size >= 2.
func (s *Snake) HeadDirection() Direction {
	return DirectionBetween(s.At(1), s.At(0))
}

// TailDirection returns the direction the tail is facing. Requires
// size >= 2.
func (s *Snake) TailDirection() Direction {
	return DirectionBetween(s.At(s.size-1), s.At(s.size-2))
}

// ShapeAt returns the body shape of the i-th segment, defined by its two
// neighbours. Requires 0 < i < size-1.
func (s *Snake) ShapeAt(i int) Shape {
	return ShapeBetween(s.At(i-1), s.At(i), s.At(i+1))
}

// Step moves the snake one cell in the given direction and reports
// whether it ate food. Stepping onto a wall, bomb or body cell fails with
// DeathError and leaves the body untouched; the caller must discard the
// snake. When food was eaten it is the caller's responsibility to invoke
// Grow with the food's value.
func (s *Snake) Step(dir Direction) (ateFood bool, err error) {
	next := s.grid.WrapPoint(s.Head().Translate(dir))
	switch state := s.grid.Get(next); state {
	case CellWall, CellBomb, CellBody:
		return false, &DeathError{Point: next, State: state}
	case CellFood:
		if err := s.grid.RemoveItemAt(next); err != nil {
			return false, fmt.Errorf("removing eaten food: %w", err)
		}
		ateFood = true
	case CellFree:
	default:
		return false, fmt.Errorf("corrupt cell state %v at %v", state, next)
	}

	s.head = (s.head + 1) % len(s.segs)
	s.segs[s.head] = next
	s.size++
	if err := s.grid.putBody(next); err != nil {
		return false, fmt.Errorf("placing new head: %w", err)
	}

	switch {
	case s.pendingGrowth < 0:
		if err := s.removeTail(2); err != nil {
			return false, err
		}
		s.pendingGrowth++
	case s.pendingGrowth == 0:
		if err := s.removeTail(1); err != nil {
			return false, err
		}
	default:
		s.pendingGrowth--
	}
	return ateFood, nil
}

// removeTail drops up to count segments from the tail end, never
// shrinking the snake below two segments.
func (s *Snake) removeTail(count int) error {
	if count > s.size-2 {
		count = s.size - 2
	}
	for ; count > 0; count-- {
		if err := s.grid.clearBody(s.At(s.size - 1)); err != nil {
			return fmt.Errorf("clearing tail: %w", err)
		}
		s.size--
	}
	return nil
}
