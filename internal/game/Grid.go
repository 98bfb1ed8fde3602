package game

import (
	"fmt"
	"math/rand"
)

// CellState is the occupancy of a single grid cell. Every cell holds
// exactly one state at a time.
type CellState byte

const (
	CellFree CellState = iota
	CellBody
	CellFood
	CellBomb
	CellWall
)

func (c CellState) String() string {
	switch c {
	case CellFree:
		return "free"
	case CellBody:
		return "body"
	case CellFood:
		return "food"
	case CellBomb:
		return "bomb"
	case CellWall:
		return "wall"
	}
	return fmt.Sprintf("CellState(%d)", byte(c))
}

// Painter receives cell-state change notifications from the grid so a
// render collaborator can keep its buffer in sync. Implementations must
// not block: the grid calls them while the controller lock is held.
type Painter interface {
	PaintCell(p Point, state CellState)
	ClearCell(p Point)
	// InvalidateBuffer signals that the grid dimensions changed and any
	// cached render surface has to be rebuilt.
	InvalidateBuffer(width, height int)
}

// Grid is the fixed-size toroidal map the snake moves on. It owns the
// cell-state array and the item registry and maintains the free-cell,
// food and bomb counters in lockstep with every mutation.
type Grid struct {
	cells  [][]CellState // indexed [x][y]
	width  int
	height int
	free   int
	food   int
	bombs  int

	// Item registry keyed by position; order preserves insertion so item
	// aging is deterministic.
	items map[Point]*Item
	order []Point

	painter Painter
}

// NewGrid creates a grid of the given dimensions with walls placed
// wherever the layout matrix holds true. A nil layout means no walls.
func NewGrid(width, height int, walls [][]bool) (*Grid, error) {
	if width < 5 || height < 5 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		items:  make(map[Point]*Item),
	}
	g.cells = make([][]CellState, width)
	for x := range g.cells {
		g.cells[x] = make([]CellState, height)
	}
	g.free = width * height
	if walls != nil {
		for x := 0; x < width; x++ {
			for y := 0; y < height; y++ {
				if walls[x][y] {
					g.cells[x][y] = CellWall
					g.free--
				}
			}
		}
	}
	if g.free*10/width/height == 0 {
		return nil, fmt.Errorf("%w: %d of %d cells free", ErrInsufficientFreeSpace, g.free, width*height)
	}
	return g, nil
}

// NewGridFromWalls creates a grid whose dimensions are taken from the wall
// layout matrix.
func NewGridFromWalls(walls [][]bool) (*Grid, error) {
	if len(walls) == 0 || len(walls[0]) == 0 {
		return nil, ErrInvalidDimension
	}
	return NewGrid(len(walls), len(walls[0]), walls)
}

// SetPainter attaches the render collaborator notified on every cell
// mutation. A nil painter disables notifications.
func (g *Grid) SetPainter(p Painter) { g.painter = p }

func (g *Grid) Width() int      { return g.width }
func (g *Grid) Height() int     { return g.height }
func (g *Grid) CountFree() int  { return g.free }
func (g *Grid) CountFood() int  { return g.food }
func (g *Grid) CountBombs() int { return g.bombs }

// WrapPoint wraps the point around the edges of this grid.
func (g *Grid) WrapPoint(p Point) Point { return p.Wrap(g.width, g.height) }

// Get returns the state of the cell at the given point. The point is
// wrapped first, so Get is total.
func (g *Grid) Get(p Point) CellState {
	p = g.WrapPoint(p)
	return g.cells[p.X][p.Y]
}

// GetItem returns the item at the given position or nil.
func (g *Grid) GetItem(p Point) *Item { return g.items[g.WrapPoint(p)] }

// IsOccupied reports whether the cell at the given point is not free.
func (g *Grid) IsOccupied(p Point) bool { return g.Get(p) != CellFree }

// IsSafe reports whether the snake may move onto the cell, i.e. it is
// free or holds food.
func (g *Grid) IsSafe(p Point) bool {
	s := g.Get(p)
	return s == CellFree || s == CellFood
}

// occupy sets a free cell to the given state, adjusting the free counter
// and notifying the painter.
func (g *Grid) occupy(p Point, state CellState) error {
	p = g.WrapPoint(p)
	if cur := g.cells[p.X][p.Y]; cur != CellFree {
		return &CellOccupiedError{Point: p, State: cur}
	}
	g.cells[p.X][p.Y] = state
	g.free--
	if g.painter != nil {
		g.painter.PaintCell(p, state)
	}
	return nil
}

// clear resets a cell to free, failing when its current state differs
// from what the caller expected.
func (g *Grid) clear(p Point, expected CellState) error {
	p = g.WrapPoint(p)
	if cur := g.cells[p.X][p.Y]; cur != expected {
		return &UnexpectedStateError{Point: p, Want: expected, Got: cur}
	}
	g.cells[p.X][p.Y] = CellFree
	g.free++
	if g.painter != nil {
		g.painter.ClearCell(p)
	}
	return nil
}

// PutWall places a wall on a free cell. Gameplay never moves walls; this
// exists for map construction.
func (g *Grid) PutWall(p Point) error { return g.occupy(p, CellWall) }

// ClearWall removes a wall.
func (g *Grid) ClearWall(p Point) error { return g.clear(p, CellWall) }

// putBody and clearBody are used by Snake to move its segments.
func (g *Grid) putBody(p Point) error   { return g.occupy(p, CellBody) }
func (g *Grid) clearBody(p Point) error { return g.clear(p, CellBody) }

// PutItem places an item on a free cell and registers it, keeping the
// food/bomb counters in lockstep with cell state.
func (g *Grid) PutItem(it *Item) error {
	p := g.WrapPoint(it.Point())
	if err := g.occupy(p, it.State()); err != nil {
		return err
	}
	g.items[p] = it
	g.order = append(g.order, p)
	if it.IsFood() {
		g.food++
	} else {
		g.bombs++
	}
	return nil
}

// RemoveItem clears the item's cell and drops it from the registry.
func (g *Grid) RemoveItem(it *Item) error {
	p := g.WrapPoint(it.Point())
	if err := g.clear(p, it.State()); err != nil {
		return err
	}
	delete(g.items, p)
	for i, q := range g.order {
		if q == p {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	if it.IsFood() {
		g.food--
	} else {
		g.bombs--
	}
	return nil
}

// RemoveItemAt removes the item at the given position.
func (g *Grid) RemoveItemAt(p Point) error {
	it := g.GetItem(p)
	if it == nil {
		return &UnexpectedStateError{Point: g.WrapPoint(p), Want: CellFood, Got: g.Get(p)}
	}
	return g.RemoveItem(it)
}

// Items returns all items in insertion order.
func (g *Grid) Items() []*Item {
	items := make([]*Item, 0, len(g.order))
	for _, p := range g.order {
		items = append(items, g.items[p])
	}
	return items
}

// RandomFree returns a uniformly chosen free cell. While at least 20% of
// cells are free it rejection-samples random coordinates; below that it
// materializes the list of free cells so a nearly full grid cannot make
// sampling arbitrarily slow.
func (g *Grid) RandomFree() (Point, error) {
	if g.free == 0 {
		return Point{}, ErrNoFreeCell
	}

	if 5*g.free >= g.width*g.height {
		for {
			p := Point{rand.Intn(g.width), rand.Intn(g.height)}
			if g.cells[p.X][p.Y] == CellFree {
				return p, nil
			}
		}
	}

	points := make([]Point, 0, g.free)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[x][y] == CellFree {
				points = append(points, Point{x, y})
			}
		}
	}
	return points[rand.Intn(len(points))], nil
}

// Reset clears all items and non-wall cells. A nil layout keeps the
// existing walls; otherwise the new layout replaces them and may change
// the grid dimensions, which invalidates any attached render buffer. It
// is the caller's responsibility to discard the snake as well.
func (g *Grid) Reset(walls [][]bool) error {
	if walls == nil {
		g.items = make(map[Point]*Item)
		g.order = nil
		g.food, g.bombs = 0, 0
		g.free = g.width * g.height
		for x := 0; x < g.width; x++ {
			for y := 0; y < g.height; y++ {
				if g.cells[x][y] == CellWall {
					g.free--
				} else {
					g.cells[x][y] = CellFree
				}
			}
		}
		g.repaint()
		return nil
	}

	width, height := len(walls), len(walls[0])
	if width < 5 || height < 5 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, width, height)
	}
	free := width * height
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if walls[x][y] {
				free--
			}
		}
	}
	if free*10/width/height == 0 {
		return fmt.Errorf("%w: %d of %d cells free", ErrInsufficientFreeSpace, free, width*height)
	}

	resized := width != g.width || height != g.height
	if resized {
		g.cells = make([][]CellState, width)
		for x := range g.cells {
			g.cells[x] = make([]CellState, height)
		}
		g.width, g.height = width, height
	}
	g.items = make(map[Point]*Item)
	g.order = nil
	g.food, g.bombs = 0, 0
	g.free = free
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if walls[x][y] {
				g.cells[x][y] = CellWall
			} else {
				g.cells[x][y] = CellFree
			}
		}
	}
	if resized && g.painter != nil {
		g.painter.InvalidateBuffer(width, height)
	}
	g.repaint()
	return nil
}

// repaint replays the full cell state to the painter after a reset.
func (g *Grid) repaint() {
	if g.painter == nil {
		return
	}
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			p := Point{x, y}
			if g.cells[x][y] == CellFree {
				g.painter.ClearCell(p)
			} else {
				g.painter.PaintCell(p, g.cells[x][y])
			}
		}
	}
}

// NextFrame advances the animation frame of every animated item and
// reports whether anything changed.
func (g *Grid) NextFrame(skin Skin) bool {
	changed := false
	for _, p := range g.order {
		if g.items[p].NextFrame(skin) {
			changed = true
		}
	}
	return changed
}
