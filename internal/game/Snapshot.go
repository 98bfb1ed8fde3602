package game

// ItemView is an item as the render collaborator sees it: a position and
// the glyph for its current animation frame.
type ItemView struct {
	Point  Point
	Glyph  rune
	IsBomb bool
}

// Snapshot is a consistent copy of everything a renderer needs for one
// frame, taken under the controller lock so views never observe a
// half-applied move.
type Snapshot struct {
	Width, Height int
	Cells         [][]CellState // indexed [x][y]
	Items         []ItemView
	Body          []Point // head first
	Points        int
	Move          int
	Speed         float64
	State         GameState
	Auto          bool
}

// Snapshot copies the current game state for rendering.
func (gc *GameController) Snapshot() Snapshot {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	snap := Snapshot{
		Width:  gc.grid.Width(),
		Height: gc.grid.Height(),
		Points: gc.snake.Size() - 1,
		Move:   gc.move,
		Speed:  gc.config.Speed(gc.move, gc.snake.Size()),
		State:  gc.state,
		Auto:   gc.auto,
	}
	snap.Cells = make([][]CellState, snap.Width)
	for x := range snap.Cells {
		snap.Cells[x] = make([]CellState, snap.Height)
		copy(snap.Cells[x], gc.grid.cells[x])
	}
	for _, it := range gc.grid.Items() {
		snap.Items = append(snap.Items, ItemView{
			Point:  it.Point(),
			Glyph:  gc.skin.Glyph(it.ImgID(), it.Frame()),
			IsBomb: it.IsBomb(),
		})
	}
	snap.Body = gc.snake.Segments()
	return snap
}
