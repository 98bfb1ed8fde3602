package game

import (
	"errors"
	"testing"
)

func mustGrid(t *testing.T, width, height int, walls [][]bool) *Grid {
	t.Helper()
	g, err := NewGrid(width, height, walls)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d): %v", width, height, err)
	}
	return g
}

func TestNewGridRejectsSmallDimensions(t *testing.T) {
	for _, dim := range [][2]int{{4, 5}, {5, 4}, {1, 1}} {
		if _, err := NewGrid(dim[0], dim[1], nil); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("NewGrid(%d, %d) err = %v, want ErrInvalidDimension", dim[0], dim[1], err)
		}
	}
}

func TestNewGridRejectsWalledUpLayout(t *testing.T) {
	// 96% walls on a 5x5 leaves one free cell, below the 10% floor.
	walls := make([][]bool, 5)
	for x := range walls {
		walls[x] = []bool{true, true, true, true, true}
	}
	walls[2][2] = false
	if _, err := NewGridFromWalls(walls); !errors.Is(err, ErrInsufficientFreeSpace) {
		t.Errorf("err = %v, want ErrInsufficientFreeSpace", err)
	}

	// Exactly 10% free is fine: 5 of 50 cells.
	walls = make([][]bool, 10)
	for x := range walls {
		walls[x] = make([]bool, 5)
		for y := range walls[x] {
			walls[x][y] = true
		}
	}
	for y := 0; y < 5; y++ {
		walls[0][y] = false
	}
	if _, err := NewGridFromWalls(walls); err != nil {
		t.Errorf("10%% free grid rejected: %v", err)
	}
}

func TestGetWrapsPoint(t *testing.T) {
	g := mustGrid(t, 5, 5, nil)
	if err := g.PutWall(Point{0, 0}); err != nil {
		t.Fatal(err)
	}
	if got := g.Get(Point{5, 5}); got != CellWall {
		t.Errorf("Get((5,5)) = %v, want wall via wraparound", got)
	}
	if got := g.Get(Point{-5, -5}); got != CellWall {
		t.Errorf("Get((-5,-5)) = %v, want wall via wraparound", got)
	}
}

func TestOccupyClearRoundTrip(t *testing.T) {
	g := mustGrid(t, 5, 5, nil)
	p := Point{2, 2}
	freeBefore := g.CountFree()

	if err := g.occupy(p, CellBody); err != nil {
		t.Fatalf("occupy: %v", err)
	}
	if g.CountFree() != freeBefore-1 {
		t.Errorf("free count = %d, want %d", g.CountFree(), freeBefore-1)
	}

	var occupied *CellOccupiedError
	if err := g.occupy(p, CellFood); !errors.As(err, &occupied) {
		t.Fatalf("second occupy err = %v, want CellOccupiedError", err)
	} else if occupied.Point != p || occupied.State != CellBody {
		t.Errorf("CellOccupiedError = %+v, want point %v state body", occupied, p)
	}

	var unexpected *UnexpectedStateError
	if err := g.clear(p, CellFood); !errors.As(err, &unexpected) {
		t.Fatalf("mismatched clear err = %v, want UnexpectedStateError", err)
	}

	if err := g.clear(p, CellBody); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if g.Get(p) != CellFree {
		t.Errorf("Get(%v) = %v after clear, want free", p, g.Get(p))
	}
	if g.CountFree() != freeBefore {
		t.Errorf("free count = %d after round trip, want %d", g.CountFree(), freeBefore)
	}
}

func TestPutItemKeepsRegistryInLockstep(t *testing.T) {
	g := mustGrid(t, 5, 5, nil)
	food := NewItem(Point{1, 1}, CellFood, 10, 0)
	bomb := NewItem(Point{3, 3}, CellBomb, 10, 1)

	if err := g.PutItem(food); err != nil {
		t.Fatal(err)
	}
	if err := g.PutItem(bomb); err != nil {
		t.Fatal(err)
	}
	if g.CountFood() != 1 || g.CountBombs() != 1 {
		t.Errorf("counts food=%d bombs=%d, want 1/1", g.CountFood(), g.CountBombs())
	}
	if g.Get(Point{1, 1}) != CellFood || g.Get(Point{3, 3}) != CellBomb {
		t.Error("cell states do not match placed items")
	}
	if got := g.GetItem(Point{1, 1}); got != food {
		t.Errorf("GetItem returned %+v, want the placed food item", got)
	}

	items := g.Items()
	if len(items) != 2 || items[0] != food || items[1] != bomb {
		t.Errorf("Items() order = %v, want insertion order", items)
	}

	if err := g.RemoveItem(food); err != nil {
		t.Fatal(err)
	}
	if g.CountFood() != 0 {
		t.Errorf("food count = %d after removal, want 0", g.CountFood())
	}
	if g.Get(Point{1, 1}) != CellFree {
		t.Error("cell not freed after item removal")
	}
	if g.GetItem(Point{1, 1}) != nil {
		t.Error("registry still holds removed item")
	}
}

func TestRandomFreeExhaustiveBranch(t *testing.T) {
	g := mustGrid(t, 5, 5, nil)

	// Fill all but four known cells so the free ratio drops below 20%
	// and the explicit-list branch is taken.
	free := map[Point]bool{
		{0, 0}: true, {2, 2}: true, {4, 1}: true, {1, 4}: true,
	}
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			p := Point{x, y}
			if !free[p] {
				if err := g.PutWall(p); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	if g.CountFree() != 4 {
		t.Fatalf("free count = %d, want 4", g.CountFree())
	}

	for i := 0; i < 1000; i++ {
		p, err := g.RandomFree()
		if err != nil {
			t.Fatalf("RandomFree: %v", err)
		}
		if !free[p] {
			t.Fatalf("RandomFree returned occupied cell %v", p)
		}
	}
}

func TestRandomFreeOnFullGrid(t *testing.T) {
	g := mustGrid(t, 5, 5, nil)
	for x := 0; x < 5; x++ {
		for y := 0; y < 4; y++ {
			if err := g.PutWall(Point{x, y}); err != nil {
				t.Fatal(err)
			}
		}
	}
	// Leave the last row free so construction-era invariants hold, then
	// fill it via items.
	for x := 0; x < 5; x++ {
		if err := g.PutItem(NewItem(Point{x, 4}, CellFood, -1, 0)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := g.RandomFree(); !errors.Is(err, ErrNoFreeCell) {
		t.Errorf("err = %v, want ErrNoFreeCell", err)
	}
}

func TestResetKeepsWallsClearsItems(t *testing.T) {
	walls := PlainWalls(6, 6)
	walls[1][1] = true
	g := mustGrid(t, 6, 6, walls)
	if err := g.PutItem(NewItem(Point{2, 2}, CellFood, 5, 0)); err != nil {
		t.Fatal(err)
	}
	if err := g.occupy(Point{3, 3}, CellBody); err != nil {
		t.Fatal(err)
	}

	if err := g.Reset(nil); err != nil {
		t.Fatal(err)
	}
	if g.Get(Point{1, 1}) != CellWall {
		t.Error("wall lost on reset")
	}
	if g.Get(Point{2, 2}) != CellFree || g.Get(Point{3, 3}) != CellFree {
		t.Error("items or body survived reset")
	}
	if len(g.Items()) != 0 || g.CountFood() != 0 {
		t.Error("item registry not cleared on reset")
	}
	if g.CountFree() != 35 {
		t.Errorf("free count = %d, want 35", g.CountFree())
	}
}

// recordingPainter collects cell notifications for inspection.
type recordingPainter struct {
	painted     map[Point]CellState
	cleared     map[Point]int
	invalidated bool
}

func newRecordingPainter() *recordingPainter {
	return &recordingPainter{
		painted: make(map[Point]CellState),
		cleared: make(map[Point]int),
	}
}

func (r *recordingPainter) PaintCell(p Point, state CellState) { r.painted[p] = state }
func (r *recordingPainter) ClearCell(p Point)                  { r.cleared[p]++ }
func (r *recordingPainter) InvalidateBuffer(w, h int)          { r.invalidated = true }

func TestPainterNotifications(t *testing.T) {
	g := mustGrid(t, 5, 5, nil)
	painter := newRecordingPainter()
	g.SetPainter(painter)

	p := Point{2, 3}
	if err := g.PutItem(NewItem(p, CellBomb, -1, 0)); err != nil {
		t.Fatal(err)
	}
	if painter.painted[p] != CellBomb {
		t.Errorf("painter saw %v, want bomb paint", painter.painted[p])
	}
	if err := g.RemoveItemAt(p); err != nil {
		t.Fatal(err)
	}
	if painter.cleared[p] != 1 {
		t.Errorf("painter clear count = %d, want 1", painter.cleared[p])
	}

	// Resizing the grid invalidates the render buffer.
	if err := g.Reset(PlainWalls(8, 8)); err != nil {
		t.Fatal(err)
	}
	if !painter.invalidated {
		t.Error("painter not told about resize")
	}
}

func TestNextFrameAdvancesAnimatedItemsOnly(t *testing.T) {
	g := mustGrid(t, 5, 5, nil)
	skin := DefaultCharSkin()

	static := NewItem(Point{1, 1}, CellFood, -1, 0)  // single frame
	animated := NewItem(Point{2, 2}, CellFood, -1, 1) // two frames
	if err := g.PutItem(static); err != nil {
		t.Fatal(err)
	}
	if err := g.PutItem(animated); err != nil {
		t.Fatal(err)
	}

	if !g.NextFrame(skin) {
		t.Fatal("NextFrame reported no change with an animated item present")
	}
	if static.Frame() != 0 {
		t.Errorf("static item frame = %d, want 0", static.Frame())
	}
	if animated.Frame() != 1 {
		t.Errorf("animated item frame = %d, want 1", animated.Frame())
	}
	g.NextFrame(skin)
	if animated.Frame() != 0 {
		t.Errorf("animated item frame = %d after wrap, want 0", animated.Frame())
	}
}
