package game

import "testing"

func TestDefaultStrategyPicksOnlySafeDirection(t *testing.T) {
	g, err := NewGrid(7, 7, nil)
	if err != nil {
		t.Fatal(err)
	}
	head := Point{3, 3}
	if err := g.putBody(head); err != nil {
		t.Fatal(err)
	}
	// Block up and left; with down excluded as the reverse of the
	// heading, right is the only way out.
	if err := g.PutWall(Point{3, 2}); err != nil {
		t.Fatal(err)
	}
	if err := g.PutWall(Point{2, 3}); err != nil {
		t.Fatal(err)
	}

	s := DefaultStrategy{}
	for i := 0; i < 200; i++ {
		if d := s.NextDirection(g, head, DirUp, 2); d != DirRight {
			t.Fatalf("NextDirection = %v, want right", d)
		}
	}
}

func TestDefaultStrategyTakesReverseWhenSizeOne(t *testing.T) {
	g, err := NewGrid(7, 7, nil)
	if err != nil {
		t.Fatal(err)
	}
	head := Point{3, 3}
	if err := g.putBody(head); err != nil {
		t.Fatal(err)
	}
	for _, p := range []Point{{3, 2}, {2, 3}, {4, 3}} {
		if err := g.PutWall(p); err != nil {
			t.Fatal(err)
		}
	}
	s := DefaultStrategy{}
	for i := 0; i < 200; i++ {
		if d := s.NextDirection(g, head, DirUp, 1); d != DirDown {
			t.Fatalf("NextDirection = %v, want down", d)
		}
	}
}

func TestDefaultStrategyKeepsHeadingWhenTrapped(t *testing.T) {
	g, err := NewGrid(7, 7, nil)
	if err != nil {
		t.Fatal(err)
	}
	head := Point{3, 3}
	if err := g.putBody(head); err != nil {
		t.Fatal(err)
	}
	for _, p := range []Point{{3, 2}, {3, 4}, {2, 3}, {4, 3}} {
		if err := g.PutWall(p); err != nil {
			t.Fatal(err)
		}
	}
	if d := (DefaultStrategy{}).NextDirection(g, head, DirLeft, 3); d != DirLeft {
		t.Errorf("NextDirection = %v, want heading kept", d)
	}
}

func TestDefaultStrategyTreatsFoodAsSafe(t *testing.T) {
	g, err := NewGrid(7, 7, nil)
	if err != nil {
		t.Fatal(err)
	}
	head := Point{3, 3}
	if err := g.putBody(head); err != nil {
		t.Fatal(err)
	}
	for _, p := range []Point{{2, 3}, {4, 3}} {
		if err := g.PutWall(p); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.PutItem(NewItem(Point{3, 2}, CellFood, -1, 0)); err != nil {
		t.Fatal(err)
	}
	if err := g.PutItem(NewItem(Point{3, 4}, CellBomb, -1, 0)); err != nil {
		t.Fatal(err)
	}
	s := DefaultStrategy{}
	for i := 0; i < 200; i++ {
		if d := s.NextDirection(g, head, DirUp, 2); d != DirUp {
			t.Fatalf("NextDirection = %v, want up onto the food", d)
		}
	}
}

func TestNewLuaStrategyRejectsBrokenScripts(t *testing.T) {
	if _, err := NewLuaStrategy("this is not lua"); err == nil {
		t.Error("syntax error accepted")
	}
	if _, err := NewLuaStrategy("x = 1"); err == nil {
		t.Error("script without getNextDirection accepted")
	}
}

func TestLuaStrategyReturnsScriptedDirection(t *testing.T) {
	s, err := NewLuaStrategy(`
		function getNextDirection(state)
			return {Dx = 1, Dy = 0}
		end
	`)
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewGrid(7, 7, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d := s.NextDirection(g, Point{3, 3}, DirUp, 1); d != DirRight {
		t.Errorf("NextDirection = %v, want right", d)
	}
}

func TestLuaStrategySeesGameState(t *testing.T) {
	// Echo the heading back by translating it to a unit vector.
	s, err := NewLuaStrategy(`
		function getNextDirection(state)
			if state.heading == "left" and state.safe["left"] then
				return {Dx = -1, Dy = 0}
			end
			return {Dx = 0, Dy = 1}
		end
	`)
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewGrid(7, 7, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d := s.NextDirection(g, Point{3, 3}, DirLeft, 1); d != DirLeft {
		t.Errorf("NextDirection = %v, want left", d)
	}
	if err := g.PutWall(Point{2, 3}); err != nil {
		t.Fatal(err)
	}
	if d := s.NextDirection(g, Point{3, 3}, DirLeft, 1); d != DirDown {
		t.Errorf("NextDirection = %v, want down once left is blocked", d)
	}
}

func TestLuaStrategyFallsBackOnBadReturn(t *testing.T) {
	s, err := NewLuaStrategy(`
		function getNextDirection(state)
			return {Dx = 5, Dy = 5}
		end
	`)
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewGrid(7, 7, nil)
	if err != nil {
		t.Fatal(err)
	}
	d := s.NextDirection(g, Point{3, 3}, DirUp, 1)
	if d < DirUp || d > DirRight {
		t.Errorf("fallback returned invalid direction %v", d)
	}
}
