package game

import "fmt"

// Direction is one of the four movement directions of the snake.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Unit vectors indexed by direction.
var (
	dxs = [4]int{0, 0, -1, 1}
	dys = [4]int{-1, 1, 0, 0}
)

func (d Direction) Dx() int { return dxs[d] }
func (d Direction) Dy() int { return dys[d] }

// Opposite returns the 180 degree reverse of d. Up/Down and Left/Right
// differ only in the lowest bit.
func (d Direction) Opposite() Direction { return d ^ 1 }

func AreOpposites(d1, d2 Direction) bool { return d1^d2 == 1 }

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Shape is the geometry of a snake body segment derived from the
// directions towards its two neighbours. It is consumed by the render
// collaborator to pick a segment glyph or sprite.
type Shape int

const (
	ShapeTopDown Shape = iota
	ShapeLeftRight
	ShapeTopLeft
	ShapeTopRight
	ShapeDownLeft
	ShapeDownRight
)

var shapes = [4][4]Shape{
	{ShapeTopDown, ShapeTopDown, ShapeDownLeft, ShapeDownRight},
	{ShapeTopDown, ShapeTopDown, ShapeTopLeft, ShapeTopRight},
	{ShapeTopRight, ShapeDownRight, ShapeLeftRight, ShapeLeftRight},
	{ShapeTopLeft, ShapeDownLeft, ShapeLeftRight, ShapeLeftRight},
}

// ShapeOf returns the body shape given the direction from the previous
// segment to this one and from this one to the next.
func ShapeOf(d1, d2 Direction) Shape { return shapes[d1][d2] }

// ShapeBetween returns the shape of the segment at p2 given its head-side
// neighbour p1 and its tail-side neighbour p3.
func ShapeBetween(p1, p2, p3 Point) Shape {
	return ShapeOf(DirectionBetween(p1, p2), DirectionBetween(p2, p3))
}

// Point is an immutable pair of integer grid coordinates.
type Point struct {
	X, Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Translate moves the point one unit in the given direction without
// wrapping.
func (p Point) Translate(d Direction) Point {
	return Point{p.X + d.Dx(), p.Y + d.Dy()}
}

// Wrap reduces both coordinates into [0, width) x [0, height), correcting
// for negative remainders. Stepping off one edge reappears on the
// opposite one.
func (p Point) Wrap(width, height int) Point {
	x := p.X % width
	y := p.Y % height
	if x < 0 {
		x += width
	}
	if y < 0 {
		y += height
	}
	return Point{x, y}
}

// TranslateWrap moves the point one unit in the given direction and wraps
// the result into [0, width) x [0, height).
func (p Point) TranslateWrap(d Direction, width, height int) Point {
	return p.Translate(d).Wrap(width, height)
}

// DirectionBetween returns the direction one has to move from p1 to reach
// p2. The caller must pass points that are exactly one step apart, where a
// coordinate difference with absolute value greater than one is treated as
// a wrap around the edge of the grid. For non-adjacent points the result
// is unspecified; the x axis wins ties.
func DirectionBetween(p1, p2 Point) Direction {
	diff := p2.X - p1.X
	ret := DirUp
	switch {
	case diff < 0:
		ret = DirLeft
	case diff > 0:
		ret = DirRight
	default:
		diff = p2.Y - p1.Y
		if diff < 0 {
			ret = DirUp
		} else {
			ret = DirDown
		}
	}
	if diff*diff > 1 {
		return ret.Opposite()
	}
	return ret
}
