package game

import "math/rand"

// Strategy picks the snake's direction in auto (demo) games.
type Strategy interface {
	NextDirection(g *Grid, head Point, heading Direction, size int) Direction
}

// DefaultStrategy keeps the current heading most of the time and dodges
// into a safe direction otherwise.
type DefaultStrategy struct{}

// NextDirection keeps the heading with probability 0.8 while the cell
// ahead is safe. Otherwise it picks uniformly among directions that are
// not the reverse of the heading (unless the snake is a single segment)
// and lead onto a free or food cell. With nowhere to go it keeps the
// heading and lets the snake die.
func (DefaultStrategy) NextDirection(g *Grid, head Point, heading Direction, size int) Direction {
	if rand.Float64() < 0.8 && g.IsSafe(head.Translate(heading)) {
		return heading
	}

	var dirs []Direction
	for d := DirUp; d <= DirRight; d++ {
		if (size == 1 || !AreOpposites(d, heading)) && g.IsSafe(head.Translate(d)) {
			dirs = append(dirs, d)
		}
	}
	if len(dirs) == 0 {
		return heading
	}
	return dirs[rand.Intn(len(dirs))]
}
