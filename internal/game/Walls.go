package game

// PlainWalls returns a wall layout with no walls at all.
func PlainWalls(width, height int) [][]bool {
	walls := make([][]bool, width)
	for x := range walls {
		walls[x] = make([]bool, height)
	}
	return walls
}

// BorderedWalls returns a wall layout with a single-cell wall all around
// the edge, turning the torus into a closed arena.
func BorderedWalls(width, height int) [][]bool {
	walls := PlainWalls(width, height)
	for x := 0; x < width; x++ {
		walls[x][0] = true
		walls[x][height-1] = true
	}
	for y := 0; y < height; y++ {
		walls[0][y] = true
		walls[width-1][y] = true
	}
	return walls
}
