package dungeon

import "maps"

// refine inflates a logical maze into a tile grid of (2w+1) x (2h+1). Each open cell becomes the
// tile at (2r+1, 2c+1) and each passage becomes the tile between two such centers.
// Attributes of an open cell are copied to its center tile. The logical grid is not
// referenced by the result.
func refine(maze *Dungeon) *Dungeon {
	tiles := New(maze.Width*2+1, maze.Height*2+1)

	for _, cell := range maze.Cells() {
		if !cell.Open {
			continue
		}

		center := tiles.Cell(cell.Row*2+1, cell.Column*2+1)
		carveFloor(center)
		if cell.Attributes != nil {
			center.Attributes = maps.Clone(cell.Attributes)
		}

		for _, dir := range AllDirections() {
			if !cell.IsPassable(dir) {
				continue
			}
			if between := tiles.Neighbor(center, dir); between != nil {
				carveFloor(between)
			}
		}
	}

	return tiles
}

func carveFloor(c *Cell) {
	c.Terrain = Floor
	c.Open = true
}
