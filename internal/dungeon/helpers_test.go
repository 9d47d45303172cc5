package dungeon

import "testing"

// carveMaze runs only the maze stage on a fresh logical grid.
func carveMaze(width, height int, randomness float64, seed int64) *Dungeon {
	d := New(width, height)
	cfg := Configuration{Width: width, Height: height, Randomness: randomness}
	mazeProcessor{}.Process(d, cfg, NewRandomizer(seed))
	return d
}

// countPassages counts undirected passable edges, looking east and south only.
func countPassages(d *Dungeon) int {
	count := 0
	for _, c := range d.Cells() {
		if c.IsPassable(East) {
			count++
		}
		if c.IsPassable(South) {
			count++
		}
	}
	return count
}

func countOpen(d *Dungeon) int {
	count := 0
	for _, c := range d.Cells() {
		if c.Open {
			count++
		}
	}
	return count
}

// reachable counts cells reachable from start through passable sides.
func reachable(d *Dungeon, start *Cell) int {
	seen := make(map[[2]int]bool)
	queue := []*Cell{start}
	seen[[2]int{start.Row, start.Column}] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dir := range AllDirections() {
			if !current.IsPassable(dir) {
				continue
			}
			n := d.Neighbor(current, dir)
			if n == nil || seen[[2]int{n.Row, n.Column}] {
				continue
			}
			key := [2]int{n.Row, n.Column}
			seen[key] = true
			queue = append(queue, n)
		}
	}
	return len(seen)
}

// assertSymmetric fails the test if any pair of neighbors disagrees about their shared side.
func assertSymmetric(t *testing.T, d *Dungeon) {
	t.Helper()
	for _, c := range d.Cells() {
		for _, dir := range AllDirections() {
			n := d.Neighbor(c, dir)
			if n == nil {
				if c.IsPassable(dir) {
					t.Errorf("cell (%d,%d) passable %s off the grid edge", c.Row, c.Column, dir)
				}
				continue
			}
			if c.IsPassable(dir) != n.IsPassable(dir.Opposite()) {
				t.Errorf("asymmetric passage between (%d,%d) and (%d,%d)", c.Row, c.Column, n.Row, n.Column)
			}
		}
	}
}
