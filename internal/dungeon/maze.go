package dungeon

// mazeProcessor carves a spanning tree of passages using randomized backtracking.
// Exhausted cells leave the frontier and carving resumes from a random frontier cell,
// which mixes long corridors with branching.
type mazeProcessor struct{}

func (mazeProcessor) Process(d *Dungeon, cfg Configuration, rng Random) {
	total := d.Width * d.Height
	visited := make([]bool, total)
	visitedCount := 0

	// frontierIndex[i] is the position of cell i in frontier, or -1
	frontier := make([]*Cell, 0, total)
	frontierIndex := make([]int, total)
	for i := range frontierIndex {
		frontierIndex[i] = -1
	}

	var previous Direction
	hasPrevious := false

	current := rng.Cell(d)
	current.Open = true

	for visitedCount < total {
		idx := current.Row*d.Width + current.Column
		if !visited[idx] {
			visited[idx] = true
			visitedCount++
			frontierIndex[idx] = len(frontier)
			frontier = append(frontier, current)
		}

		dir, ok := nextMazeDirection(d, current, visited, cfg.Randomness, previous, hasPrevious, rng)
		if !ok {
			// Swap-remove keeps the frontier order deterministic
			pos := frontierIndex[idx]
			last := len(frontier) - 1
			frontier[pos] = frontier[last]
			frontierIndex[frontier[pos].Row*d.Width+frontier[pos].Column] = pos
			frontier = frontier[:last]
			frontierIndex[idx] = -1

			if len(frontier) == 0 {
				return
			}
			current = RandomItem(rng, frontier)
			continue
		}

		next := d.Neighbor(current, dir)
		d.Connect(current, dir)
		next.Open = true
		current = next
		previous = dir
		hasPrevious = true
	}
}

// nextMazeDirection picks the direction to carve from cell, or false if it is exhausted.
func nextMazeDirection(d *Dungeon, cell *Cell, visited []bool, randomness float64,
	previous Direction, hasPrevious bool, rng Random) (Direction, bool) {

	// Straightness bias: lower randomness keeps going the same way more often
	if hasPrevious && randomness < 1.0 && rng.Float64() > randomness &&
		canVisit(d, cell, previous, visited) {
		return previous, true
	}

	invalid := make([]Direction, 0, directionCount)
	for len(invalid) < directionCount {
		dir := rng.Direction(invalid...)
		if canVisit(d, cell, dir, visited) {
			return dir, true
		}
		invalid = append(invalid, dir)
	}

	return North, false
}

func canVisit(d *Dungeon, cell *Cell, dir Direction, visited []bool) bool {
	n := d.Neighbor(cell, dir)
	return n != nil && !visited[n.Row*d.Width+n.Column]
}
