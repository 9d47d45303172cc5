package dungeon

// deadEndProcessor reintroduces loops: a dead end is extended, one cell at a time, until the
// path reaches a cell that is already open.
type deadEndProcessor struct{}

func (deadEndProcessor) Process(d *Dungeon, cfg Configuration, rng Random) {
	maxSteps := d.Width * d.Height

	for _, cell := range d.deadEnds() {
		if !chance(rng, cfg.ChanceToRemoveDeadEnds) {
			continue
		}

		dir, ok := cell.firstPassable()
		if !ok {
			continue
		}
		previous := d.Neighbor(cell, dir)
		if previous == nil {
			continue
		}

		reconnect(d, cell, previous, maxSteps, rng)
	}
}

// reconnect walks from start (entered from previous) until it joins an open cell.
// A walk that gets stuck or runs past maxSteps is rolled back and reports false.
func reconnect(d *Dungeon, start, previous *Cell, maxSteps int, rng Random) bool {
	type step struct {
		from *Cell
		dir  Direction
	}
	var path []step

	current := start
	for i := 0; i < maxSteps; i++ {
		dir, ok := nextReconnectDirection(d, current, previous, rng)
		if !ok {
			break
		}

		next := d.Neighbor(current, dir)
		joined := next.Open
		d.Connect(current, dir)
		next.Open = true
		if joined {
			return true
		}

		path = append(path, step{from: current, dir: dir})
		previous, current = current, next
	}

	// Every cell entered along the path was closed before the walk
	for i := len(path) - 1; i >= 0; i-- {
		s := path[i]
		d.Neighbor(s.from, s.dir).Open = false
		d.Disconnect(s.from, s.dir)
	}
	return false
}

// nextReconnectDirection picks a direction that does not step back onto previous. Directions
// that would complete an open 2x2 block are used only when nothing else is available.
func nextReconnectDirection(d *Dungeon, current, previous *Cell, rng Random) (Direction, bool) {
	excluded := make([]Direction, 0, directionCount)
	var square []Direction

	for len(excluded) < directionCount {
		dir := rng.Direction(excluded...)
		excluded = append(excluded, dir)

		next := d.Neighbor(current, dir)
		if next == nil || next.samePosition(previous) {
			continue
		}

		if next.Open && (formsSquare(current, next, dir.Rotate(true)) || formsSquare(current, next, dir.Rotate(false))) {
			square = append(square, dir)
			continue
		}
		return dir, true
	}

	if len(square) > 0 {
		return RandomItem(rng, square), true
	}
	return North, false
}

func formsSquare(current, next *Cell, side Direction) bool {
	return current.IsPassable(side) && next.IsPassable(side)
}
