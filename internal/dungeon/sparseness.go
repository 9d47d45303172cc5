package dungeon

// sparsenessProcessor peels dead ends off the corridor tree until
// floor(width*height*sparseness) removals have been made or no dead ends remain.
type sparsenessProcessor struct{}

func (sparsenessProcessor) Process(d *Dungeon, cfg Configuration, rng Random) {
	remaining := int(float64(d.Width*d.Height) * cfg.Sparseness)

	for remaining > 0 {
		deadEnds := d.deadEnds()
		if len(deadEnds) == 0 {
			return
		}

		for _, cell := range deadEnds {
			cell.Open = false

			// An earlier removal in this pass may already have cut its last passage
			dir, ok := cell.firstPassable()
			if !ok {
				continue
			}
			d.Disconnect(cell, dir)

			remaining--
			if remaining == 0 {
				return
			}
		}
	}
}
