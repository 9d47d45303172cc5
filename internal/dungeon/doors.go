package dungeon

// doorProcessor turns single-width corridor tiles leading into rooms into doors.
type doorProcessor struct{}

func (doorProcessor) Process(d *Dungeon, cfg Configuration, rng Random) {
	for _, room := range d.rooms {
		for _, dir := range AllDirections() {
			for _, edge := range roomEdge(d, room, dir) {
				placeDoor(d, edge, dir, cfg.ChanceToPlaceRoomDoor, rng)
			}
		}
	}
}

// roomEdge returns the room's boundary tiles on the given side.
func roomEdge(d *Dungeon, room *Room, dir Direction) []*Cell {
	var cells []*Cell
	switch dir {
	case North, South:
		row := room.Row
		if dir == South {
			row = room.Bottom() - 1
		}
		for column := room.Column; column < room.Right(); column++ {
			cells = append(cells, d.Cell(row, column))
		}
	case East, West:
		column := room.Column
		if dir == East {
			column = room.Right() - 1
		}
		for row := room.Row; row < room.Bottom(); row++ {
			cells = append(cells, d.Cell(row, column))
		}
	}
	return cells
}

func placeDoor(d *Dungeon, edge *Cell, outward Direction, p float64, rng Random) {
	corridor := d.Neighbor(edge, outward)
	if corridor == nil || corridor.Terrain != Floor {
		return
	}

	// The corridor must run at least two tiles deep
	beyond := d.Neighbor(corridor, outward)
	if beyond == nil || beyond.Terrain != Floor {
		return
	}

	for _, side := range []Direction{outward.Rotate(false), outward.Rotate(true)} {
		lateral := d.Neighbor(corridor, side)
		if lateral == nil || lateral.Terrain != Rock {
			return
		}
	}

	if !chance(rng, p) {
		return
	}

	if outward == North || outward == South {
		corridor.Terrain = DoorNorthSouth
	} else {
		corridor.Terrain = DoorEastWest
	}
}
