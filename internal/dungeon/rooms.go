package dungeon

// ringTile is a tile bordering a room's side, with the direction pointing away from the room.
type ringTile struct {
	cell    *Cell
	outward Direction
}

// roomProcessor places rooms on the refined grid, then connects or removes isolated rooms.
type roomProcessor struct{}

func (roomProcessor) Process(d *Dungeon, cfg Configuration, rng Random) {
	if cfg.RoomCount <= 0 {
		return
	}
	sizes := cfg.roomSizes(d.Width, d.Height)

	for i := 0; i < cfg.RoomCount && len(sizes) > 0; i++ {
		size := RandomItem(rng, sizes)
		if !placeRoom(d, &Room{ID: i, Size: size}, rng) {
			sizes = removeSize(sizes, size)
		}
	}

	resolveIsolatedRooms(d, rng)
}

// placeRoom tries top-left tiles in random order, without replacement, until the room fits.
func placeRoom(d *Dungeon, room *Room, rng Random) bool {
	candidates := d.Cells()

	for len(candidates) > 0 {
		i := rng.Intn(len(candidates))
		cell := candidates[i]
		last := len(candidates) - 1
		candidates[i] = candidates[last]
		candidates = candidates[:last]

		room.Row = cell.Row
		room.Column = cell.Column
		if !canPlaceRoom(d, room) {
			continue
		}

		for _, c := range d.RoomCells(room) {
			c.Terrain = Floor
			c.InRoom = true
			c.Open = true
		}
		d.addRoom(room)
		return true
	}

	return false
}

func canPlaceRoom(d *Dungeon, room *Room) bool {
	// Leave a one tile margin to the grid edge
	if room.Row <= 0 || room.Column <= 0 || room.Bottom() >= d.Height || room.Right() >= d.Width {
		return false
	}

	for _, c := range d.RoomCells(room) {
		if c.InRoom {
			return false
		}
	}

	ring := roomRing(d, room)
	for _, t := range ring {
		if t.cell.InRoom {
			return false
		}
	}

	corners := [][2]int{
		{room.Row - 1, room.Column - 1},
		{room.Row - 1, room.Right()},
		{room.Bottom(), room.Column - 1},
		{room.Bottom(), room.Right()},
	}
	for _, corner := range corners {
		if c := d.TryCell(corner[0], corner[1]); c == nil || c.Terrain != Rock {
			return false
		}
	}

	// Every corridor touching the room must be single width so it can take a door
	for _, t := range ring {
		if t.cell.Terrain != Floor {
			continue
		}
		for _, side := range []Direction{t.outward.Rotate(true), t.outward.Rotate(false)} {
			if n := d.Neighbor(t.cell, side); n != nil && n.Terrain == Floor {
				return false
			}
		}
	}

	return true
}

// roomRing returns the tiles directly beside each side of the room (corners excluded):
// north row, south row, west column, east column.
func roomRing(d *Dungeon, room *Room) []ringTile {
	var ring []ringTile
	add := func(row, column int, outward Direction) {
		if c := d.TryCell(row, column); c != nil {
			ring = append(ring, ringTile{cell: c, outward: outward})
		}
	}

	for column := room.Column; column < room.Right(); column++ {
		add(room.Row-1, column, North)
	}
	for column := room.Column; column < room.Right(); column++ {
		add(room.Bottom(), column, South)
	}
	for row := room.Row; row < room.Bottom(); row++ {
		add(row, room.Column-1, West)
	}
	for row := room.Row; row < room.Bottom(); row++ {
		add(row, room.Right(), East)
	}

	return ring
}

// resolveIsolatedRooms tunnels from each room whose ring is all rock to the nearest
// non-room floor in a straight line. Rooms that cannot be reached are removed.
func resolveIsolatedRooms(d *Dungeon, rng Random) {
	var isolated []*Room
	for _, room := range d.rooms {
		if isIsolated(d, room) {
			isolated = append(isolated, room)
		}
	}

	for _, room := range isolated {
		if connectRoom(d, room, rng) {
			continue
		}
		for _, c := range d.RoomCells(room) {
			c.reset()
		}
		d.removeRoom(room)
	}
}

func isIsolated(d *Dungeon, room *Room) bool {
	for _, t := range roomRing(d, room) {
		if t.cell.Terrain != Rock {
			return false
		}
	}
	return true
}

func connectRoom(d *Dungeon, room *Room, rng Random) bool {
	ring := roomRing(d, room)
	shuffle(rng, ring)

	for _, t := range ring {
		var tunnel []*Cell
		for c := t.cell; c != nil; c = d.Neighbor(c, t.outward) {
			if c.Terrain != Rock && !c.InRoom {
				for _, tc := range tunnel {
					carveFloor(tc)
				}
				return true
			}
			tunnel = append(tunnel, c)
		}
	}

	return false
}

func removeSize(sizes []Size, size Size) []Size {
	for i, s := range sizes {
		if s == size {
			return append(sizes[:i], sizes[i+1:]...)
		}
	}
	return sizes
}
