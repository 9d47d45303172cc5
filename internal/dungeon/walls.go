package dungeon

// wallProcessor finalizes walls and passability for every tile and side. A side is passable
// only when neither tile is rock, so passability is always symmetric.
type wallProcessor struct{}

func (wallProcessor) Process(d *Dungeon, cfg Configuration, rng Random) {
	for _, cell := range d.Cells() {
		for _, dir := range AllDirections() {
			cell.Walls[dir], cell.Passable[dir] = resolveWall(cell, d.Neighbor(cell, dir))
		}
	}
}

func resolveWall(cell, neighbor *Cell) (WallType, bool) {
	switch {
	case neighbor == nil, neighbor.Terrain == Rock, cell.Terrain == Rock:
		return WallSolid, false
	case neighbor.Terrain == DoorNorthSouth:
		return WallDoorNorthSouth, true
	case neighbor.Terrain == DoorEastWest:
		return WallDoorEastWest, true
	default:
		return WallNone, true
	}
}
