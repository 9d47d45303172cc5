// Package dungeon generates tile-based dungeon layouts: a maze of corridors inflated into a
// tile grid, with rectangular rooms, doors and resolved walls.
package dungeon

// Dungeon is a rectangular grid of cells plus the rooms placed on it.
// Cells are stored row-major; Height rows of Width columns.
type Dungeon struct {
	Width, Height int
	cells         []Cell
	rooms         []*Room
}

// New creates a dungeon of the given size with every cell closed rock
func New(width, height int) *Dungeon {
	d := &Dungeon{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
	for row := 0; row < height; row++ {
		for column := 0; column < width; column++ {
			c := &d.cells[row*width+column]
			c.Row = row
			c.Column = column
		}
	}
	return d
}

// InBounds returns true if the coordinate lies inside the grid
func (d *Dungeon) InBounds(row, column int) bool {
	return row >= 0 && row < d.Height && column >= 0 && column < d.Width
}

// Cell returns the cell at the coordinate. Out-of-bounds access is a programming error and panics.
func (d *Dungeon) Cell(row, column int) *Cell {
	if !d.InBounds(row, column) {
		panic("dungeon: cell out of bounds")
	}
	return &d.cells[row*d.Width+column]
}

// TryCell returns the cell at the coordinate, or nil when outside the grid
func (d *Dungeon) TryCell(row, column int) *Cell {
	if !d.InBounds(row, column) {
		return nil
	}
	return &d.cells[row*d.Width+column]
}

// Neighbor returns the adjacent cell in the given direction, or nil at the grid edge
func (d *Dungeon) Neighbor(c *Cell, dir Direction) *Cell {
	return d.neighborAt(c, dir, 1)
}

func (d *Dungeon) neighborAt(c *Cell, dir Direction, distance int) *Cell {
	dr, dc := dir.offset()
	return d.TryCell(c.Row+dr*distance, c.Column+dc*distance)
}

// Cells returns every cell in row-major order
func (d *Dungeon) Cells() []*Cell {
	cells := make([]*Cell, len(d.cells))
	for i := range d.cells {
		cells[i] = &d.cells[i]
	}
	return cells
}

// Rooms returns the placed rooms in placement order
func (d *Dungeon) Rooms() []*Room {
	rooms := make([]*Room, len(d.rooms))
	copy(rooms, d.rooms)
	return rooms
}

// RoomCells returns the cells covered by a room, clipped to the grid, row-major
func (d *Dungeon) RoomCells(r *Room) []*Cell {
	var cells []*Cell
	for row := max(r.Row, 0); row < min(r.Bottom(), d.Height); row++ {
		for column := max(r.Column, 0); column < min(r.Right(), d.Width); column++ {
			cells = append(cells, d.Cell(row, column))
		}
	}
	return cells
}

// deadEnds returns every cell with exactly one passable side, row-major.
func (d *Dungeon) deadEnds() []*Cell {
	var cells []*Cell
	for i := range d.cells {
		if d.cells[i].IsDeadEnd() {
			cells = append(cells, &d.cells[i])
		}
	}
	return cells
}

// Connect opens the passage between c and its neighbor on both sides. Processors should
// use Connect and Disconnect rather than writing Cell.Passable so that passability stays
// symmetric.
func (d *Dungeon) Connect(c *Cell, dir Direction) {
	d.setPassage(c, dir, true)
}

// Disconnect closes the passage between c and its neighbor on both sides.
func (d *Dungeon) Disconnect(c *Cell, dir Direction) {
	d.setPassage(c, dir, false)
}

func (d *Dungeon) setPassage(c *Cell, dir Direction, passable bool) {
	c.Passable[dir] = passable
	if n := d.Neighbor(c, dir); n != nil {
		n.Passable[dir.Opposite()] = passable
	}
}

func (d *Dungeon) addRoom(r *Room) {
	d.rooms = append(d.rooms, r)
}

func (d *Dungeon) removeRoom(r *Room) {
	for i, existing := range d.rooms {
		if existing == r {
			d.rooms = append(d.rooms[:i], d.rooms[i+1:]...)
			return
		}
	}
}
