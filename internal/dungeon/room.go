package dungeon

// Size is a room footprint in tiles
type Size struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Room is a rectangular area placed on the refined grid. Row and Column are the top-left tile.
type Room struct {
	ID     int
	Size   Size
	Row    int
	Column int
}

// Right returns the column just past the room's east edge
func (r *Room) Right() int {
	return r.Column + r.Size.Width
}

// Bottom returns the row just past the room's south edge
func (r *Room) Bottom() int {
	return r.Row + r.Size.Height
}

// Contains returns true if the tile at row, column lies inside the room
func (r *Room) Contains(row, column int) bool {
	return row >= r.Row && row < r.Bottom() && column >= r.Column && column < r.Right()
}
