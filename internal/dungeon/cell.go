package dungeon

// Cell is a single grid position. Row and Column never change after construction.
type Cell struct {
	Row, Column int
	Terrain     Terrain
	Open        bool // participates in the connectivity graph
	InRoom      bool
	Passable    [directionCount]bool
	Walls       [directionCount]WallType

	// Attributes is free-form data for caller-supplied processors. It is nil
	// until the first SetAttribute.
	Attributes map[string]any
}

// SetAttribute stores a value under key
func (c *Cell) SetAttribute(key string, value any) {
	if c.Attributes == nil {
		c.Attributes = make(map[string]any)
	}
	c.Attributes[key] = value
}

// Attribute returns the value stored under key
func (c *Cell) Attribute(key string) (any, bool) {
	value, ok := c.Attributes[key]
	return value, ok
}

// IsPassable returns true if movement is permitted in the given direction
func (c *Cell) IsPassable(dir Direction) bool {
	return c.Passable[dir]
}

// PassableCount returns the number of passable sides
func (c *Cell) PassableCount() int {
	count := 0
	for _, passable := range c.Passable {
		if passable {
			count++
		}
	}
	return count
}

// IsDeadEnd returns true if the cell has exactly one passable side
func (c *Cell) IsDeadEnd() bool {
	return c.PassableCount() == 1
}

// firstPassable returns the first passable direction in index order.
func (c *Cell) firstPassable() (Direction, bool) {
	for _, dir := range AllDirections() {
		if c.Passable[dir] {
			return dir, true
		}
	}
	return North, false
}

// samePosition compares cells by coordinates.
func (c *Cell) samePosition(other *Cell) bool {
	return other != nil && c.Row == other.Row && c.Column == other.Column
}

// reset returns the cell to closed rock.
func (c *Cell) reset() {
	c.Terrain = Rock
	c.Open = false
	c.InRoom = false
	c.Passable = [directionCount]bool{}
	c.Walls = [directionCount]WallType{}
	c.Attributes = nil
}
