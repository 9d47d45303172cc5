package dungeon

// Direction represents a cardinal direction in the grid
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// directionCount is the number of cardinal directions; Cell arrays are indexed by Direction.
const directionCount = 4

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// Rotate turns the direction a quarter step, N->E->S->W when clockwise.
func (d Direction) Rotate(clockwise bool) Direction {
	if clockwise {
		return (d + 1) % directionCount
	}
	return (d + directionCount - 1) % directionCount
}

// offset returns the row and column delta for one step in the direction.
func (d Direction) offset() (int, int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	}
	return 0, 0
}

// AllDirections returns all four cardinal directions in index order
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}
