package dungeon

// Terrain is the physical content of a cell
type Terrain int

const (
	Rock Terrain = iota
	Floor
	DoorNorthSouth
	DoorEastWest
)

// String returns the string representation of a Terrain
func (t Terrain) String() string {
	switch t {
	case Rock:
		return "rock"
	case Floor:
		return "floor"
	case DoorNorthSouth:
		return "door_north_south"
	case DoorEastWest:
		return "door_east_west"
	default:
		return "unknown"
	}
}

// IsDoor returns true for either door orientation
func (t Terrain) IsDoor() bool {
	return t == DoorNorthSouth || t == DoorEastWest
}

// WallType describes what separates a cell from its neighbor on one side
type WallType int

const (
	WallNone WallType = iota
	WallSolid
	WallDoorNorthSouth
	WallDoorEastWest
)

// String returns the string representation of a WallType
func (w WallType) String() string {
	switch w {
	case WallNone:
		return "none"
	case WallSolid:
		return "solid"
	case WallDoorNorthSouth:
		return "door_north_south"
	case WallDoorEastWest:
		return "door_east_west"
	default:
		return "unknown"
	}
}
