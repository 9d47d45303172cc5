package dungeon

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSize        = errors.New("dungeon: width and height must be positive")
	ErrInvalidProbability = errors.New("dungeon: probability outside [0, 1]")
	ErrInvalidRoomRange   = errors.New("dungeon: invalid room size range")
	ErrInvalidRoomCount   = errors.New("dungeon: room count must not be negative")
)

// Configuration contains the parameters for one dungeon generation run.
// Width and Height are logical maze dimensions; the finished grid is 2*Width+1 by 2*Height+1.
type Configuration struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`

	// Randomness is how often the carver changes direction (1.0 = every step is random)
	Randomness float64 `yaml:"randomness" json:"randomness"`

	// Sparseness is the fraction of logical cells to close off after carving
	Sparseness float64 `yaml:"sparseness" json:"sparseness"`

	ChanceToRemoveDeadEnds float64 `yaml:"chance_to_remove_dead_ends" json:"chance_to_remove_dead_ends"`
	ChanceToPlaceRoomDoor  float64 `yaml:"chance_to_place_room_door" json:"chance_to_place_room_door"`

	MinRoomWidth  int `yaml:"min_room_width" json:"min_room_width"`
	MaxRoomWidth  int `yaml:"max_room_width" json:"max_room_width"`
	MinRoomHeight int `yaml:"min_room_height" json:"min_room_height"`
	MaxRoomHeight int `yaml:"max_room_height" json:"max_room_height"`

	// RoomCount is how many rooms placement attempts to make
	RoomCount int `yaml:"room_count" json:"room_count"`
}

// DefaultConfiguration returns the standard preset for a nicely sized and populated dungeon
func DefaultConfiguration() Configuration {
	return Configuration{
		Width:                  25,
		Height:                 25,
		Randomness:             0.5,
		Sparseness:             0.8,
		ChanceToRemoveDeadEnds: 0.9,
		ChanceToPlaceRoomDoor:  1.0,
		MinRoomWidth:           4,
		MaxRoomWidth:           14,
		MinRoomHeight:          4,
		MaxRoomHeight:          9,
		RoomCount:              14,
	}
}

// Validate checks the configuration. Room ranges are only checked when rooms are requested.
func (c Configuration) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, c.Width, c.Height)
	}

	probabilities := []struct {
		name  string
		value float64
	}{
		{"randomness", c.Randomness},
		{"sparseness", c.Sparseness},
		{"chance_to_remove_dead_ends", c.ChanceToRemoveDeadEnds},
		{"chance_to_place_room_door", c.ChanceToPlaceRoomDoor},
	}
	for _, p := range probabilities {
		// Written this way so NaN is rejected too
		if !(p.value >= 0 && p.value <= 1) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidProbability, p.name, p.value)
		}
	}

	if c.RoomCount < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRoomCount, c.RoomCount)
	}
	if c.RoomCount == 0 {
		return nil
	}

	if c.MinRoomWidth <= 0 || c.MinRoomWidth > c.MaxRoomWidth {
		return fmt.Errorf("%w: width %d..%d", ErrInvalidRoomRange, c.MinRoomWidth, c.MaxRoomWidth)
	}
	if c.MinRoomHeight <= 0 || c.MinRoomHeight > c.MaxRoomHeight {
		return fmt.Errorf("%w: height %d..%d", ErrInvalidRoomRange, c.MinRoomHeight, c.MaxRoomHeight)
	}

	return nil
}

// roomSizes returns every candidate room size, height-major, in a stable order.
// Sizes that cannot fit inside a grid of gridWidth by gridHeight, edge margin
// included, are left out.
func (c Configuration) roomSizes(gridWidth, gridHeight int) []Size {
	maxWidth := min(c.MaxRoomWidth, gridWidth-2)
	maxHeight := min(c.MaxRoomHeight, gridHeight-2)

	var sizes []Size
	for h := c.MinRoomHeight; h <= maxHeight; h++ {
		for w := c.MinRoomWidth; w <= maxWidth; w++ {
			sizes = append(sizes, Size{Width: w, Height: h})
		}
	}
	return sizes
}
