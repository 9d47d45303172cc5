package dungeon

import "math/rand"

// Random is the source of every random decision made during generation.
// Identical call sequences on identically seeded sources must yield identical dungeons.
type Random interface {
	// Direction returns a uniform direction not in excluded. Excluding all four panics.
	Direction(excluded ...Direction) Direction
	// Cell returns a uniform cell of the dungeon
	Cell(d *Dungeon) *Cell
	// Intn returns a uniform int in [0, n)
	Intn(n int) int
	// Float64 returns a uniform float in [0, 1)
	Float64() float64
}

// Randomizer is the default Random, backed by a seeded math/rand generator
type Randomizer struct {
	rng *rand.Rand
}

// NewRandomizer creates a Randomizer for the given seed
func NewRandomizer(seed int64) *Randomizer {
	return &Randomizer{rng: rand.New(rand.NewSource(seed))}
}

// Direction returns a uniform direction from those not excluded, drawn in index order
func (r *Randomizer) Direction(excluded ...Direction) Direction {
	available := make([]Direction, 0, directionCount)
	for _, dir := range AllDirections() {
		if !containsDirection(excluded, dir) {
			available = append(available, dir)
		}
	}
	if len(available) == 0 {
		panic("dungeon: every direction excluded")
	}
	return available[r.rng.Intn(len(available))]
}

// Cell returns a uniform cell of the dungeon
func (r *Randomizer) Cell(d *Dungeon) *Cell {
	return d.Cell(r.rng.Intn(d.Height), r.rng.Intn(d.Width))
}

// Intn returns a uniform int in [0, n)
func (r *Randomizer) Intn(n int) int {
	return r.rng.Intn(n)
}

// Float64 returns a uniform float in [0, 1)
func (r *Randomizer) Float64() float64 {
	return r.rng.Float64()
}

// RandomItem returns a uniform element of a non-empty slice
func RandomItem[T any](rng Random, items []T) T {
	return items[rng.Intn(len(items))]
}

// chance reports whether an event with probability p happens on a fresh draw.
func chance(rng Random, p float64) bool {
	return rng.Float64() < p
}

// shuffle permutes items in place (Fisher-Yates).
func shuffle[T any](rng Random, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func containsDirection(dirs []Direction, dir Direction) bool {
	for _, d := range dirs {
		if d == dir {
			return true
		}
	}
	return false
}
