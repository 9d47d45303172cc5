// Package export renders a generated dungeon into a portable document that
// can be written as YAML, sent as JSON, or archived.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lawnchairsociety/dungeongen/internal/dungeon"
	"gopkg.in/yaml.v3"
)

// Glyphs used in Document rows.
const (
	GlyphRock           = '#'
	GlyphFloor          = '.'
	GlyphDoorNorthSouth = '-'
	GlyphDoorEastWest   = '|'
)

// ErrMalformed is returned when a decoded document is internally inconsistent.
var ErrMalformed = errors.New("export: malformed document")

// RoomInfo is a room's placement on the tile grid.
type RoomInfo struct {
	ID     int `yaml:"id" json:"id"`
	Row    int `yaml:"row" json:"row"`
	Column int `yaml:"column" json:"column"`
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Document is the serialized form of a finished dungeon. Rows holds one
// string per grid row, one glyph per tile.
type Document struct {
	Width       int        `yaml:"width" json:"width"`
	Height      int        `yaml:"height" json:"height"`
	Seed        int64      `yaml:"seed" json:"seed"`
	Fingerprint string     `yaml:"fingerprint" json:"fingerprint"`
	Rooms       []RoomInfo `yaml:"rooms" json:"rooms"`
	Rows        []string   `yaml:"rows" json:"rows"`
}

// Glyph returns the row character for a terrain.
func Glyph(t dungeon.Terrain) byte {
	switch t {
	case dungeon.Floor:
		return GlyphFloor
	case dungeon.DoorNorthSouth:
		return GlyphDoorNorthSouth
	case dungeon.DoorEastWest:
		return GlyphDoorEastWest
	default:
		return GlyphRock
	}
}

// NewDocument captures d. seed is recorded as given; it is not re-derived.
func NewDocument(d *dungeon.Dungeon, seed int64) *Document {
	doc := &Document{
		Width:       d.Width,
		Height:      d.Height,
		Seed:        seed,
		Fingerprint: Fingerprint(d),
		Rows:        make([]string, d.Height),
	}

	line := make([]byte, d.Width)
	for row := 0; row < d.Height; row++ {
		for column := 0; column < d.Width; column++ {
			line[column] = Glyph(d.Cell(row, column).Terrain)
		}
		doc.Rows[row] = string(line)
	}

	for _, r := range d.Rooms() {
		doc.Rooms = append(doc.Rooms, RoomInfo{
			ID:     r.ID,
			Row:    r.Row,
			Column: r.Column,
			Width:  r.Size.Width,
			Height: r.Size.Height,
		})
	}
	return doc
}

// Count returns how many tiles carry the given glyph.
func (doc *Document) Count(glyph byte) int {
	n := 0
	for _, row := range doc.Rows {
		for i := 0; i < len(row); i++ {
			if row[i] == glyph {
				n++
			}
		}
	}
	return n
}

// Validate checks that the rows match the declared dimensions, every glyph
// is known, and rooms lie inside the grid.
func (doc *Document) Validate() error {
	if doc.Width <= 0 || doc.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrMalformed, doc.Width, doc.Height)
	}
	if len(doc.Rows) != doc.Height {
		return fmt.Errorf("%w: %d rows, want %d", ErrMalformed, len(doc.Rows), doc.Height)
	}
	for i, row := range doc.Rows {
		if len(row) != doc.Width {
			return fmt.Errorf("%w: row %d has %d tiles, want %d", ErrMalformed, i, len(row), doc.Width)
		}
		for j := 0; j < len(row); j++ {
			switch row[j] {
			case GlyphRock, GlyphFloor, GlyphDoorNorthSouth, GlyphDoorEastWest:
			default:
				return fmt.Errorf("%w: unknown glyph %q at %d,%d", ErrMalformed, row[j], i, j)
			}
		}
	}
	for _, r := range doc.Rooms {
		if r.Row < 0 || r.Column < 0 || r.Width <= 0 || r.Height <= 0 ||
			r.Row+r.Height > doc.Height || r.Column+r.Width > doc.Width {
			return fmt.Errorf("%w: room %d out of bounds", ErrMalformed, r.ID)
		}
	}
	return nil
}

// EncodeYAML marshals doc.
func EncodeYAML(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("export: encode: %w", err)
	}
	return data, nil
}

// DecodeYAML unmarshals and validates a document.
func DecodeYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("export: decode: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteYAML writes doc to path, creating parent directories as needed.
func WriteYAML(path string, doc *Document) error {
	data, err := EncodeYAML(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("export: create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

// ReadYAML loads and validates a document written by WriteYAML.
func ReadYAML(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("export: read %s: %w", path, err)
	}
	return DecodeYAML(data)
}
