package server

import (
	"github.com/lawnchairsociety/dungeongen/internal/dungeon"
	"github.com/lawnchairsociety/dungeongen/internal/export"
)

// Request asks for one dungeon. Config falls back to the service default.
type Request struct {
	Seed   int64                  `json:"seed"`
	Config *dungeon.Configuration `json:"config,omitempty"`
}

// Response carries either a dungeon or an error. ID is set when the
// dungeon was archived.
type Response struct {
	ID      int64            `json:"id,omitempty"`
	Dungeon *export.Document `json:"dungeon,omitempty"`
	Error   string           `json:"error,omitempty"`
}
