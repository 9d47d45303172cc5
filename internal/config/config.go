// Package config loads the service configuration shared by the generator
// CLI and the generation daemon.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lawnchairsociety/dungeongen/internal/dungeon"
	"github.com/lawnchairsociety/dungeongen/internal/store"
	"gopkg.in/yaml.v3"
)

// ErrLimitExceeded is returned when a requested configuration is larger than
// the service accepts.
var ErrLimitExceeded = errors.New("config: request exceeds service limits")

// ServiceConfig holds every tunable of the generator and its service.
type ServiceConfig struct {
	// Generation is used when a request carries no configuration of its own.
	Generation  dungeon.Configuration `yaml:"generation"`
	Limits      LimitsConfig          `yaml:"limits"`
	WebSocket   WebSocketConfig       `yaml:"websocket"`
	Connections ConnectionsConfig     `yaml:"connections"`
	Storage     StorageConfig         `yaml:"storage"`
}

// LimitsConfig bounds what remote clients may ask for.
type LimitsConfig struct {
	MaxWidth     int `yaml:"max_width"`
	MaxHeight    int `yaml:"max_height"`
	MaxRoomCount int `yaml:"max_room_count"`

	// MaxRoomWidth and MaxRoomHeight bound the room size ranges. Every size in
	// the range is a placement candidate, so the ranges cost memory even when
	// the grid is small.
	MaxRoomWidth  int `yaml:"max_room_width"`
	MaxRoomHeight int `yaml:"max_room_height"`
}

// ConnectionsConfig holds connection limit settings.
type ConnectionsConfig struct {
	// MaxPerIP is the maximum concurrent connections from one address. 0 means unlimited.
	MaxPerIP int `yaml:"max_per_ip"`

	// MaxTotal is the maximum concurrent connections overall. 0 means unlimited.
	MaxTotal int `yaml:"max_total"`
}

// WebSocketConfig holds WebSocket-specific settings.
type WebSocketConfig struct {
	// AllowedOrigins lists origins that may connect. Empty enforces
	// same-origin; "*" allows everything.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the largest inbound message in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// StorageConfig enables the dungeon archive.
type StorageConfig struct {
	Enabled      bool `yaml:"enabled"`
	store.Config `yaml:",inline"`
}

// DefaultConfig returns a ServiceConfig with conservative defaults.
func DefaultConfig() *ServiceConfig {
	return &ServiceConfig{
		Generation: dungeon.DefaultConfiguration(),
		Limits: LimitsConfig{
			MaxWidth:      100,
			MaxHeight:     100,
			MaxRoomCount:  60,
			MaxRoomWidth:  40,
			MaxRoomHeight: 40,
		},
		WebSocket: WebSocketConfig{
			AllowedOrigins: []string{},
			MaxMessageSize: 4096,
		},
		Connections: ConnectionsConfig{
			MaxPerIP: 4,
			MaxTotal: 64,
		},
		Storage: StorageConfig{
			Config: store.DefaultConfig("data/dungeons.db"),
		},
	}
}

// LoadConfig reads a YAML file over the defaults. A missing file yields the
// defaults; an unreadable or malformed one is an error.
func LoadConfig(path string) (*ServiceConfig, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return config, nil
}

// Validate checks the default generation settings, the limits, and the
// storage section when enabled.
func (c *ServiceConfig) Validate() error {
	if err := c.Generation.Validate(); err != nil {
		return fmt.Errorf("config: generation: %w", err)
	}
	if c.Limits.MaxWidth <= 0 || c.Limits.MaxHeight <= 0 || c.Limits.MaxRoomCount < 0 ||
		c.Limits.MaxRoomWidth <= 0 || c.Limits.MaxRoomHeight <= 0 {
		return fmt.Errorf("config: limits must be positive, got %+v", c.Limits)
	}
	if err := c.Limits.Check(c.Generation); err != nil {
		return fmt.Errorf("config: generation: %w", err)
	}
	if c.Storage.Enabled {
		if err := c.Storage.Validate(); err != nil {
			return fmt.Errorf("config: storage: %w", err)
		}
	}
	return nil
}

// Check rejects configurations larger than the limits. Room sizes are only
// checked when rooms are requested.
func (l LimitsConfig) Check(cfg dungeon.Configuration) error {
	switch {
	case cfg.Width > l.MaxWidth || cfg.Height > l.MaxHeight:
		return fmt.Errorf("%w: %dx%d larger than %dx%d", ErrLimitExceeded,
			cfg.Width, cfg.Height, l.MaxWidth, l.MaxHeight)
	case cfg.RoomCount > l.MaxRoomCount:
		return fmt.Errorf("%w: %d rooms, at most %d", ErrLimitExceeded, cfg.RoomCount, l.MaxRoomCount)
	case cfg.RoomCount > 0 && (cfg.MaxRoomWidth > l.MaxRoomWidth || cfg.MaxRoomHeight > l.MaxRoomHeight):
		return fmt.Errorf("%w: rooms up to %dx%d, at most %dx%d", ErrLimitExceeded,
			cfg.MaxRoomWidth, cfg.MaxRoomHeight, l.MaxRoomWidth, l.MaxRoomHeight)
	}
	return nil
}

// IsOriginAllowed reports whether a browser origin may open a socket.
func (c *WebSocketConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// isSameOrigin treats a missing Origin header as same-origin; non-browser
// clients do not send one.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true
	}
	host := origin
	if _, rest, ok := strings.Cut(origin, "://"); ok {
		host = rest
	}
	return strings.TrimSuffix(host, "/") == requestHost
}
