package store

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownDriver is returned for a driver other than sqlite or postgres.
var ErrUnknownDriver = errors.New("store: unknown driver")

// Config selects and configures the archive database.
type Config struct {
	// Driver is "sqlite" or "postgres"
	Driver string `yaml:"driver"`

	SQLitePath string `yaml:"sqlite_path"`

	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection and pool settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`

	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DefaultConfig returns an SQLite config at the given path.
func DefaultConfig(sqlitePath string) Config {
	return Config{
		Driver:     string(DialectSQLite),
		SQLitePath: sqlitePath,
		Postgres:   DefaultPostgresConfig(),
	}
}

// DefaultPostgresConfig returns local connection defaults with modest pool limits.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:            "localhost",
		Port:            5432,
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// Validate reports a missing path or an unknown driver.
func (c Config) Validate() error {
	switch DialectType(c.Driver) {
	case DialectSQLite:
		if c.SQLitePath == "" {
			return errors.New("store: sqlite_path is required")
		}
	case DialectPostgres:
		if c.Postgres.Host == "" || c.Postgres.Database == "" {
			return errors.New("store: postgres host and database are required")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
	return nil
}

// DSN returns the lib/pq keyword connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}
