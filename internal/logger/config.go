package logger

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration.
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled *bool  `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
	FileCompress   bool   `yaml:"file_compress"`
}

type fileConfig struct {
	Logging Config `yaml:"logging"`
}

// DefaultConfig returns console-only text logging at INFO.
func DefaultConfig() Config {
	enabled := true
	return Config{
		Level:          "INFO",
		ConsoleEnabled: &enabled,
		ConsoleFormat:  "text",
		FilePath:       "logs/dungeongen.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// console reports whether console output is on; unset means on.
func (c Config) console() bool {
	return c.ConsoleEnabled == nil || *c.ConsoleEnabled
}

// LoadConfig reads the logging section of a YAML file over the defaults
// and then applies LOG_* environment overrides. A missing file is not an
// error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var parsed fileConfig
			if err := yaml.Unmarshal(data, &parsed); err != nil {
				return config, fmt.Errorf("logger: parse %s: %w", path, err)
			}
			config.merge(parsed.Logging)
		case !os.IsNotExist(err):
			return config, fmt.Errorf("logger: read %s: %w", path, err)
		}
	}

	config.applyEnv()
	return config, nil
}

func (c *Config) merge(o Config) {
	if o.Level != "" {
		c.Level = o.Level
	}
	if o.ConsoleEnabled != nil {
		c.ConsoleEnabled = o.ConsoleEnabled
	}
	if o.ConsoleFormat != "" {
		c.ConsoleFormat = o.ConsoleFormat
	}
	c.FileEnabled = o.FileEnabled
	c.FileCompress = o.FileCompress
	if o.FilePath != "" {
		c.FilePath = o.FilePath
	}
	if o.FileFormat != "" {
		c.FileFormat = o.FileFormat
	}
	if o.FileMaxSizeMB > 0 {
		c.FileMaxSizeMB = o.FileMaxSizeMB
	}
	if o.FileMaxBackups > 0 {
		c.FileMaxBackups = o.FileMaxBackups
	}
	if o.FileMaxAgeDays > 0 {
		c.FileMaxAgeDays = o.FileMaxAgeDays
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Level = v
	}
	if v := os.Getenv("LOG_CONSOLE_FORMAT"); v != "" {
		c.ConsoleFormat = v
	}
	if v := os.Getenv("LOG_FILE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.FileEnabled = enabled
		}
	}
	if v := os.Getenv("LOG_FILE_PATH"); v != "" {
		c.FilePath = v
	}
}
