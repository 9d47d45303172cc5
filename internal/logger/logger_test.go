package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useBuffer(t *testing.T, level slog.Level, format string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := logger
	logger = slog.New(newHandler(&buf, format, level))
	t.Cleanup(func() { logger = previous })
	return &buf
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logging.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Level != "INFO" {
		t.Errorf("Level = %q, want INFO", config.Level)
	}
	if !config.console() {
		t.Error("console output disabled by default")
	}
	if config.FileEnabled {
		t.Error("file output enabled by default")
	}
	if config.FilePath != "logs/dungeongen.log" {
		t.Errorf("FilePath = %q, want logs/dungeongen.log", config.FilePath)
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := writeYAML(t, `logging:
  level: DEBUG
  console_format: json
  file_enabled: true
  file_path: gen.log
  file_max_size_mb: 20
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Level != "DEBUG" {
		t.Errorf("Level = %q, want DEBUG", config.Level)
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want json", config.ConsoleFormat)
	}
	if !config.console() {
		t.Error("omitted console_enabled should keep console on")
	}
	if !config.FileEnabled || config.FilePath != "gen.log" {
		t.Errorf("file = %v %q, want true gen.log", config.FileEnabled, config.FilePath)
	}
	if config.FileMaxSizeMB != 20 {
		t.Errorf("FileMaxSizeMB = %d, want 20", config.FileMaxSizeMB)
	}
	if config.FileMaxBackups != 5 {
		t.Errorf("FileMaxBackups = %d, want default 5", config.FileMaxBackups)
	}
}

func TestLoadConfigConsoleDisabled(t *testing.T) {
	path := writeYAML(t, "logging:\n  console_enabled: false\n")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.console() {
		t.Error("console_enabled: false was ignored")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeYAML(t, "logging: [unterminated\n")

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_CONSOLE_FORMAT", "json")
	t.Setenv("LOG_FILE_ENABLED", "true")
	t.Setenv("LOG_FILE_PATH", "/var/log/dungeond.log")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR", config.Level)
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want json", config.ConsoleFormat)
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true")
	}
	if config.FilePath != "/var/log/dungeond.log" {
		t.Errorf("FilePath = %q", config.FilePath)
	}
}

func TestEnvFileEnabledIgnoresGarbage(t *testing.T) {
	t.Setenv("LOG_FILE_ENABLED", "sometimes")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.FileEnabled {
		t.Error("unparseable LOG_FILE_ENABLED should leave the default")
	}
}

func TestTextOutputRespectsLevel(t *testing.T) {
	buf := useBuffer(t, slog.LevelInfo, "text")

	Info("dungeon generated", "seed", 42)
	Debug("carving maze")

	out := buf.String()
	if !strings.Contains(out, "dungeon generated") || !strings.Contains(out, "seed=42") {
		t.Errorf("missing info record: %s", out)
	}
	if strings.Contains(out, "carving maze") {
		t.Errorf("debug record logged at INFO: %s", out)
	}
}

func TestJSONOutput(t *testing.T) {
	buf := useBuffer(t, slog.LevelInfo, "JSON")

	Info("saved", "id", 7, "fingerprint", "ab12")

	out := buf.String()
	for _, want := range []string{`"msg":"saved"`, `"id":7`, `"fingerprint":"ab12"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestNoticeBypassesLevel(t *testing.T) {
	buf := useBuffer(t, slog.LevelError, "text")

	Info("hidden")
	Warning("also hidden")
	Error("shown")
	Notice("listening", "addr", ":8080")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("records below ERROR leaked: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("error record missing: %s", out)
	}
	if !strings.Contains(out, "level=NOTICE") || !strings.Contains(out, "listening") {
		t.Errorf("notice record missing or mislabelled: %s", out)
	}
}

func TestFormattedVariants(t *testing.T) {
	buf := useBuffer(t, slog.LevelDebug, "text")

	Debugf("rooms %d/%d", 3, 5)
	Infof("seed %s", "x")
	Warningf("%.1f%%", 12.5)
	Errorf("failed: %v", "boom")
	Noticef("stopping after %ds", 2)

	out := buf.String()
	for _, want := range []string{"rooms 3/5", "seed x", "12.5%", "failed: boom", "stopping after 2s"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestMultiHandler(t *testing.T) {
	var quiet, verbose bytes.Buffer
	previous := logger
	t.Cleanup(func() { logger = previous })

	logger = slog.New(newMultiHandler(
		newHandler(&quiet, "text", slog.LevelWarn),
		newHandler(&verbose, "text", slog.LevelDebug),
	))

	With("component", "store").Debug("opened")
	Warning("slow query")

	if strings.Contains(quiet.String(), "opened") {
		t.Error("debug record reached the WARN handler")
	}
	if !strings.Contains(quiet.String(), "slow query") {
		t.Error("WARN handler missed the warning")
	}
	if !strings.Contains(verbose.String(), "component=store") {
		t.Errorf("attributes not propagated: %s", verbose.String())
	}
}

func TestInitializeWritesFile(t *testing.T) {
	previous := logger
	t.Cleanup(func() {
		_ = Close()
		logger = previous
	})

	off := false
	config := DefaultConfig()
	config.ConsoleEnabled = &off
	config.FileEnabled = true
	config.FilePath = filepath.Join(t.TempDir(), "out.log")

	if err := Initialize(config); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	Info("to disk")
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(config.FilePath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "to disk") {
		t.Errorf("log file missing record: %s", data)
	}
}

func TestInitializeRejectsEmptyFilePath(t *testing.T) {
	config := DefaultConfig()
	config.FileEnabled = true
	config.FilePath = ""

	if err := Initialize(config); err == nil {
		t.Error("expected an error for file logging without a path")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	previous := logger
	logger = nil
	t.Cleanup(func() { logger = previous })

	Debug("d")
	Info("i")
	Warning("w")
	Error("e")
	Notice("n")
	With("k", "v").Info("discarded")
}
