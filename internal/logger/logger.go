// Package logger is a thin process-wide wrapper around log/slog that fans
// records out to the console and an optional rotating file.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelNotice sits above Error so lifecycle messages (startup, shutdown,
// listen address) survive any configured level.
const LevelNotice = slog.Level(12)

var (
	logger *slog.Logger
	closer io.Closer
)

// Initialize replaces the process logger. Calling it again closes the
// previous log file.
func Initialize(config Config) error {
	level := parseLevel(config.Level)
	var handlers []slog.Handler

	if config.console() {
		handlers = append(handlers, newHandler(os.Stdout, config.ConsoleFormat, level))
	}

	var file *lumberjack.Logger
	if config.FileEnabled {
		if config.FilePath == "" {
			return errors.New("logger: file logging enabled without a file path")
		}
		file = &lumberjack.Logger{
			Filename:   config.FilePath,
			MaxSize:    config.FileMaxSizeMB,
			MaxBackups: config.FileMaxBackups,
			MaxAge:     config.FileMaxAgeDays,
			Compress:   config.FileCompress,
		}
		handlers = append(handlers, newHandler(file, config.FileFormat, level))
	}

	if len(handlers) == 0 {
		handlers = append(handlers, newHandler(os.Stdout, "text", level))
	}

	_ = Close()
	if file != nil {
		closer = file
	}
	if len(handlers) == 1 {
		logger = slog.New(handlers[0])
	} else {
		logger = slog.New(newMultiHandler(handlers...))
	}
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: renameNotice}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func renameNotice(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelNotice {
			a.Value = slog.StringValue("NOTICE")
		}
	}
	return a
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a child logger carrying the given attributes. It falls back
// to a discarding logger before Initialize.
func With(args ...any) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger.With(args...)
}

func log(level slog.Level, msg string, args ...any) {
	if logger != nil {
		logger.Log(context.Background(), level, msg, args...)
	}
}

func Debug(msg string, args ...any)   { log(slog.LevelDebug, msg, args...) }
func Info(msg string, args ...any)    { log(slog.LevelInfo, msg, args...) }
func Warning(msg string, args ...any) { log(slog.LevelWarn, msg, args...) }
func Error(msg string, args ...any)   { log(slog.LevelError, msg, args...) }

// Notice logs regardless of the configured level.
func Notice(msg string, args ...any) { log(LevelNotice, msg, args...) }

func Debugf(format string, args ...any)   { Debug(fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)    { Info(fmt.Sprintf(format, args...)) }
func Warningf(format string, args ...any) { Warning(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any)   { Error(fmt.Sprintf(format, args...)) }
func Noticef(format string, args ...any)  { Notice(fmt.Sprintf(format, args...)) }

// multiHandler fans records out to every handler enabled for their level.
type multiHandler struct {
	handlers []slog.Handler
}

func newMultiHandler(handlers ...slog.Handler) *multiHandler {
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return newMultiHandler(next...)
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return newMultiHandler(next...)
}
