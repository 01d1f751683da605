// ABOUTME: Structured logging configuration using log/slog
// ABOUTME: Writes to debug.log in the config dir so the terminal UI stays clean

package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileName is the log file created inside the config directory
const FileName = "debug.log"

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init configures the default slog logger.
// level: debug, info, warn, error (default: info)
// format: text, json (default: text)
// If configDir is empty, log output is discarded.
func Init(configDir, level, format string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	var w io.Writer = io.Discard
	if configDir != "" {
		if err := os.MkdirAll(configDir, 0700); err != nil {
			slog.SetDefault(slog.New(newHandler(io.Discard, level, format)))
			return err
		}
		f, err := os.OpenFile(filepath.Join(configDir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			slog.SetDefault(slog.New(newHandler(io.Discard, level, format)))
			return err
		}
		logFile = f
		w = f
	}

	slog.SetDefault(slog.New(newHandler(w, level, format)))
	return nil
}

// Close closes the log file and discards further output
func Close() {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func closeLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func newHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	if strings.ToLower(format) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
