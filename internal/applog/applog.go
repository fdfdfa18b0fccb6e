// Package applog installs the process-wide slog logger shared by both
// binaries: JSON lines to an optional console writer and to a log file under
// the user cache directory.
package applog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-bongabdo/internal/config"
)

// Options selects where logs go.
type Options struct {
	// FileName is created, truncated, under Dir.
	FileName string
	// Dir defaults to <UserCacheDir>/<AppID>.
	Dir string
	// Console also receives every line when set. The terminal calendar
	// leaves it nil because the screen belongs to Bubble Tea.
	Console io.Writer
	Debug   bool
}

// Setup sets the default logger and returns the log file to close on exit.
// It returns nil when no file could be opened; logging then falls back to
// the console alone.
func Setup(opts Options) io.Closer {
	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, opts.Console)
	}

	var logFile *os.File
	path, err := FilePath(opts.Dir, opts.FileName)
	if err == nil {
		logFile, err = os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, path, err)
	} else {
		writers = append(writers, logFile)
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.Debug,
	})
	slog.SetDefault(slog.New(handler))

	if logFile == nil {
		return nil
	}
	return logFile
}

// FilePath joins name onto dir, creating dir with owner-only permissions.
// An empty dir resolves to <UserCacheDir>/<AppID>.
func FilePath(dir, name string) (string, error) {
	if dir == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
		}
		dir = filepath.Join(cacheDir, config.AppID)
	}

	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return filepath.Join(dir, name), nil
}
