package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the log file.
const (
	maxLogSizeMB   = 5
	maxLogBackups  = 3
	maxLogAgeDays  = 30
	compressBackup = true
)

// Options configures the application logger.
type Options struct {
	// Verbose enables debug level output.
	Verbose bool

	// File mirrors log output into a rotating file when non-empty.
	File string
}

// Setup builds the application logger writing to w and, when opts.File is
// set, to a size-rotated log file as well. The returned close function
// releases the file and must be called on exit.
func Setup(w io.Writer, opts Options) (*slog.Logger, func() error, error) {
	if opts.File == "" {
		return NewSecureLogger(w, opts.Verbose), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   compressBackup,
	}

	logger := NewSecureLogger(io.MultiWriter(w, rotator), opts.Verbose)
	return logger, rotator.Close, nil
}
