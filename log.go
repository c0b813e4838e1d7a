package parley

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logging goes to a file because stdout belongs to the terminal being
// drawn on. Disabled until SetLogFile is called.

var (
	logMu      sync.Mutex
	logHandle  *os.File
	logCurrent = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// SetLogFile redirects internal logging to the given path. An empty
// path disables logging again.
func SetLogFile(path string) error {
	logMu.Lock()
	defer logMu.Unlock()
	if logHandle != nil {
		logHandle.Close()
		logHandle = nil
	}
	if path == "" {
		logCurrent = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	logHandle = f
	logCurrent = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return nil
}

func logger() *slog.Logger {
	logMu.Lock()
	defer logMu.Unlock()
	return logCurrent
}
