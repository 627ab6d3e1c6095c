package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"repo-sweep/internal/config"
)

const (
	logDir  = "/var/log/repo-sweep"
	logFile = "sweep.log"
)

// New returns a logger writing to stdout and the sweep log file, rotating
// with the default retention.
func New() *log.Logger {
	return NewWithConfig(nil)
}

// NewWithConfig applies the configured retention before opening the log.
// Failures fall back to stdout-only logging rather than erroring out; a
// sweep must not be blocked by an unwritable log directory.
func NewWithConfig(cfg *config.Config) *log.Logger {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Printf("failed to ensure log directory %s: %v", logDir, err)
	}

	path := filepath.Join(logDir, logFile)

	retention := 30
	if cfg != nil && cfg.Logging.RotationDays > 0 {
		retention = cfg.Logging.RotationDays
	}
	rotate(path, retention)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("failed to open log file %s: %v", path, err)
		return log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)
	}
	return log.New(io.MultiWriter(os.Stdout, f), "", log.LstdFlags|log.Lmicroseconds)
}

// rotate renames the active log aside once it ages past retention, then
// prunes rotated files older than the same window.
func rotate(path string, retentionDays int) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	if !info.ModTime().Before(cutoff) {
		return
	}

	rotated := path + "." + info.ModTime().Format("20060102-150405")
	if err := os.Rename(path, rotated); err != nil {
		log.Printf("failed to rotate log file: %v", err)
		return
	}
	prune(path, cutoff)
}

// prune deletes rotated logs (sweep.log.<timestamp>) modified before cutoff.
func prune(path string, cutoff time.Time) {
	dir := filepath.Dir(path)
	prefix := filepath.Base(path) + "."

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			stale := filepath.Join(dir, entry.Name())
			if err := os.Remove(stale); err != nil {
				log.Printf("failed to remove old log file %s: %v", stale, err)
			}
		}
	}
}
