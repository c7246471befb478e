// Package cache remembers the last wallpaper applied per output so a
// restarted daemon can restore the desktop before any command arrives.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Entry is the persisted record for one output.
type Entry struct {
	Output    string `json:"output"`
	Wallpaper string `json:"wallpaper"`
}

// Store reads and writes per-output entries under a cache directory,
// one JSON file per output.
type Store struct {
	dir string
}

// Open returns a store rooted at dir, creating it if needed. The usual
// root is ~/.cache/driftpaper.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// DefaultDir resolves the cache root from XDG_CACHE_HOME or HOME.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "driftpaper")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "driftpaper-cache")
	}
	return filepath.Join(home, ".cache", "driftpaper")
}

func (s *Store) path(output string) string {
	return filepath.Join(s.dir, output+".json")
}

// Record persists the wallpaper for one output. Failures are logged, not
// returned: a broken cache must never fail a wallpaper command.
func (s *Store) Record(output, wallpaper string) {
	data, err := json.Marshal(Entry{Output: output, Wallpaper: wallpaper})
	if err != nil {
		log.Warn("cannot encode cache entry", "output", output, "error", err)
		return
	}
	tmp := s.path(output) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		log.Warn("cannot write cache entry", "output", output, "error", err)
		return
	}
	if err := os.Rename(tmp, s.path(output)); err != nil {
		log.Warn("cannot commit cache entry", "output", output, "error", err)
	}
}

// Lookup returns the remembered wallpaper for an output, or "" when none
// is recorded.
func (s *Store) Lookup(output string) string {
	data, err := os.ReadFile(s.path(output))
	if err != nil {
		return ""
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		log.Warn("discarding corrupt cache entry", "output", output, "error", err)
		return ""
	}
	return e.Wallpaper
}
