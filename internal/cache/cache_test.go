package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecordLookupRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	s.Record("eDP-1", "/walls/sunset.png")
	s.Record("HDMI-1", "#202030")

	if got := s.Lookup("eDP-1"); got != "/walls/sunset.png" {
		t.Errorf("Lookup(eDP-1) = %q", got)
	}
	if got := s.Lookup("HDMI-1"); got != "#202030" {
		t.Errorf("Lookup(HDMI-1) = %q", got)
	}
}

func TestRecordOverwrites(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	s.Record("eDP-1", "first.png")
	s.Record("eDP-1", "second.png")

	if got := s.Lookup("eDP-1"); got != "second.png" {
		t.Errorf("Lookup = %q, want second.png", got)
	}
}

func TestLookupMissingIsEmpty(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Lookup("nope"); got != "" {
		t.Errorf("Lookup = %q, want empty", got)
	}
}

func TestLookupCorruptEntryIsEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "eDP-1.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := s.Lookup("eDP-1"); got != "" {
		t.Errorf("Lookup = %q, want empty for corrupt entry", got)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	if _, err := Open(dir); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir missing: %v", err)
	}
}
