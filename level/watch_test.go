package level

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsLevelFile(t *testing.T) {
	cases := map[string]bool{
		"arena.yaml":     true,
		"arena.YML":      true,
		"map.tmx":        true,
		"notes.txt":      false,
		"arena.yaml.swp": false,
	}
	for path, want := range cases {
		if got := isLevelFile(path); got != want {
			t.Errorf("isLevelFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "arena.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  - [1]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("event for %q, want %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", path)
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got, ok := <-w.Events:
		if ok {
			t.Errorf("unexpected event %q for a non-level file", got)
		}
	case <-time.After(300 * time.Millisecond):
	}
}
