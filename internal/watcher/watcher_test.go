package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	th "github.com/desertthunder/ytspin/internal/testing"
)

func newTestWatcher(t *testing.T, content string) (*Watcher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "titles.txt")
	th.MustWriteFile(t, path, content)

	w, err := New(path, Config{Debounce: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return w, path
}

func TestWatcher(t *testing.T) {
	t.Run("reports a write once after debounce", func(t *testing.T) {
		w, path := newTestWatcher(t, "a")
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes := make(chan string, 10)
		done := make(chan error, 1)
		go func() { done <- w.Run(ctx, func(p string) { changes <- p }) }()

		for _, content := range []string{"b", "c", "d"} {
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("write failed: %v", err)
			}
		}

		select {
		case got := <-changes:
			if got != w.Path() {
				t.Errorf("expected %s, got %s", w.Path(), got)
			}
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for change")
		}

		select {
		case <-changes:
			t.Error("expected writes in one burst to be reported once")
		case <-time.After(300 * time.Millisecond):
		}

		cancel()
		if err := <-done; err != nil {
			t.Errorf("expected nil error on cancel, got %v", err)
		}
	})

	t.Run("ignores other files", func(t *testing.T) {
		w, path := newTestWatcher(t, "a")
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes := make(chan string, 10)
		go w.Run(ctx, func(p string) { changes <- p })

		th.MustWriteFile(t, filepath.Join(filepath.Dir(path), "other.txt"), "x")

		select {
		case got := <-changes:
			t.Errorf("unexpected change for %s", got)
		case <-time.After(300 * time.Millisecond):
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		if _, err := New(filepath.Join(t.TempDir(), "nope", "titles.txt"), Config{}, nil); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

func TestRelevant(t *testing.T) {
	w := &Watcher{path: "/tmp/t/titles.txt", config: Config{IgnorePatterns: DefaultIgnorePatterns}}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: "/tmp/t/titles.txt", Op: fsnotify.Write}, true},
		{"create by rename-save", fsnotify.Event{Name: "/tmp/t/titles.txt", Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: "/tmp/t/titles.txt", Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: "/tmp/t/titles.txt", Op: fsnotify.Remove}, false},
		{"other file", fsnotify.Event{Name: "/tmp/t/other.txt", Op: fsnotify.Write}, false},
		{"swap file", fsnotify.Event{Name: "/tmp/t/.titles.txt.swp", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.event); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestShouldIgnore(t *testing.T) {
	w := &Watcher{config: Config{IgnorePatterns: DefaultIgnorePatterns}}

	for path, want := range map[string]bool{
		"/home/u/titles.txt":      false,
		"/home/u/.titles.txt.swp": true,
		"/home/u/titles.txt~":     true,
		"/home/u/.#titles.txt":    true,
		"/home/u/4913":            true,
	} {
		if got := w.shouldIgnore(path); got != want {
			t.Errorf("shouldIgnore(%q) = %v, want %v", path, got, want)
		}
	}
}
