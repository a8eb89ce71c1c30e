// package watcher re-runs an action whenever a template file is saved.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the file must stay quiet before a change is reported.
const DefaultDebounce = 150 * time.Millisecond

// DefaultIgnorePatterns matches editor swap and backup files.
var DefaultIgnorePatterns = []string{"**/*.swp", "**/*.swx", "**/*~", "**/.#*", "**/4913"}

// Config controls debouncing and which paths are ignored.
type Config struct {
	Debounce       time.Duration
	IgnorePatterns []string // doublestar patterns matched against slash-separated paths
}

// Watcher watches a single file through its parent directory, so editors that save by rename are still seen.
type Watcher struct {
	path   string
	config Config
	fsw    *fsnotify.Watcher
	logger *log.Logger
}

// New starts watching the directory containing path.
func New(path string, config Config, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if config.IgnorePatterns == nil {
		config.IgnorePatterns = DefaultIgnorePatterns
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:   abs,
		config: config,
		fsw:    fsw,
		logger: logger,
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Run calls onChange after each burst of writes to the file settles, until ctx is done.
// The underlying watcher is closed on return.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	defer w.fsw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.debug("file event", "path", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.config.Debounce)
			} else {
				timer.Reset(w.config.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange(w.path)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Warn("watch error", "error", err)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	if w.shouldIgnore(event.Name) {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}

func (w *Watcher) shouldIgnore(path string) bool {
	slashed, base := filepath.ToSlash(path), filepath.Base(path)
	for _, pattern := range w.config.IgnorePatterns {
		if match, _ := doublestar.Match(pattern, slashed); match {
			return true
		}
		if match, _ := doublestar.Match(pattern, base); match {
			return true
		}
	}
	return false
}

func (w *Watcher) debug(msg string, kv ...any) {
	if w.logger != nil {
		w.logger.Debug(msg, kv...)
	}
}
