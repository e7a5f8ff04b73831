// Package watch rebuilds a project when its inputs change.
//
// Events under src/, resources/ and on jpack.toml are collected until the
// tree has been quiet for the debounce period, then OnChange runs once with
// the changed paths. OnChange runs on the event loop, so two callbacks never
// overlap; events arriving during a callback start the next batch.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Norgate-AV/jpack/internal/layout"
)

// DefaultDebounce is the quiet period before a batch of changes is handled
const DefaultDebounce = 300 * time.Millisecond

// DefaultPatterns select the project inputs, relative to the project root
var DefaultPatterns = []string{
	layout.SourceDir + "/**",
	layout.ResourceDir + "/**",
	layout.ManifestFile,
}

// DefaultIgnores are never watched
var DefaultIgnores = []string{
	layout.OutputDir,
	layout.OutputDir + "/**",
	"**/.git/**",
	"**/*.swp",
	"**/*.swx",
	"**/*~",
	"**/.#*",
	"**/4913",
	"**/.DS_Store",
}

// Config holds the parameters for a Watcher
type Config struct {
	// Root is the project directory
	Root string

	// Debounce defaults to DefaultDebounce when zero
	Debounce time.Duration

	// OnChange receives the changed paths relative to Root, slash separated and sorted
	OnChange func(ctx context.Context, changed []string) error

	Logger *log.Logger
}

// Watcher monitors a project and invokes OnChange after each quiet period
type Watcher struct {
	cfg      Config
	root     string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger
}

// New resolves the root and registers every watched directory below it
func New(cfg Config) (*Watcher, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		root:     root,
		fsw:      fsw,
		debounce: debounce,
		logger:   logger,
	}

	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Run blocks until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	pending := map[string]struct{}{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("file watcher closed unexpectedly")
			}

			rel, watched := w.classify(evt.Name)
			if !watched {
				continue
			}

			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			w.logger.Debug("file changed", "path", rel, "op", evt.Op.String())

			pending[rel] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("file watcher closed unexpectedly")
			}

			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("file events were dropped, rebuilding")
				pending[layout.SourceDir] = struct{}{}
				timer.Reset(w.debounce)
				continue
			}

			w.logger.Warn("file watcher error", "err", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}

			changed := maps.Keys(pending)
			slices.Sort(changed)
			clear(pending)

			if w.cfg.OnChange == nil {
				continue
			}

			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Debug("rebuild failed", "err", err)
			}
		}
	}
}

// classify returns the slash-separated relative path and whether it is a
// watched project input
func (w *Watcher) classify(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return "", false
	}

	rel = filepath.ToSlash(rel)
	return rel, !IsIgnored(rel) && IsWatched(rel)
}

// addTree registers root and every non-ignored directory below it
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("skipping inaccessible path", "path", path, "err", err)
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil {
			return nil
		}

		rel = filepath.ToSlash(rel)
		if rel != "." && (IsIgnored(rel) || !IsWatched(rel)) {
			return filepath.SkipDir
		}

		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("failed to watch %s: %w", path, addErr)
		}

		return nil
	})
}

func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	if err := w.addTree(path); err != nil {
		w.logger.Warn("failed to watch new directory", "path", path, "err", err)
	}
}

// IsWatched reports whether a slash-separated relative path is a project input
func IsWatched(rel string) bool {
	return matchAny(DefaultPatterns, rel) || rel == layout.SourceDir || rel == layout.ResourceDir
}

// IsIgnored reports whether a slash-separated relative path is never watched
func IsIgnored(rel string) bool {
	return matchAny(DefaultIgnores, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}

	return false
}
