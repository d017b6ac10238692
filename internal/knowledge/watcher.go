package knowledge

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay is how long the watcher waits after the last filesystem
// event before reloading. Editors typically emit several events per
// save.
const debounceDelay = 500 * time.Millisecond

// Watcher is a Provider over an on-disk corpus directory that reloads
// when rule documents change. It is a development convenience: each
// reload builds a complete new Base and swaps it in atomically, so
// readers always see a fully consistent corpus. A reload that fails
// keeps the previous Base.
type Watcher struct {
	dir     string
	opts    []Option
	logger  *slog.Logger
	current atomic.Pointer[Base]
	fsw     *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher loads the corpus at dir and starts watching it. The opts
// are applied on the initial load and every reload.
func NewWatcher(dir string, logger *slog.Logger, opts ...Option) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	base, err := Load(os.DirFS(dir), opts...)
	if err != nil {
		return nil, fmt.Errorf("initial corpus load: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		dir:    dir,
		opts:   opts,
		logger: logger,
		fsw:    fsw,
		done:   make(chan struct{}),
	}
	w.current.Store(base)

	// Watch the corpus root and every subdirectory holding documents.
	if err := w.addWatches(); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	go w.loop()
	return w, nil
}

// Base returns the most recently loaded Base.
func (w *Watcher) Base() *Base {
	return w.current.Load()
}

// Close stops watching. The last loaded Base remains available.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) addWatches() error {
	return filepath.WalkDir(w.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				fire = timer.C
			} else {
				timer.Reset(debounceDelay)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("corpus watch error", "error", err)

		case <-fire:
			timer, fire = nil, nil
			w.reload()
		}
	}
}

// relevant filters the event stream down to markdown document changes.
func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasSuffix(event.Name, ".md")
}

func (w *Watcher) reload() {
	base, err := Load(os.DirFS(w.dir), w.opts...)
	if err != nil {
		w.logger.Warn("corpus reload failed, keeping previous corpus", "error", err)
		return
	}
	w.current.Store(base)
	w.logger.Info("corpus reloaded", "rules", base.RuleCount())
}
