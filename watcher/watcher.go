// Package watcher reports external edits of the notes document
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Cvaniak/NoteSH/core"
)

// DefaultDebounce coalesces the burst of events an editor or atomic save produces
const DefaultDebounce = 300 * time.Millisecond

// Change is one debounced notification for the watched file
type Change struct {
	Path    string
	Removed bool
	Time    time.Time
}

// Watcher watches the parent directory so rename-based saves keep being seen
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	debounce time.Duration
	events   chan Change
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
	log      zerolog.Logger
}

// New starts watching path, the file itself need not exist yet
func New(path string, debounce time.Duration, logger zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolve watch path")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}

	w := &Watcher{
		fs:       fsw,
		path:     abs,
		debounce: debounce,
		events:   make(chan Change, 1),
		done:     make(chan struct{}),
		log:      logger.With().Str("component", "watcher").Logger(),
	}
	w.wg.Add(1)
	core.Go(w.run)
	return w, nil
}

// Events delivers at most one pending change, newer changes replace older unread ones
func (w *Watcher) Events() <-chan Change {
	return w.events
}

// Path returns the absolute watched file
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher, safe to call twice
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	var pending *Change
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug().Str("op", ev.Op.String()).Msg("document event")
			pending = &Change{
				Path:    w.path,
				Removed: ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename),
				Time:    time.Now(),
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watch error")

		case <-timer.C:
			if pending == nil {
				continue
			}
			w.publish(*pending)
			pending = nil
		}
	}
}

// publish replaces an unread change rather than blocking the loop
func (w *Watcher) publish(c Change) {
	for {
		select {
		case w.events <- c:
			return
		default:
		}
		select {
		case <-w.events:
		default:
		}
	}
}
