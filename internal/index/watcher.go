package index

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const debounceDelay = 200 * time.Millisecond

// Watcher monitors article directories and re-indexes changed files.
// Directories are watched as given; subdirectories must be listed
// explicitly.
type Watcher struct {
	indexer  *Indexer
	watcher  *fsnotify.Watcher
	log      zerolog.Logger
	debounce map[string]*time.Timer
	mu       sync.Mutex
	closed   bool
	onChange func(path string) // called after each re-index
}

// NewWatcher watches dirs, re-indexing through indexer.
func NewWatcher(indexer *Indexer, dirs []string, log zerolog.Logger, onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
		log.Info().Str("dir", dir).Msg("watching articles")
	}

	return &Watcher{
		indexer:  indexer,
		watcher:  fw,
		log:      log,
		debounce: make(map[string]*time.Timer),
		onChange: onChange,
	}, nil
}

// Start processes file events until ctx is done or the watcher is stopped.
func (w *Watcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return w.Stop()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if !strings.HasSuffix(path, ".md") {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		delete(w.debounce, path)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}

		var err error
		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			err = w.indexer.RemoveFile(path)
		} else {
			err = w.indexer.IndexFile(path)
		}
		if err != nil {
			w.log.Error().Err(err).Str("path", path).Msg("re-index failed")
			return
		}
		w.log.Debug().Str("path", path).Str("op", event.Op.String()).Msg("article re-indexed")

		if w.onChange != nil {
			w.onChange(path)
		}
	})
}

// Stop stops the watcher and cancels pending re-index timers.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, timer := range w.debounce {
		timer.Stop()
		delete(w.debounce, path)
	}
	w.mu.Unlock()

	return w.watcher.Close()
}
