package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/renard/cue-splitter/internal/discover"
)

// settleDelay is how long a file must stay quiet before it is reported.
// Rips and network copies write cue sheets in bursts.
const settleDelay = 2 * time.Second

// Watcher watches a directory tree and reports settled cue files.
type Watcher struct {
	root    string
	onCue   func(path string)
	watcher *fsnotify.Watcher

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a Watcher rooted at root. Every existing subdirectory is
// watched; directories created later are added as they appear.
func New(root string, onCue func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:    root,
		onCue:   onCue,
		watcher: fsw,
		timers:  make(map[string]*time.Timer),
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Run processes filesystem events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		// New directories must be added to the watch list or cue
		// files landing inside them go unseen.
		if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
			w.watcher.Add(event.Name)
			return
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if !discover.IsCueFile(event.Name) {
		return
	}

	w.debounce(event.Name)
}

// debounce delays the callback until path has been quiet for
// settleDelay. Further events on the same path reset the timer.
func (w *Watcher) debounce(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Reset(settleDelay)
		return
	}

	w.timers[path] = time.AfterFunc(settleDelay, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		w.onCue(path)
	})
}
