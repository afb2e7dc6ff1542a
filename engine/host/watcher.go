package host

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/fsnotify/fsnotify"
)

// DefaultDeleteGrace is how long a removed file may take to reappear before it counts as deleted.
// Editors that save by rename briefly remove the original.
const DefaultDeleteGrace = 150 * time.Millisecond

// FileEvent is a change to a watched file.
type FileEvent int

const (
	// FileChanged means the file was written or replaced.
	FileChanged FileEvent = iota
	// FileDeleted means the file is gone.
	FileDeleted
)

func (e FileEvent) String() string {
	if e == FileDeleted {
		return "deleted"
	}
	return "changed"
}

// Watcher reports changes to a single file. It watches the parent directory so that a file
// replaced by rename keeps being followed.
type Watcher struct {
	logger common.Logger
	path   string
	grace  time.Duration

	watcher *fsnotify.Watcher
	events  chan FileEvent

	quitChannel chan struct{}
	quitOnce    sync.Once
	wg          sync.WaitGroup
}

// NewWatcher starts watching a file.
//
// Parameters:
//   - path: the file to watch
//   - grace: how long a removed file may take to come back (<= 0 selects DefaultDeleteGrace)
//   - logger: destination for watch errors, nil to disable
//
// Returns:
//   - *Watcher: the running watcher; call Close to stop it
//   - error: error if the directory cannot be watched
func NewWatcher(path string, grace time.Duration, logger common.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if grace <= 0 {
		grace = DefaultDeleteGrace
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		logger:      common.LoggerOrNop(logger),
		path:        abs,
		grace:       grace,
		watcher:     fw,
		events:      make(chan FileEvent, 16),
		quitChannel: make(chan struct{}),
	}
	w.wg.Add(1)
	go w.handle()
	return w, nil
}

// Events returns the event channel. It is closed when the watcher stops.
//
// Returns:
//   - <-chan FileEvent: the event channel
func (w *Watcher) Events() <-chan FileEvent {
	return w.events
}

// Close stops the watcher. It is safe to call more than once.
//
// Returns:
//   - error: error from releasing the underlying watch
func (w *Watcher) Close() error {
	var err error
	w.quitOnce.Do(func() {
		close(w.quitChannel)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) handle() {
	defer w.wg.Done()
	defer close(w.events)

	var grace <-chan time.Time
	for {
		select {
		case <-w.quitChannel:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			switch {
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				grace = time.After(w.grace)
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
				grace = nil
				w.send(FileChanged)
			}
		case <-grace:
			grace = nil
			if _, err := os.Stat(w.path); errors.Is(err, fs.ErrNotExist) {
				w.send(FileDeleted)
			} else {
				w.send(FileChanged)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("watching %s: %v", w.path, err)
		}
	}
}

func (w *Watcher) send(e FileEvent) {
	w.logger.Debugf("%s %s", w.path, e)
	select {
	case w.events <- e:
	case <-w.quitChannel:
	}
}
