package db

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Notifier fans out "something changed" signals to watch streams. Signals are
// coalesced: a subscriber that has not consumed the previous one gets no more.
type Notifier struct {
	mu     sync.Mutex
	subs   map[int]chan struct{}
	nextID int

	watcher *fsnotify.Watcher
	done    chan struct{}
	log     *zap.Logger
}

// NewNotifier creates a notifier with no file watch
func NewNotifier(log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{
		subs: make(map[int]chan struct{}),
		log:  log,
	}
}

// Subscribe returns a signal channel and a function that unsubscribes
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan struct{}, 1)
	n.subs[id] = ch

	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Publish signals every subscriber without blocking
func (n *Notifier) Publish() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// WatchFile publishes whenever the SQLite file at dbPath (or its -wal/-journal
// siblings) is written by any process.
func (n *Notifier) WatchFile(dbPath string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	// Watch the directory: SQLite replaces journal files, which drops file watches
	if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(dbPath), err)
	}

	n.watcher = watcher
	n.done = make(chan struct{})
	go n.watchLoop(watcher, filepath.Base(dbPath), n.done)
	return nil
}

func (n *Notifier) watchLoop(watcher *fsnotify.Watcher, base string, done chan struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				n.Publish()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			n.log.Warn("database file watch error", zap.Error(err))
		}
	}
}

// Close stops the file watch, if any
func (n *Notifier) Close() error {
	n.mu.Lock()
	watcher, done := n.watcher, n.done
	n.watcher = nil
	n.done = nil
	n.mu.Unlock()

	if watcher == nil {
		return nil
	}
	err := watcher.Close()
	<-done
	return err
}
