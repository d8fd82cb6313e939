// Package watch reports when the backing workbook is rewritten, either by
// another olivar process or by a spreadsheet application.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/klytics/olivar/internal/logging"
)

// DefaultDebounce collapses the burst of write events a single save produces.
const DefaultDebounce = 500 * time.Millisecond

// Event is one detected change of the workbook.
type Event struct {
	Time      time.Time `json:"time"`
	Path      string    `json:"path"`
	Operation string    `json:"operation"`
	Status    string    `json:"status"` // "processed", "error"
	Error     string    `json:"error,omitempty"`
}

// Handler is called once per debounced change.
type Handler func(path string) error

// Watcher monitors a single file. fsnotify watches the parent directory so
// that replace-by-rename saves are seen too.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Handler  Handler
	Logger   *log.Logger

	mu      sync.Mutex
	events  []Event
	timer   *time.Timer
	watcher *fsnotify.Watcher
}

// New creates a Watcher for path.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		Path:     abs,
		Debounce: debounce,
		Logger:   logging.New("watch"),
		watcher:  fsw,
	}, nil
}

// Start blocks, dispatching changes of Path, until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.Path)
	if err := w.watcher.Add(dir); err != nil {
		w.watcher.Close()
		return fmt.Errorf("could not watch %s: %w", dir, err)
	}
	w.Logger.Printf("watching %s", w.Path)

	for {
		select {
		case <-ctx.Done():
			w.Logger.Println("stopping watcher")
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("error: %v", err)
		}
	}
}

// Close releases the underlying watcher without starting it.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	if !w.matches(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	op := event.Op.String()
	w.timer = time.AfterFunc(w.Debounce, func() {
		w.process(op)
	})
}

// matches ignores everything but the workbook itself, including the "~$"
// lock files spreadsheet applications leave next to it.
func (w *Watcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if strings.HasPrefix(filepath.Base(abs), "~$") {
		return false
	}
	return abs == w.Path
}

func (w *Watcher) process(operation string) {
	evt := Event{Time: time.Now(), Path: w.Path, Operation: operation, Status: "processed"}

	if w.Handler != nil {
		if err := w.Handler(w.Path); err != nil {
			evt.Status = "error"
			evt.Error = err.Error()
			w.Logger.Printf("error processing %s: %v", w.Path, err)
		}
	}

	w.mu.Lock()
	w.events = append(w.events, evt)
	w.mu.Unlock()
}

// Events returns every change seen so far.
func (w *Watcher) Events() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := make([]Event, len(w.events))
	copy(events, w.events)
	return events
}
