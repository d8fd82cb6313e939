package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestMatches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finca.xlsx")
	w, err := New(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if w.Debounce != DefaultDebounce {
		t.Errorf("debounce = %v", w.Debounce)
	}
	if !w.matches(path) {
		t.Error("should match the workbook")
	}
	if w.matches(filepath.Join(dir, "otro.xlsx")) {
		t.Error("should not match other files")
	}
	if w.matches(filepath.Join(dir, "~$finca.xlsx")) {
		t.Error("should not match lock files")
	}
}

func TestStartReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finca.xlsx")
	w, err := New(path, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	w.Handler = func(p string) error {
		if p != path {
			t.Errorf("handler path = %q", p)
		}
		calls.Add(1)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Start returned %v", err)
	}

	if calls.Load() != 1 {
		t.Errorf("expected one debounced call, got %d", calls.Load())
	}
	if events := w.Events(); len(events) != 1 || events[0].Status != "processed" {
		t.Errorf("events = %+v", events)
	}
}

func TestProcessRecordsHandlerError(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "finca.xlsx"), 0)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	w.Handler = func(string) error { return errors.New("corrupt workbook") }

	w.process("WRITE")

	events := w.Events()
	if len(events) != 1 || events[0].Status != "error" || events[0].Error != "corrupt workbook" {
		t.Errorf("events = %+v", events)
	}
}
