package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewSpinnerWithEnvDisable(t *testing.T) {
	t.Setenv("OLIVAR_NO_PROGRESS", "1")
	s := NewSpinner("Consultando")
	if s.Enabled {
		t.Error("expected spinner to be disabled with OLIVAR_NO_PROGRESS=1")
	}
}

func TestDisabledSpinnerWritesNothing(t *testing.T) {
	var out syncBuffer
	s := &Spinner{Label: "x", Enabled: false, Out: &out}
	s.Start()
	if s.isRunning() {
		t.Error("disabled spinner should not run")
	}
	s.Stop()
	if out.String() != "" {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestSpinnerStartStop(t *testing.T) {
	var out syncBuffer
	s := &Spinner{Label: "Consultando", Enabled: true, Out: &out}

	s.Start()
	s.Start()
	if !s.isRunning() {
		t.Fatal("expected spinner to run")
	}
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	s.Stop()

	if s.isRunning() {
		t.Error("expected spinner to stop")
	}
	got := out.String()
	if !strings.Contains(got, "Consultando") {
		t.Errorf("expected label in output, got %q", got)
	}
	if !strings.HasSuffix(got, "\r\033[K") {
		t.Errorf("expected line to be cleared on stop, got %q", got)
	}
}
