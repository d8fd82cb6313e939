// Package progress shows a spinner on stderr while a blocking call runs.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var frames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner animates a label until Stop is called.
type Spinner struct {
	Label   string
	Enabled bool
	Out     io.Writer

	mu      sync.Mutex
	done    chan struct{}
	running bool
}

// NewSpinner creates a spinner writing to stderr. It is disabled when
// stderr is not a terminal or OLIVAR_NO_PROGRESS=1.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		Label:   label,
		Enabled: shouldEnable(),
		Out:     os.Stderr,
	}
}

// Start begins the animation. Calling Start on a running spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.Enabled || s.running {
		return
	}
	s.running = true
	s.done = make(chan struct{})

	go s.spin(s.done)
}

func (s *Spinner) spin(done <-chan struct{}) {
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.running {
				fmt.Fprintf(s.Out, "\r\033[K%c %s", frames[i%len(frames)], s.Label)
			}
			s.mu.Unlock()
		}
	}
}

// Stop ends the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.done)
	fmt.Fprint(s.Out, "\r\033[K")
}

// isRunning reports whether the animation is active.
func (s *Spinner) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func shouldEnable() bool {
	if os.Getenv("OLIVAR_NO_PROGRESS") == "1" {
		return false
	}
	return isTTY()
}

func isTTY() bool {
	stat, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
