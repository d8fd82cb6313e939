// Package logging hands out component loggers in the bracketed-prefix style
// used across the CLI. Loggers are silent unless verbose output is enabled.
package logging

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	verbose bool
	dest    io.Writer = os.Stderr
)

// SetVerbose turns debug output on or off for loggers created afterwards.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// SetOutput redirects log output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	dest = w
}

// New returns a logger prefixed with "[component] ".
func New(component string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(dest, "["+component+"] ", log.LstdFlags)
}

// Warn returns a logger for warnings that are always shown.
func Warn(component string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return log.New(dest, "["+component+"] ", log.LstdFlags)
}
