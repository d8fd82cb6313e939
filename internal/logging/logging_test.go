package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewQuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)
	t.Cleanup(func() { SetOutput(nil) })

	New("store").Printf("loaded %d tables", 6)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(nil)
	})

	New("store").Printf("loaded %d tables", 6)
	if !strings.Contains(buf.String(), "[store] loaded 6 tables") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestWarnAlwaysShown(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)
	t.Cleanup(func() { SetOutput(nil) })

	Warn("advisor").Println("prompt is large")
	if !strings.Contains(buf.String(), "[advisor] prompt is large") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
