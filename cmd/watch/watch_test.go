package watch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/klytics/olivar/internal/app"
	"github.com/klytics/olivar/internal/store"
	w "github.com/klytics/olivar/internal/watch"
)

func TestRunJSONReportsChanges(t *testing.T) {
	file := filepath.Join(t.TempDir(), "finca.xlsx")
	opts := app.Options{File: file, JSON: true}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, opts, 50*time.Millisecond, &out, io.Discard)
	}()

	time.Sleep(200 * time.Millisecond)
	if err := store.New(file).Save(store.Defaults()); err != nil {
		t.Fatal(err)
	}
	time.Sleep(500 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}

	var res struct {
		OK   bool      `json:"ok"`
		Data []w.Event `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if !res.OK || len(res.Data) == 0 {
		t.Fatalf("expected at least one change, got %+v", res)
	}
	if res.Data[0].Status != "processed" || res.Data[0].Path == "" {
		t.Errorf("unexpected event %+v", res.Data[0])
	}
}
