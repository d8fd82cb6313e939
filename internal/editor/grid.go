package editor

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/klytics/olivar/internal/store"
)

// RenderGrid writes t as a read-only grid, header row first.
func RenderGrid(w io.Writer, t *store.Table) {
	title := color.New(color.Bold, color.FgCyan)
	dim := color.New(color.FgHiBlack)

	title.Fprintf(w, "📋 %s\n", t.Name)

	if len(t.Rows) == 0 {
		dim.Fprintf(w, "  (empty) columns: %v\n\n", t.Columns)
		return
	}

	tbl := uitable.New()
	tbl.Separator = " | "
	tbl.MaxColWidth = 40
	tbl.Wrap = true
	tbl.AddRow(cells(t.Columns)...)
	for _, r := range t.Rows {
		tbl.AddRow(cells(r)...)
	}

	fmt.Fprintln(w, tbl)
	dim.Fprintf(w, "  (%d rows)\n\n", len(t.Rows))
}

func cells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
