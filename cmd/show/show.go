// Package show provides the "olivar show" command.
package show

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klytics/olivar/internal/app"
	"github.com/klytics/olivar/internal/editor"
	"github.com/klytics/olivar/internal/formats/xlsx"
	"github.com/klytics/olivar/internal/output"
	"github.com/klytics/olivar/internal/store"
)

// NewCommand returns the show command.
func NewCommand() *cobra.Command {
	var (
		csvOutput bool
		noPager   bool
	)

	cmd := &cobra.Command{
		Use:       "show <table>",
		Short:     "Display the records of a table",
		Long:      "Prints every record of one table as a read-only grid, CSV, or JSON.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: store.TableNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.FromCommand(cmd)
			set, err := opts.Store().Load()
			if err != nil {
				return err
			}
			t, err := set.Get(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.JSON {
				return output.PrintJSON(out, "show", toMaps(t))
			}
			if csvOutput {
				sheet := xlsx.Sheet{Name: t.Name, Rows: [][]string{t.Columns}}
				for _, r := range t.Rows {
					sheet.Rows = append(sheet.Rows, r)
				}
				_, err := fmt.Fprint(out, sheet.ToCSV())
				return err
			}

			var buf bytes.Buffer
			editor.RenderGrid(&buf, t)
			if !noPager && output.ShouldPage(buf.String(), output.DefaultPageHeight) {
				return output.Page(buf.String())
			}
			_, err = out.Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().BoolVar(&csvOutput, "csv", false, "Output as CSV")
	cmd.Flags().BoolVar(&noPager, "no-pager", false, "Never pipe long output through $PAGER")

	return cmd
}

func toMaps(t *store.Table) []map[string]string {
	rows := make([]map[string]string, 0, len(t.Rows))
	for i := range t.Rows {
		m := make(map[string]string, len(t.Columns))
		for _, col := range t.Columns {
			m[col] = t.Value(i, col)
		}
		rows = append(rows, m)
	}
	return rows
}
