// Package tables provides the "olivar tables" command.
package tables

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/klytics/olivar/internal/app"
	"github.com/klytics/olivar/internal/output"
)

// Summary describes one table of the workbook.
type Summary struct {
	Name    string   `json:"name"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

// NewCommand returns the tables command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the farm tables and their row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.FromCommand(cmd)
			set, err := opts.Store().Load()
			if err != nil {
				return err
			}

			summaries := make([]Summary, 0, len(set.Tables))
			for _, t := range set.Tables {
				summaries = append(summaries, Summary{Name: t.Name, Rows: len(t.Rows), Columns: t.Columns})
			}

			if opts.JSON {
				return output.PrintJSON(cmd.OutOrStdout(), "tables", summaries)
			}

			tbl := uitable.New()
			tbl.AddRow("#", "TABLE", "ROWS", "COLUMNS")
			for i, s := range summaries {
				tbl.AddRow(i+1, s.Name, s.Rows, len(s.Columns))
			}
			fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		},
	}
}
