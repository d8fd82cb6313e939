// Package add provides the "olivar add" command.
package add

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/olivar/internal/app"
	"github.com/klytics/olivar/internal/editor"
	"github.com/klytics/olivar/internal/output"
	"github.com/klytics/olivar/internal/shell"
	"github.com/klytics/olivar/internal/store"
)

// NewCommand returns the add command.
func NewCommand() *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "add <table>",
		Short: "Append a record to a table",
		Long: `Appends one record to a table and rewrites the workbook.

Values are free text. Columns left out are stored empty. Without --set
every column is asked for in turn; enter '.' to cancel.

Example:
  olivar add Costes --set "Fecha=2024-11-02" --set "Importe (€)=320"`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: store.TableNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.FromCommand(cmd)
			st := opts.Store()

			set, err := st.Load()
			if err != nil {
				return err
			}
			t, err := set.Get(args[0])
			if err != nil {
				return err
			}

			form := editor.NewForm(t)
			if len(fields) > 0 {
				if err := fillForm(form, fields); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "➕ Agregar nuevo registro en %s\n", t.Name)
				values, ok, err := shell.PromptFields(form.Columns)
				if err != nil {
					return fmt.Errorf("no --set values given and could not prompt: %w", err)
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
				for col, v := range values {
					form.Values[col] = v
				}
			}

			values := make(map[string]string, len(form.Values))
			for k, v := range form.Values {
				values[k] = v
			}

			saved, err := editor.New(st).Submit(form)
			if err != nil {
				return err
			}

			if opts.JSON {
				return output.PrintJSON(cmd.OutOrStdout(), "add", map[string]any{
					"table":  saved.Name,
					"rows":   len(saved.Rows),
					"record": values,
				})
			}

			color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), editor.SavedNotice)
			editor.RenderGrid(cmd.OutOrStdout(), saved)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&fields, "set", nil, `Field value as "Column=Value" (repeatable)`)

	return cmd
}

func fillForm(form *editor.Form, fields []string) error {
	for _, f := range fields {
		col, val, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q — expected \"Column=Value\"", f)
		}
		if err := form.Set(strings.TrimSpace(col), val); err != nil {
			return err
		}
	}
	return nil
}
