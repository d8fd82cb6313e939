// Package doctor provides the "olivar doctor" command.
package doctor

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/olivar/internal/app"
	"github.com/klytics/olivar/internal/config"
	"github.com/klytics/olivar/internal/formats/xlsx"
	"github.com/klytics/olivar/internal/output"
	"github.com/klytics/olivar/internal/store"
)

// Check is a single health check result.
type Check struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message"`
}

// NewCommand creates the "doctor" command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the workbook and configuration",
		Long:  "Compares the workbook with the six expected tables and reports configuration problems. Nothing is changed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.FromCommand(cmd)
			checks := RunChecks(opts.Store())
			out := cmd.OutOrStdout()

			if opts.JSON {
				return output.PrintJSON(out, "doctor", checks)
			}

			green := color.New(color.FgGreen).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()

			fmt.Fprintln(out, "olivar doctor")
			fmt.Fprintln(out, "=============")
			fmt.Fprintln(out)

			okCount, warnCount, errCount := 0, 0, 0
			for _, c := range checks {
				var icon string
				switch c.Status {
				case "ok":
					icon = green("✓")
					okCount++
				case "warning":
					icon = yellow("!")
					warnCount++
				case "error":
					icon = red("✗")
					errCount++
				}
				fmt.Fprintf(out, "  %s %s: %s\n", icon, c.Name, c.Message)
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "  %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

			if errCount > 0 {
				return fmt.Errorf("%d check(s) failed", errCount)
			}
			return nil
		},
	}
}

// RunChecks inspects the runtime, the workbook at st and the config.
func RunChecks(st *store.Store) []Check {
	checks := []Check{{
		Name:    "Go Runtime",
		Status:  "ok",
		Message: fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	}}

	checks = append(checks, workbookChecks(st)...)

	for _, issue := range config.Validate() {
		status := issue.Severity
		if status == "info" {
			status = "ok"
		}
		checks = append(checks, Check{Name: "Config " + issue.Key, Status: status, Message: issue.Message})
	}

	return checks
}

func workbookChecks(st *store.Store) []Check {
	if !st.Exists() {
		return []Check{{Name: "Workbook", Status: "warning", Message: fmt.Sprintf("%s not found — run 'olivar init' or add a record", st.Path)}}
	}

	set, err := st.Load()
	if err != nil {
		return []Check{{Name: "Workbook", Status: "error", Message: err.Error()}}
	}

	// Blank rows count as records in the store; report them separately.
	blank := map[string]int{}
	if wb, err := xlsx.ReadFile(st.Path); err == nil {
		for _, name := range store.TableNames() {
			if sh, err := wb.GetSheet(name); err == nil && len(sh.Rows) > 1 {
				blank[name] = len(sh.Rows) - 1 - sh.RowCount()
			}
		}
	}

	checks := []Check{{Name: "Workbook", Status: "ok", Message: st.Path}}
	for _, name := range store.TableNames() {
		t, err := set.Get(name)
		switch {
		case err != nil:
			checks = append(checks, Check{Name: name, Status: "error", Message: "sheet missing"})
		case !reflect.DeepEqual(t.Columns, store.DefaultColumns(name)):
			checks = append(checks, Check{Name: name, Status: "warning", Message: fmt.Sprintf("columns %v differ from %v", t.Columns, store.DefaultColumns(name))})
		default:
			msg := fmt.Sprintf("%d rows", len(t.Rows))
			if n := blank[name]; n > 0 {
				msg += fmt.Sprintf(" (%d blank)", n)
			}
			checks = append(checks, Check{Name: name, Status: "ok", Message: msg})
		}
	}
	for _, name := range set.Names() {
		if store.DefaultColumns(name) == nil {
			checks = append(checks, Check{Name: name, Status: "warning", Message: "unexpected sheet"})
		}
	}
	return checks
}
