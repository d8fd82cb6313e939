// Package watch provides the "olivar watch" command.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/olivar/internal/app"
	"github.com/klytics/olivar/internal/output"
	w "github.com/klytics/olivar/internal/watch"
)

// NewCommand creates the "watch" command.
func NewCommand() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report when the workbook is rewritten",
		Long: `Watches the workbook and prints the row count of every table each time
the file is saved, by olivar or by a spreadsheet application. Saves are
whole-file rewrites, so a change seen here means any edit made elsewhere
from an older copy will overwrite it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return run(ctx, app.FromCommand(cmd), debounce, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", w.DefaultDebounce, "Quiet period before a change is reported")

	return cmd
}


// run watches until ctx is done. With --json nothing is printed per change;
// the list of changes is written as one envelope on exit.
func run(ctx context.Context, opts app.Options, debounce time.Duration, out, errOut io.Writer) error {
	st := opts.Store()

	watcher, err := w.New(st.Path, debounce)
	if err != nil {
		return err
	}

	watcher.Handler = func(path string) error {
		set, err := st.Load()
		if err != nil {
			return err
		}
		if opts.JSON {
			return nil
		}
		counts := make([]string, 0, len(set.Tables))
		for _, t := range set.Tables {
			counts = append(counts, fmt.Sprintf("%s=%d", t.Name, len(t.Rows)))
		}
		color.New(color.FgCyan).Fprintf(out, "[%s] ", time.Now().Format("15:04:05"))
		fmt.Fprintf(out, "%s changed: %s\n", path, strings.Join(counts, " "))
		return nil
	}

	status := out
	if opts.JSON {
		status = errOut
	}
	fmt.Fprintf(status, "Watching %s (Ctrl+C to stop)\n", watcher.Path)

	if err := watcher.Start(ctx); err != nil {
		return err
	}
	if opts.JSON {
		return output.PrintJSON(out, "watch", watcher.Events())
	}
	return nil
}
