// Package cmd contains all CLI commands for the olivar binary.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/olivar/cmd/add"
	"github.com/klytics/olivar/cmd/ask"
	"github.com/klytics/olivar/cmd/completion"
	cmdconfig "github.com/klytics/olivar/cmd/config"
	"github.com/klytics/olivar/cmd/doctor"
	"github.com/klytics/olivar/cmd/initialize"
	"github.com/klytics/olivar/cmd/shell"
	"github.com/klytics/olivar/cmd/show"
	"github.com/klytics/olivar/cmd/tables"
	"github.com/klytics/olivar/cmd/version"
	cmdwatch "github.com/klytics/olivar/cmd/watch"
	"github.com/klytics/olivar/internal/ai"
	"github.com/klytics/olivar/internal/config"
	"github.com/klytics/olivar/internal/logging"
	"github.com/klytics/olivar/internal/store"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
	dataFile   string
	modelName  string
)

// NewRootCommand creates the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "olivar",
		Short: "Record keeping for an olive-grove farm",
		Long: `olivar — Gestión Integral de Finca de Olivar.

Keeps plots, field work, costs, income, inventory and profitability in a
single .xlsx workbook, and answers questions about them with an AI advisor.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetVerbose(verbose)
			logging.SetOutput(cmd.ErrOrStderr())
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if noColor || !cfg.Output.Color {
				color.NoColor = true
			}
			cmd.SetContext(config.NewContext(cmd.Context(), cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return shell.Run(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")
	rootCmd.PersistentFlags().StringVar(&dataFile, "file", store.DefaultFile, "Workbook holding the farm tables")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", ai.DefaultModel, "Chat model used by the advisor")

	rootCmd.AddCommand(tables.NewCommand())
	rootCmd.AddCommand(show.NewCommand())
	rootCmd.AddCommand(add.NewCommand())
	rootCmd.AddCommand(ask.NewCommand())
	rootCmd.AddCommand(initialize.NewCommand())
	rootCmd.AddCommand(shell.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(doctor.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
