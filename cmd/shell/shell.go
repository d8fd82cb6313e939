// Package shell provides the "olivar shell" interactive command.
package shell

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/klytics/olivar/internal/app"
	shellpkg "github.com/klytics/olivar/internal/shell"
)

// NewCommand creates the "shell" command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive farm editor",
		Long: `Start an interactive session with one view per table plus the AI advisor.

Switch views with 'go <table>', fill the "add record" form with
'set <column>=<value>' and 'save', and ask questions from the Asesor view.
Running olivar with no command starts the same session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd)
		},
	}
}

// Run starts a session using the command's flags and config.
func Run(cmd *cobra.Command) error {
	opts := app.FromCommand(cmd)
	session, err := shellpkg.NewSession(opts.Store(), opts.Advisor())
	if err != nil {
		return err
	}
	session.Out = cmd.OutOrStdout()
	session.APIKey = os.Getenv("OPENAI_API_KEY")
	return session.Run(cmd.Context())
}
