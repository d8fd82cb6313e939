// Package ask provides the "olivar ask" advisory query command.
package ask

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/klytics/olivar/internal/app"
	"github.com/klytics/olivar/internal/output"
	"github.com/klytics/olivar/internal/progress"
	"github.com/klytics/olivar/internal/shell"
)

// NewCommand returns the ask command.
func NewCommand() *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the AI advisor about the farm data",
		Long: `Sends every table of the workbook together with your question to the
OpenAI chat API and prints the answer.

The API key is taken from --api-key, then OPENAI_API_KEY, and is otherwise
asked for with a hidden prompt when a terminal is attached. It is never
written to disk.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.FromCommand(cmd)
			question := strings.Join(args, " ")

			key := apiKey
			if key == "" {
				key = os.Getenv("OPENAI_API_KEY")
			}
			if strings.TrimSpace(key) == "" && !opts.JSON && strings.TrimSpace(question) != "" {
				k, err := shell.PromptSecret("🔑 Clave API de OpenAI: ")
				switch {
				case shell.NoInput(err):
					// Left empty: the advisor answers with the missing-key warning.
				case err != nil:
					return fmt.Errorf("could not read API key: %w", err)
				default:
					key = k
				}
			}

			set, err := opts.Store().Load()
			if err != nil {
				return err
			}

			spin := progress.NewSpinner("Consultando al asesor...")
			if !opts.JSON {
				spin.Start()
			}
			ans := opts.Advisor().Ask(cmd.Context(), key, question, set)
			spin.Stop()

			if opts.JSON {
				if ans.Failed() {
					msg := ans.Error
					if msg == "" {
						msg = ans.Warning
					}
					return output.PrintJSONError(cmd.OutOrStdout(), "ask", msg, ans)
				}
				return output.PrintJSON(cmd.OutOrStdout(), "ask", ans)
			}

			ans.Render(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "OpenAI API key (prefer OPENAI_API_KEY)")

	return cmd
}
