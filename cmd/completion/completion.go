// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewCommand returns the completion command.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for olivar.

Install instructions:
  Bash:       olivar completion bash > /etc/bash_completion.d/olivar
  Zsh:        olivar completion zsh > ~/.zsh/completions/_olivar
  Fish:       olivar completion fish > ~/.config/fish/completions/olivar.fish
  PowerShell: olivar completion powershell >> $PROFILE`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Generate(rootCmd, args[0], cmd.OutOrStdout())
		},
	}
}

// Generate writes the completion script for shell to w.
func Generate(rootCmd *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		fmt.Fprintln(w, "# olivar bash completion")
		return rootCmd.GenBashCompletion(w)
	case "zsh":
		fmt.Fprintln(w, "# olivar zsh completion")
		return rootCmd.GenZshCompletion(w)
	case "fish":
		fmt.Fprintln(w, "# olivar fish completion")
		return rootCmd.GenFishCompletion(w, true)
	case "powershell":
		fmt.Fprintln(w, "# olivar PowerShell completion")
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", shell)
	}
}
