// Package initialize provides the "olivar init" command.
package initialize

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klytics/olivar/internal/app"
	"github.com/klytics/olivar/internal/store"
)

// NewCommand returns the init command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty workbook with the six farm tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.FromCommand(cmd).Store()
			if st.Exists() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists — nothing to do\n", st.Path)
				return nil
			}
			if err := st.Save(store.Defaults()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%d tables)\n", st.Path, len(store.TableNames()))
			return nil
		},
	}
}
