package cmd

import (
	"fmt"

	"langid/internal/core/version"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bi := version.Info("langid")
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s, %s)\n",
				bi.Service, bi.Version, bi.Commit, bi.Date, bi.GoVersion)
			return err
		},
	}
}
