package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/pixgallery/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of pixgallery",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			writef(cmd.OutOrStdout(), "pixgallery %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
