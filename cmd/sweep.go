package cmd

import (
	"github.com/spf13/cobra"

	"vidshare/config"
	server2 "vidshare/server"
)

func sweep(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "run one retention sweep and exit",
		Run: func(cmd *cobra.Command, args []string) {
			server2.RunSweep(config)
		},
	}
}
