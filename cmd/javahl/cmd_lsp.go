package main

import (
	"github.com/dhamidi/javahl/java/codebase"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version, cfg.QuietPeriodOrDefault(), projectOptions(cfg)...)
			return server.RunStdio()
		},
	}
}
