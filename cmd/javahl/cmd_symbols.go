package main

import (
	"fmt"

	"github.com/dhamidi/javahl/config"
	"github.com/dhamidi/javahl/format"
	"github.com/spf13/cobra"
)

func newSymbolsCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "symbols [source-root...]",
		Short: "Build the symbol table of a project and dump it",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := loadProject(cmd.Context(), cfg, args)
			if err != nil {
				return err
			}
			if project == nil {
				return fmt.Errorf("no source roots: pass one or set source_roots in %s", config.FileName)
			}

			table := project.Table()
			switch outputFormat {
			case "json":
				err = format.NewTableJSONEncoder(cmd.OutOrStdout()).Encode(table)
			case "lines":
				err = format.NewTableLineEncoder(cmd.OutOrStdout()).Encode(table)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "lines", "output format (lines, json)")

	return cmd
}
