package main

import (
	"fmt"

	"github.com/dhamidi/javahl/format"
	"github.com/dhamidi/javahl/java/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a .java file and dump the syntax tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			result := parser.Parse(text)

			switch outputFormat {
			case "json":
				if err := format.NewASTJSONEncoder(cmd.OutOrStdout()).Encode(result); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "tree":
				out := cmd.OutOrStdout()
				if includePositions {
					fmt.Fprint(out, result.Tree.StringWithPositions())
				} else {
					fmt.Fprint(out, result.Tree.String())
				}
				for _, e := range result.Errors {
					fmt.Fprintln(out, "error:", e.Error())
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include token positions in tree output")

	return cmd
}
