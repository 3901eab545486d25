package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/javahl/format"
	"github.com/dhamidi/javahl/highlight"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("javahl")

func newHighlightCmd() *cobra.Command {
	var outputFormat string
	var theme string
	var caret int
	var pkg string
	var enclosingType string
	var roots []string

	cmd := &cobra.Command{
		Use:   "highlight [file]",
		Short: "Highlight a Java file, or standard input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			project, err := loadProject(cmd.Context(), cfg, roots)
			if err != nil {
				return err
			}

			session := highlight.NewSession(project, highlight.WithPath(path))
			if cmd.Flags().Changed("package") || cmd.Flags().Changed("class") {
				session.SetCurrentContext(pkg, enclosingType)
			} else {
				if caret < 0 || caret > len(text) {
					caret = len(text)
				}
				session.UpdateContextFromCaret(text, caret)
			}
			result := session.Recompute(text)

			if theme == "" {
				theme = cfg.ThemeOrDefault()
			}
			encoder := format.Get(outputFormat, cmd.OutOrStdout(), theme)
			if encoder == nil {
				return fmt.Errorf("unknown format: %s (expected %s)", outputFormat, strings.Join(format.Names, ", "))
			}
			if err := encoder.Encode(format.Document{Path: path, Text: text, Result: result}); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "ansi", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().StringVar(&theme, "theme", "", "chroma style for ansi output")
	cmd.Flags().IntVar(&caret, "caret", -1, "byte offset of the caret; the enclosing class is the last one declared before it")
	cmd.Flags().StringVar(&pkg, "package", "", "package names are resolved in")
	cmd.Flags().StringVar(&enclosingType, "class", "", "class names are resolved in")
	cmd.Flags().StringSliceVarP(&roots, "source-root", "s", nil, "source root of the project (repeatable)")

	return cmd
}

// readInput reads the file named by args, or standard input when there is
// none or it is "-".
func readInput(stdin io.Reader, args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		text, err := io.ReadAll(stdin)
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return "", text, nil
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("resolve %s: %w", args[0], err)
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read java file: %w", err)
	}
	return path, text, nil
}
