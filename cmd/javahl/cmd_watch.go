package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/dhamidi/javahl/format"
	"github.com/dhamidi/javahl/highlight"
	"github.com/dhamidi/javahl/java/codebase"
	"github.com/dhamidi/javahl/java/symbols"
	"github.com/spf13/cobra"
)

const clearScreen = "\x1b[2J\x1b[H"

func newWatchCmd() *cobra.Command {
	var outputFormat string
	var theme string
	var roots []string

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Highlight a Java file again whenever it or its project changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if path == "" {
				return fmt.Errorf("watch needs a file")
			}
			if len(roots) == 0 && len(cfg.SourceRoots) == 0 {
				roots = []string{filepath.Dir(path)}
			}
			if theme == "" {
				theme = cfg.ThemeOrDefault()
			}
			if format.Get(outputFormat, io.Discard, theme) == nil {
				return fmt.Errorf("unknown format: %s (expected %s)", outputFormat, strings.Join(format.Names, ", "))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, cmd.OutOrStdout(), path, text, roots, outputFormat, theme)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "ansi", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().StringVar(&theme, "theme", "", "chroma style for ansi output")
	cmd.Flags().StringSliceVarP(&roots, "source-root", "s", nil, "source root of the project (repeatable)")

	return cmd
}

func runWatch(ctx context.Context, out io.Writer, path string, text []byte, roots []string, outputFormat, theme string) error {
	project, err := loadProject(ctx, cfg, roots)
	if err != nil {
		return err
	}
	if project == nil {
		project = symbols.NewProject(projectOptions(cfg)...)
	}

	var mu sync.Mutex
	render := func(f *codebase.FileInfo, result highlight.Result) {
		text, _, _ := f.Result()
		mu.Lock()
		defer mu.Unlock()
		if outputFormat == "ansi" {
			fmt.Fprint(out, clearScreen)
		}
		doc := format.Document{Path: f.Path, Text: text, Result: result}
		if err := format.Get(outputFormat, out, theme).Encode(doc); err != nil {
			log.Errorf("encode %s: %s", f.Path, err)
		}
	}

	c := codebase.New(project,
		codebase.WithQuietPeriod(cfg.QuietPeriodOrDefault()),
		codebase.WithPublisher(render),
	)
	defer c.Close()
	c.UpdateFile(path, text)

	watcher := codebase.NewFileWatcher(c, codebase.DefaultDebounce)
	watcher.OnChange(func(paths []string) {
		if !slices.Contains(paths, path) {
			return
		}
		text, err := os.ReadFile(path)
		if err != nil {
			log.Warningf("read %s: %s", path, err)
			return
		}
		c.UpdateFile(path, text)
	})
	return watcher.Run(ctx)
}
