package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/javahl/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// cfg is loaded before any command runs.
var cfg = config.Default()

func main() {
	var configPath string
	var verbose int
	var logFile string

	rootCmd := &cobra.Command{
		Use:           "javahl",
		Short:         "Semantic highlighting for Java source",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			if logFile != "" {
				cfg.LogFile = logFile
			}
			var path *string
			if cfg.LogFile != "" {
				path = &cfg.LogFile
			}
			commonlog.Configure(cfg.LogLevel+verbose, path)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.FileName, "configuration file")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newHighlightCmd())
	rootCmd.AddCommand(newSymbolsCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newWatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "javahl:", err)
		os.Exit(1)
	}
}
