// Package cli implements the vidcrawl command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "dev"

	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "vidcrawl",
	Short: "Recursive YouTube keyword crawler",
	Long: `vidcrawl discovers videos for a set of seed keywords by querying the
YouTube Data API, then recursively expands the search using keywords mined
from each result's title and description, up to a configured depth.

Results are appended to a flat file as one JSON object per line.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: ./config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace|debug|info|warn|error)")

	rootCmd.AddCommand(crawlCmd)
}
