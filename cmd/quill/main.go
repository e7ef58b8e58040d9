package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill, an AI email draft generator",
	Long:  "Quill reads contacts from a spreadsheet, drafts a personalized email per contact with a hosted text-generation model, and meters the API cost of every call against a monthly budget.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults)")
}

// setupLogging installs the JSON slog handler on stderr, keeping stdout free
// for drafts and reports.
func setupLogging() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
