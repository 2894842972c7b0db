// Package main provides the entry point for the mdcrawl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for mdcrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdcrawl",
		Short: "Bounded-depth web crawler with readable text output",
		Long: `mdcrawl crawls one or more seed URLs breadth-first within a configured
set of domains, converts each HTML page into a readable text rendering,
and writes a structured metadata index of everything it processed.

Crawling is polite by default: one request at a time per seed, a fixed
delay between pages, and a bounded crawl depth.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
