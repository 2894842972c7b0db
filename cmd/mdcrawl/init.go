package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/mdcrawl.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = ".mdcrawl"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdcrawl configuration file",
		Long: `Initialize creates a new .mdcrawl configuration file in the current directory.

The generated file includes:
- Default settings for crawl depth, timeouts, and the polite delay
- Commented examples for domain allow/block lists
- Documentation for all available options

Examples:
  # Create .mdcrawl in current directory
  mdcrawl init

  # Create config file at a specific path
  mdcrawl init -o myconfig.yaml

  # Force overwrite existing file
  mdcrawl init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/mdcrawl.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to configure settings such as:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Allowed and blocked domains")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Crawl depth, timeouts, and the polite delay")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Link exclusion patterns")

	return nil
}
