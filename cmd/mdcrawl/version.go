package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Release identity, set via -ldflags "-X main.version=... -X main.commit=...
// -X main.date=...". When unset, the values fall back to what the Go
// toolchain embedded at build time.
var (
	version = ""
	commit  = ""
	date    = ""
)

// getVersion resolves the release version: ldflags, then the module version
// recorded in the build info, then "(devel)".
func getVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// getCommit resolves the VCS revision, shortened to seven characters.
func getCommit() string {
	if commit != "" {
		return commit
	}
	if rev := buildSetting("vcs.revision"); rev != "" {
		if len(rev) > 7 {
			return rev[:7]
		}
		return rev
	}
	return "unknown"
}

// getDate resolves the commit timestamp of the build.
func getDate() string {
	if date != "" {
		return date
	}
	if ts := buildSetting("vcs.time"); ts != "" {
		return ts
	}
	return "unknown"
}

// buildSetting returns one value from the toolchain's embedded build
// settings, or "" when the binary carries no build info.
func buildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the mdcrawl version together with the commit and date it was built from.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mdcrawl %s (commit %s, built %s)\n",
				getVersion(), getCommit(), getDate())
		},
	}
}
