// Package main is the entry point for the emojimix CLI.
//
// This binary resolves Emoji Kitchen images for pairs of emoji. It delegates
// all functionality to the internal/cli package, which defines cobra
// commands.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release build. During development, they default to "dev",
// "none", and "unknown" respectively.
package main

import (
	"github.com/mmr-tortoise/emojimix/internal/cli"
)

// version, commit, and date are set at build time via ldflags. They provide
// binary identification for the --version flag output.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// Execute handles error formatting and exit codes.
	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
