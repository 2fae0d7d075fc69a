// Package cli implements the cobra-based CLI commands for emojimix.
//
// Each subcommand (mix, extract, candidates, chat, config) is defined in its
// own file within this package. This file defines the root command that
// serves as the parent for all subcommands and handles global flags.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mmr-tortoise/emojimix/internal/logging"
	"github.com/mmr-tortoise/emojimix/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// configPath is the configuration file given with --config. When empty,
	// the working directory is searched for a default file name.
	configPath string

	// jsonOutput controls whether command output is formatted as JSON.
	// It also switches log lines on stderr to JSON.
	jsonOutput bool

	// verbose lowers the log level to debug.
	verbose bool

	// logger is built in PersistentPreRunE and synced in PersistentPostRun.
	logger = zap.NewNop()
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// The root command itself does not perform any action; it only provides
// help text and global flags.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "emojimix",
		Short: "Mix two emoji into one Emoji Kitchen image",
		Long: `emojimix finds the Emoji Kitchen image that combines two emoji.

It extracts the emoji from the input, encodes them as hex code points,
and checks candidate image URLs across the configured catalog revisions
until one exists.

Configuration is read from --config, or from emojimix.yaml / emojimix.json
in the working directory when present.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors lets Execute format errors (text or JSON).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logging.Options{Verbose: verbose, JSON: jsonOutput})
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML or JSON(C) configuration file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(NewMixCommand())
	rootCmd.AddCommand(NewExtractCommand())
	rootCmd.AddCommand(NewCandidatesCommand())
	rootCmd.AddCommand(NewChatCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command and exits with the code carried by a
// CLIError, or ExitGeneralError for any other error. Ctrl-C cancels the
// command context so in-flight checks are abandoned.
func Execute(rootCmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(os.Stderr, cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(os.Stderr, err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
