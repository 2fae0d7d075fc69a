// mix.go implements the "emojimix mix" command.
//
// The mix command runs the full resolution for one piece of text: it
// validates that the text is exactly two emoji, encodes them, and probes the
// catalog. The found URL is printed on stdout; failures map to distinct
// exit codes so scripts can tell bad input from a missing combination.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/emojimix/internal/mixer"
	"github.com/mmr-tortoise/emojimix/internal/model"
)

// mixFlags holds the flag values for the mix command.
type mixFlags struct {
	// timeout bounds the whole resolution. Zero means unbounded.
	timeout time.Duration
}

// NewMixCommand creates the "mix" cobra command.
func NewMixCommand() *cobra.Command {
	flags := &mixFlags{}

	cmd := &cobra.Command{
		Use:   "mix <text>...",
		Short: "Find the mixed image for two emoji",
		Long: `Find the Emoji Kitchen image for exactly two emoji.

All arguments are joined with spaces and must contain exactly two emoji
and nothing else besides whitespace.

Exit codes:
  0  mix found, URL printed on stdout
  2  configuration error
  3  input is not exactly two emoji
  4  no mix exists for the pair

Examples:
  emojimix mix 💩😊
  emojimix mix 🐱 🔥 --json
  emojimix mix --timeout 10s 🌵 🎃`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runMix(cmd.Context(), cmd.OutOrStdout(), flags, strings.Join(args, " "))
		},
	}

	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0,
		"Bound the whole resolution, e.g. 10s (default: no bound)")

	return cmd
}

// runMix is the main logic function for the mix command.
func runMix(ctx context.Context, w io.Writer, flags *mixFlags, text string) error {
	// Step 1: Load configuration and wire the prober.
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	// Step 2: Build the resolver for this invocation.
	r, err := a.resolver(mixer.Options{Deadline: flags.timeout})
	if err != nil {
		return err
	}

	// Step 3: Resolve.
	result := r.ResolveMix(ctx, text)

	// Step 4: Print the result. JSON mode always prints the full result so
	// callers get the status even on failure.
	if IsJSONOutput() {
		if err := printJSON(w, result); err != nil {
			return err
		}
	} else if result.Found() {
		fmt.Fprintln(w, result.URL)
	}

	return resultError(result)
}

// resultError maps a non-found result to a CLIError with the matching exit
// code. It returns nil for a found result.
func resultError(result model.MixResult) error {
	switch {
	case result.Found():
		return nil

	case result.Status.IsInputError():
		inputErr := &model.InputError{
			Status:    result.Status,
			Count:     len(result.Clusters),
			Remainder: result.Remainder,
		}
		return model.NewCLIError(model.ExitInputError, inputErr.Error())

	default:
		if len(result.Clusters) == 2 {
			return model.NewCLIError(model.ExitNotFound,
				fmt.Sprintf("no mix found for %s and %s", result.Clusters[0].Text, result.Clusters[1].Text))
		}
		return model.NewCLIError(model.ExitNotFound, "no mix found")
	}
}
