// candidates.go implements the "emojimix candidates" command.
//
// The candidates command prints the catalog URLs that would be probed for a
// pair of emoji, in probe order. With --check every URL is checked and its
// outcome shown, which helps when tuning the revision list.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/emojimix/internal/hexcode"
	"github.com/mmr-tortoise/emojimix/internal/mixer"
	"github.com/mmr-tortoise/emojimix/internal/model"
)

// candidatesFlags holds the flag values for the candidates command.
type candidatesFlags struct {
	// check sends one existence check per candidate.
	check bool
}

// Check outcomes shown by --check.
const (
	checkHit     = "hit"
	checkMiss    = "miss"
	checkTimeout = "timeout"
	checkError   = "error"
)

// NewCandidatesCommand creates the "candidates" cobra command.
func NewCandidatesCommand() *cobra.Command {
	flags := &candidatesFlags{}

	cmd := &cobra.Command{
		Use:   "candidates <emoji1> <emoji2>",
		Short: "List the catalog URLs probed for two emoji",
		Long: `List the candidate image URLs for two emoji in probe order.

URLs are ordered by revision (configuration order), and within a revision
the given order comes before the swapped order.

Examples:
  emojimix candidates 💩 😊
  emojimix candidates 💩😊 --check
  emojimix candidates 🐱 🔥 --json`,

		Args: cobra.RangeArgs(1, 2),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCandidates(cmd.Context(), cmd.OutOrStdout(), flags, strings.Join(args, " "))
		},
	}

	cmd.Flags().BoolVar(&flags.check, "check", false,
		"Check every candidate URL and show the outcome")

	return cmd
}

// candidateJSON is the output structure for one candidate URL.
type candidateJSON struct {
	URL      string `json:"url"`
	Revision string `json:"revision"`
	First    string `json:"first"`
	Second   string `json:"second"`
	Outcome  string `json:"outcome,omitempty"`
}

func runCandidates(ctx context.Context, w io.Writer, flags *candidatesFlags, text string) error {
	// Step 1: Validate the input before touching the configuration.
	clusters, err := mixer.Parse(text)
	if err != nil {
		return model.WrapCLIError(model.ExitInputError, "expected exactly two emoji", err)
	}

	// Step 2: Encode both emoji.
	hexA, err := hexcode.Encode(clusters[0])
	if err != nil {
		return model.WrapCLIError(model.ExitInputError, "cannot encode emoji", err)
	}
	hexB, err := hexcode.Encode(clusters[1])
	if err != nil {
		return model.WrapCLIError(model.ExitInputError, "cannot encode emoji", err)
	}

	// Step 3: Generate the candidate list from the configured catalog.
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	candidates := a.gen.Generate(hexA, hexB)
	out := make([]candidateJSON, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, candidateJSON{
			URL:      c.URL,
			Revision: string(c.Revision),
			First:    c.First.String(),
			Second:   c.Second.String(),
		})
	}

	// Step 4: Optionally check every candidate, in order.
	if flags.check {
		if d := a.cfg.Probe.OverallTimeout.Std(); d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		for i := range out {
			out[i].Outcome = checkOutcome(ctx, a, out[i].URL)
		}
	}

	// Step 5: Print.
	if IsJSONOutput() {
		return printJSON(w, map[string]interface{}{"candidates": out})
	}
	for _, c := range out {
		if flags.check {
			fmt.Fprintf(w, "%-8s %s\n", c.Outcome, c.URL)
		} else {
			fmt.Fprintln(w, c.URL)
		}
	}
	return nil
}

// checkOutcome runs one existence check and names the outcome.
func checkOutcome(ctx context.Context, a *app, url string) string {
	ok, err := a.prober.Check(ctx, url)
	var transient *model.ProbeTransientError
	switch {
	case errors.As(err, &transient) && transient.Timeout:
		return checkTimeout
	case err != nil:
		return checkError
	case ok:
		return checkHit
	default:
		return checkMiss
	}
}
