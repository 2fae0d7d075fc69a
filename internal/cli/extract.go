// extract.go implements the "emojimix extract" command.
//
// The extract command is a debugging aid: it shows how the input text is
// split into emoji clusters, with byte offsets, hex identifiers and the
// sequence kind of each cluster. It needs no configuration and makes no
// network requests.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/emojimix/internal/emoji"
	"github.com/mmr-tortoise/emojimix/internal/hexcode"
	"github.com/mmr-tortoise/emojimix/internal/model"
)

// NewExtractCommand creates the "extract" cobra command.
func NewExtractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <text>...",
		Short: "Show the emoji clusters found in text",
		Long: `Show how text is split into emoji clusters.

Each cluster is listed with its byte offsets in the input, the hex
identifier used in catalog URLs, and its sequence kind (Simple, ZWJ,
Flag, Keycap, Modified, Tag, Presentation). Flags also show their region
code, and --json lists every code point.

Examples:
  emojimix extract "hi 👍😊"
  emojimix extract 👍🏽 --json`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}
}

// extractClusterJSON is the output structure for one cluster.
type extractClusterJSON struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Hex   string `json:"hex,omitempty"`
	Kind  string `json:"kind"`

	// Codepoints lists every code point in U+XXXX form, joiners included.
	Codepoints []string `json:"codepoints"`

	// Flag is the region code of a flag cluster.
	Flag string `json:"flag,omitempty"`
}

// extractResultJSON is the output structure of the extract command.
type extractResultJSON struct {
	Clusters  []extractClusterJSON `json:"clusters"`
	Remainder string               `json:"remainder"`
}

func runExtract(w io.Writer, text string) error {
	clusters := emoji.Extract(text)
	result := extractResultJSON{
		// Use an empty slice so JSON shows [] instead of null.
		Clusters:  make([]extractClusterJSON, 0, len(clusters)),
		Remainder: emoji.Remainder(text, clusters),
	}

	for _, c := range clusters {
		result.Clusters = append(result.Clusters, describeCluster(c))
	}

	if IsJSONOutput() {
		return printJSON(w, result)
	}

	if len(result.Clusters) == 0 {
		fmt.Fprintln(w, "No emoji found.")
	} else {
		fmt.Fprintf(w, "%-8s %-6s %-6s %-24s %s\n", "EMOJI", "START", "END", "HEX", "KIND")
		for _, c := range result.Clusters {
			hex := c.Hex
			if hex == "" {
				hex = "-"
			}
			kind := c.Kind
			if c.Flag != "" {
				kind += " (" + c.Flag + ")"
			}
			fmt.Fprintf(w, "%-8s %-6d %-6d %-24s %s\n", c.Text, c.Start, c.End, hex, kind)
		}
	}
	if result.Remainder != "" {
		fmt.Fprintf(w, "Other text: %q\n", result.Remainder)
	}
	return nil
}

// describeCluster builds the output row for one cluster. Clusters without
// encodable code points get an empty hex.
func describeCluster(c model.EmojiCluster) extractClusterJSON {
	out := extractClusterJSON{
		Text:  c.Text,
		Start: c.Start,
		End:   c.End,
		Kind:  emoji.Classify(c.Text).String(),
		Flag:  emoji.FlagCode(c.Text),
	}
	for _, r := range c.Codepoints() {
		out.Codepoints = append(out.Codepoints, fmt.Sprintf("U+%04X", r))
	}
	if hex, err := hexcode.Encode(c); err == nil {
		out.Hex = hex.String()
	}
	return out
}
