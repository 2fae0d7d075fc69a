// config.go implements the "emojimix config" command, which prints the
// effective configuration after defaults, the config file and environment
// overrides have been merged.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the "config" cobra command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as YAML (or JSON with --json).

The output can be saved as emojimix.yaml and edited.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd.OutOrStdout())
		},
	}
}

func runConfig(w io.Writer) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		return printJSON(w, cfg)
	}

	data, err := cfg.YAML()
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	fmt.Fprintf(w, "# source: %s\n", source)
	_, err = w.Write(data)
	return err
}
