package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tidewater-db/tidewater/internal/doc"
)

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <document.json>",
		Short: "Re-emit a document for reading",
		Long: `Re-emit a serialized operator-graph document.

With --format json (the default) the document is re-serialized in its
canonical byte form; with --format yaml it is rendered as YAML for
human reading.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runDump(rootOpts *RootOptions, path string, cmd *cobra.Command) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	value, err := doc.FromJSON(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	switch rootOpts.Format {
	case "yaml":
		out, err := yaml.Marshal(doc.ToGo(value))
		if err != nil {
			return fmt.Errorf("rendering YAML: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	default:
		out, err := doc.MarshalCanonical(value)
		if err != nil {
			return fmt.Errorf("canonical serialization: %w", err)
		}
		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout())
		return err
	}
}
