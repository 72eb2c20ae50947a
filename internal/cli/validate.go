package cli

import (
	"fmt"
	"os"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/tidewater-db/tidewater/internal/graph"
	"github.com/tidewater-db/tidewater/internal/schema"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <document.json>",
		Short: "Validate an operator-graph document",
		Long: `Validate a serialized operator-graph document against the backend contract.

Checks the document against the embedded CUE schema, then verifies the
topological-order invariant: every input id must reference an operator
declared earlier in the list.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(rootOpts *RootOptions, path string, cmd *cobra.Command) error {
	logger := rootOpts.Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	level.Debug(logger).Log("msg", "document read", "path", path, "bytes", len(data))

	if err := schema.Validate(data); err != nil {
		return err
	}
	if err := schema.CheckOrdering(data); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "valid: %s (content id %s)\n", path, graph.DocumentID(data))
	return nil
}
