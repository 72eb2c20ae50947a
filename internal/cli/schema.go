package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidewater-db/tidewater/internal/schema"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the document schema",
		Long:  "Print the embedded CUE schema that serialized operator-graph documents are validated against.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), schema.Source())
			return err
		},
	}
}
