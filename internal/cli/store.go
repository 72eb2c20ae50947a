package cli

import (
	"fmt"
	"os"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/tidewater-db/tidewater/internal/artifact"
	"github.com/tidewater-db/tidewater/internal/schema"
)

// NewStoreCommand creates the store command group.
func NewStoreCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the artifact store",
		Long:  "Put, fetch, and list serialized operator-graph documents in the SQLite artifact store.",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "tidewater.db", "artifact store database path")

	cmd.AddCommand(newStorePutCommand(rootOpts, &dbPath))
	cmd.AddCommand(newStoreGetCommand(rootOpts, &dbPath))
	cmd.AddCommand(newStoreListCommand(rootOpts, &dbPath))
	return cmd
}

func newStorePutCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:           "put <document.json>",
		Short:         "Store a document, validating it first",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := rootOpts.Logger()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			if err := schema.Validate(data); err != nil {
				return err
			}
			if err := schema.CheckOrdering(data); err != nil {
				return err
			}

			store, err := artifact.Open(*dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			contentID, err := store.Put(cmd.Context(), data)
			if err != nil {
				return err
			}
			level.Debug(logger).Log("msg", "document stored", "content_id", contentID, "bytes", len(data))
			fmt.Fprintln(cmd.OutOrStdout(), contentID)
			return nil
		},
	}
}

func newStoreGetCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:           "get <content-id>",
		Short:         "Fetch a stored document by content id",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := artifact.Open(*dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			data, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout())
			return err
		},
	}
}

func newStoreListCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List stored documents, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := artifact.Open(*dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, rec := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tir=%s\t%s\n",
					rec.ContentID, rec.IRVersion, rec.CreatedAt.Format("2006-01-02T15:04:05Z"))
			}
			return nil
		},
	}
}
