package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meur/unlockforge/internal/catalog"
	"github.com/meur/unlockforge/internal/storage"
)

func newCatalogCommand() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:         "catalog",
		Short:       "Catalog database utilities",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	catalogCmd.AddCommand(newCatalogImportCommand())
	return catalogCmd
}

func newCatalogImportCommand() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <items.json> <catalog.db>",
		Short: "Copy a JSON catalog into a SQLite catalog usable as a source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonPath, dbPath := args[0], args[1]

			f, err := os.Open(jsonPath)
			if err != nil {
				return fmt.Errorf("failed to read catalog: %w", err)
			}
			defer f.Close()

			records, err := catalog.Decode(f)
			if err != nil {
				return err
			}

			store, err := storage.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open catalog database: %w", err)
			}
			defer store.Close()

			ctx := cmd.Context()
			if replace {
				if err := store.DeleteRawItems(ctx); err != nil {
					return fmt.Errorf("failed to clear catalog: %w", err)
				}
			}
			if err := store.BulkCreateRawItems(ctx, records); err != nil {
				return fmt.Errorf("failed to import catalog: %w", err)
			}

			total, err := store.CountRawItems(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into %s (%d total)\n", len(records), dbPath, total)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Remove existing records before importing")
	return cmd
}
