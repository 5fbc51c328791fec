package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newPurgeCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "purge [collection]",
		Short: "Delete imported records (those stamped by the bulk importer)",
		Long: `Delete records created by workbook import, identified by their
provenance marker. Manually created records are never touched. With no
argument, purges every collection in reverse dependency order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if len(args) == 1 {
				collection := args[0]
				if _, ok := pipeline.Registry().Get(collection); !ok {
					return fmt.Errorf("unknown collection %q", collection)
				}
				if dryRun {
					n, err := pipeline.CountImported(ctx, collection)
					if err != nil {
						return err
					}
					fmt.Printf("would delete %d imported records from %s\n", n, collection)
					return nil
				}
				n, err := pipeline.PurgeImported(ctx, collection)
				if err != nil {
					return fmt.Errorf("purge %s: %w", collection, err)
				}
				fmt.Printf("deleted %d imported records from %s\n", n, collection)
				return nil
			}

			if dryRun {
				var total int64
				for _, key := range pipeline.Registry().OrderedKeys() {
					n, err := pipeline.CountImported(ctx, key)
					if err != nil {
						return err
					}
					if n > 0 {
						fmt.Printf("would delete %d imported records from %s\n", n, key)
					}
					total += n
				}
				fmt.Printf("would delete %d imported records in total\n", total)
				return nil
			}

			total, err := pipeline.PurgeAllImported(ctx)
			if err != nil {
				return fmt.Errorf("purge all: %w", err)
			}
			fmt.Printf("deleted %d imported records in total\n", total)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be deleted without deleting")
	return cmd
}
