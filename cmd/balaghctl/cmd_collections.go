package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCollectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List known collections in import order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			reg := pipeline.Registry()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COLLECTION\tSHEET\tNATURAL KEY\tRECORDS\tIMPORTED")
			for _, def := range reg.Ordered() {
				recs, err := pipeline.Store().List(ctx, def.Key)
				if err != nil {
					return fmt.Errorf("list %s: %w", def.Key, err)
				}
				imported, err := pipeline.CountImported(ctx, def.Key)
				if err != nil {
					return fmt.Errorf("count imported %s: %w", def.Key, err)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
					def.Key, def.SheetName, strings.Join(def.NaturalKey, ", "), len(recs), imported)
			}
			return w.Flush()
		},
	}
}
