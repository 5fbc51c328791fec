package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brahimakil/balagh-admin-sub001/internal/workbook"
)

func newExportCmd() *cobra.Command {
	var collection string

	cmd := &cobra.Command{
		Use:   "export <out.zip>",
		Short: "Export store contents to a workbook (or one sheet to CSV)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := args[0]

			if collection != "" {
				sheet, err := pipeline.ExportCollection(ctx, collection)
				if err != nil {
					return fmt.Errorf("export %s: %w", collection, err)
				}
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := workbook.WriteSheetCSV(f, sheet); err != nil {
					return fmt.Errorf("write csv: %w", err)
				}
				fmt.Printf("wrote %d rows to %s\n", len(sheet.Rows), out)
				return nil
			}

			wb, err := pipeline.ExportAll(ctx)
			if err != nil {
				return fmt.Errorf("export workbook: %w", err)
			}
			if err := wb.WriteFile(out); err != nil {
				return fmt.Errorf("write workbook: %w", err)
			}

			total := 0
			for _, sheet := range wb.Sheets {
				total += len(sheet.Rows)
			}
			fmt.Printf("wrote %d sheets (%d rows) to %s\n", len(wb.Sheets), total, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&collection, "collection", "c", "", "export only this collection, as bare CSV")
	return cmd
}
