package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brahimakil/balagh-admin-sub001/internal/core"
	"github.com/brahimakil/balagh-admin-sub001/internal/workbook"
)

func newImportCmd() *cobra.Command {
	var collection string

	cmd := &cobra.Command{
		Use:   "import <workbook.zip>",
		Short: "Import a workbook (or one sheet) into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			wb, err := workbook.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read workbook: %w", err)
			}

			if collection != "" {
				def, ok := pipeline.Registry().Get(collection)
				if !ok {
					return fmt.Errorf("unknown collection %q", collection)
				}
				sheet := wb.Sheet(def.SheetName)
				if sheet == nil {
					return fmt.Errorf("workbook has no sheet %q", def.SheetName)
				}
				res := pipeline.ImportCollection(ctx, collection, core.RowsFromSheet(sheet.RowMaps()))
				printResult(collection, res)
				if !res.Success {
					return fmt.Errorf("import finished with %d errors", len(res.Errors))
				}
				return nil
			}

			summary := pipeline.ImportWorkbook(ctx, wb)
			printSummary(summary)
			if !summary.Success {
				return fmt.Errorf("import finished with %d errors", summary.TotalErrors)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&collection, "collection", "c", "", "import only this collection's sheet")
	return cmd
}

func printResult(collection string, res *core.ImportResult) {
	fmt.Printf("%-14s %s\n", collection+":", res.Details)
	if preview := core.ErrorPreview(res.Errors, 10); preview != "" {
		fmt.Printf("    %s\n", preview)
	}
}

func printSummary(summary *core.WorkbookSummary) {
	for _, key := range pipeline.Registry().OrderedKeys() {
		res, ok := summary.Results[key]
		if !ok {
			continue
		}
		printResult(key, res)
	}
	if len(summary.Drift) > 0 {
		fmt.Println("column drift:")
		for _, d := range summary.Drift {
			fmt.Printf("    %s: unknown columns %v\n", d.Collection, d.UnknownColumns)
		}
	}
	fmt.Printf("total: %d imported, %d skipped, %d errors\n",
		summary.TotalImported, summary.TotalSkipped, summary.TotalErrors)
}
