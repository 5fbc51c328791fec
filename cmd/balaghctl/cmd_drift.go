package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brahimakil/balagh-admin-sub001/internal/workbook"
)

func newDriftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drift <workbook.zip>",
		Short: "Report workbook columns the importer does not recognize",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := workbook.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read workbook: %w", err)
			}

			drift := pipeline.DetectColumnDrift(wb)
			if len(drift) == 0 {
				fmt.Println("no column drift detected")
				return nil
			}
			for _, d := range drift {
				fmt.Printf("%s: unknown columns %v\n", d.Collection, d.UnknownColumns)
			}
			return nil
		},
	}
}
