package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ui/internal/report"
)

func newExcelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "excel <workbook.xlsx>",
		Short: "Summarize a saved bulk analysis Excel export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read workbook: %w", err)
			}
			summary, err := report.InspectWorkbook(data)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			a.printer(cmd.OutOrStdout()).PrintWorkbook(filepath.Base(args[0]), summary)
			return nil
		},
	}
}
