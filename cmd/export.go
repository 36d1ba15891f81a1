package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cvscan/internal/export"
	"cvscan/internal/logger"
)

var exportCmd = &cobra.Command{
	Use:   "export [extraction-file]",
	Short: "Export an extracted CV to an XLSX workbook",
	Long: `Render an extraction result (as produced by 'cvscan extract') as an XLSX
workbook with one sheet per CV area, plus an Issues sheet listing the fields
that need human review.`,
	Example: `  # Export to cv.xlsx
  cvscan extract cv.txt -o extraction.json
  cvscan export extraction.json -o cv.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "cv.xlsx", "Output XLSX file path")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")

	outputPath, _ := cmd.Flags().GetString("output")

	result, err := readExtractionFile(args[0])
	if err != nil {
		log.Error().Err(err).Str("file", args[0]).Msg("Failed to read extraction file")
		return err
	}

	workbook, err := export.NewService().ExportXLSX(*result)
	if err != nil {
		log.Error().Err(err).Msg("XLSX export failed")
		return fmt.Errorf("XLSX export failed: %w", err)
	}

	if err := os.WriteFile(outputPath, workbook, 0644); err != nil {
		log.Error().
			Err(err).
			Str("output_file", outputPath).
			Msg("Failed to write workbook")
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	log.Info().
		Str("output_file", outputPath).
		Int("bytes", len(workbook)).
		Msg("CV exported to XLSX")
	fmt.Printf("Exported CV to %s\n", outputPath)
	return nil
}
