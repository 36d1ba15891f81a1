package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cvscan/internal/logger"
	"cvscan/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review [extraction-file] [corrected-file]",
	Short: "Apply human corrections to an extracted CV",
	Long: `Validate a human-corrected CV document (the "data" object of an extraction
result) against the CV schema and diff it against the machine extraction.

The output lists every field the reviewer changed, so scan quality can be
tracked over time.`,
	Example: `  # Validate corrections and list the changed fields
  cvscan review extraction.json corrected.json

  # Save the accepted document plus the correction list
  cvscan review extraction.json corrected.json -o reviewed.json`,
	Args: cobra.ExactArgs(2),
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func runReview(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("review")

	outputPath, _ := cmd.Flags().GetString("output")

	extraction, err := readExtractionFile(args[0])
	if err != nil {
		log.Error().Err(err).Str("file", args[0]).Msg("Failed to read extraction file")
		return err
	}

	corrected, err := os.ReadFile(args[1])
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("corrected file not found: %s", args[1])
		}
		log.Error().Err(err).Str("file", args[1]).Msg("Failed to read corrected file")
		return fmt.Errorf("failed to read corrected file: %w", err)
	}

	service, err := review.NewService()
	if err != nil {
		return fmt.Errorf("failed to create review service: %w", err)
	}

	result, err := service.Apply(extraction.Data, corrected)
	if err != nil {
		if errors.Is(err, review.ErrInvalidDocument) {
			return fmt.Errorf("corrected document rejected: %w", err)
		}
		return err
	}

	log.Info().
		Int("corrections", len(result.Corrections)).
		Msg("Review applied")

	outputData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to create JSON output: %w", err)
	}
	return writeOutput(outputData, outputPath, true, log)
}
