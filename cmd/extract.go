package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"cvscan/internal/classifier"
	"cvscan/internal/extractor"
	"cvscan/internal/logger"
)

var extractCmd = &cobra.Command{
	Use:   "extract [text-file]",
	Short: "Extract structured CV data from raw text",
	Long: `Run both pipeline stages on already-recognized CV text: classify it into
typed sections, then extract structured fields from every section. The output
is an ExtractionResult: the structured document, an overall confidence score,
and the list of fields that need human review.

Reads from the given file, or from stdin when the argument is "-".`,
	Example: `  # Extract structured data from a text file
  cvscan extract cv.txt

  # Pipe OCR output straight into extraction
  cat cv.txt | cvscan extract -

  # Save the extraction result for coaching or export
  cvscan extract cv.txt -o extraction.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")

	outputPath, _ := cmd.Flags().GetString("output")

	text, err := readTextInput(args[0], log)
	if err != nil {
		return err
	}

	log.Info().
		Int("text_length", len(text)).
		Msg("Extracting structured CV data")

	classification := classifier.New().Classify(text)
	extraction := extractor.New().Extract(classification.Sections)

	log.Info().
		Int("sections", len(classification.Sections)).
		Float64("confidence", extraction.Confidence).
		Int("issues", len(extraction.Issues)).
		Msg("Extraction completed")

	outputData, err := json.MarshalIndent(extraction, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON output")
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	return writeOutput(outputData, outputPath, true, log)
}
