package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cvscan/internal/classifier"
	"cvscan/internal/logger"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text-file]",
	Short: "Classify raw CV text into typed sections",
	Long: `Run only the first pipeline stage: split already-recognized CV text into
typed sections (personal, experience, education, skills, summary, projects,
languages, certifications) with per-section confidence scores.

Reads from the given file, or from stdin when the argument is "-".`,
	Example: `  # Classify a text file
  cvscan classify cv.txt

  # Classify OCR output piped from another tool
  cat cv.txt | cvscan classify -

  # Save the classification result
  cvscan classify cv.txt -o sections.json`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func runClassify(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("classify")

	outputPath, _ := cmd.Flags().GetString("output")

	text, err := readTextInput(args[0], log)
	if err != nil {
		return err
	}

	log.Info().
		Int("text_length", len(text)).
		Msg("Classifying CV text")

	result := classifier.New().Classify(text)

	log.Info().
		Int("sections", len(result.Sections)).
		Float64("confidence", result.Confidence).
		Int("warnings", len(result.Warnings)).
		Msg("Classification completed")

	outputData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON output")
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	return writeOutput(outputData, outputPath, true, log)
}

// readTextInput reads the whole input from a file path or stdin ("-")
func readTextInput(path string, log zerolog.Logger) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Error().Err(err).Msg("Failed to read from stdin")
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().
				Str("file", path).
				Msg("Input file not found")
			return "", fmt.Errorf("input file not found: %s", path)
		}
		log.Error().
			Err(err).
			Str("file", path).
			Msg("Failed to read input file")
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}
