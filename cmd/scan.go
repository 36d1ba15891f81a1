package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cvscan/internal/classifier"
	"cvscan/internal/config"
	"cvscan/internal/extractor"
	"cvscan/internal/logger"
	"cvscan/internal/ocr"
	"cvscan/pkg/models"
)

var scanCmd = &cobra.Command{
	Use:   "scan [image-or-pdf]",
	Short: "Scan a CV document into structured data",
	Long: `Process a scanned CV (image or PDF) end to end: recognize the text with
Google Cloud Vision, classify it into typed sections, and extract structured
fields (contact details, experience, education, skills, ...).

Supported inputs are JPEG, PNG, TIFF and PDF files up to 20MB. PDFs are
limited to 5 pages for synchronous processing.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # Scan a photographed CV and print the structured result
  cvscan scan cv.jpg

  # Scan a PDF and save the full JSON result
  cvscan scan cv.pdf --json -o result.json

  # Include OCR metadata in the output
  cvscan scan cv.pdf --metadata --json

  # Process with custom timeout
  cvscan scan large-cv.pdf --timeout 600`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

// ScanOutput represents the JSON output structure of a full scan
type ScanOutput struct {
	ScanID         string                      `json:"scan_id"`
	FileName       string                      `json:"file_name"`
	FileSize       int64                       `json:"file_size"`
	OCR            *OCRMetadata                `json:"ocr,omitempty"`
	Classification models.ClassificationResult `json:"classification"`
	Extraction     models.ExtractionResult     `json:"extraction"`
}

// OCRMetadata is the recognition metadata included with --metadata
type OCRMetadata struct {
	PageCount          int      `json:"page_count"`
	Confidence         float64  `json:"confidence"`
	LanguageCodes      []string `json:"language_codes,omitempty"`
	ProcessingDuration string   `json:"processing_duration"`
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	scanCmd.Flags().BoolP("metadata", "m", false, "Include OCR metadata in output")
	scanCmd.Flags().Bool("json", false, "Output as JSON")
	scanCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	scanID := uuid.NewString()
	log := logger.WithScanID(scanID)

	outputPath, _ := cmd.Flags().GetString("output")
	includeMetadata, _ := cmd.Flags().GetBool("metadata")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	inputPath := args[0]

	log.Info().
		Str("file", inputPath).
		Str("output", outputPath).
		Bool("metadata", includeMetadata).
		Bool("json", jsonOutput).
		Int("timeout", timeoutSecs).
		Msg("Starting CV scan")

	fileInfo, err := validateInputFile(inputPath, log)
	if err != nil {
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	engine, err := createEngine(ctx, log)
	if err != nil {
		return err
	}

	inputFile, err := os.Open(inputPath)
	if err != nil {
		log.Error().
			Err(err).
			Str("file", inputPath).
			Msg("Failed to open input file")
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		if closeErr := inputFile.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close input file")
		}
	}()

	startTime := time.Now()

	var recognized *ocr.Result
	if isPDFPath(inputPath) {
		recognized, err = engine.RecognizePDF(ctx, inputFile)
	} else {
		recognized, err = engine.RecognizeImage(ctx, inputFile)
	}
	if err != nil {
		return handleEngineError(err, log)
	}

	log.Info().
		Int("page_count", recognized.PageCount).
		Float64("confidence", recognized.Confidence).
		Dur("duration", recognized.ProcessingDuration).
		Int("text_length", len(recognized.Text)).
		Msg("Text recognition completed")

	classification := classifier.New().Classify(recognized.Text)
	extraction := extractor.New().Extract(classification.Sections)

	log.Info().
		Int("sections", len(classification.Sections)).
		Float64("classification_confidence", classification.Confidence).
		Float64("extraction_confidence", extraction.Confidence).
		Int("issues", len(extraction.Issues)).
		Dur("total_duration", time.Since(startTime)).
		Msg("CV scan completed successfully")

	output := ScanOutput{
		ScanID:         scanID,
		FileName:       filepath.Base(fileInfo.Name()),
		FileSize:       fileInfo.Size(),
		Classification: classification,
		Extraction:     extraction,
	}
	if includeMetadata {
		output.OCR = &OCRMetadata{
			PageCount:          recognized.PageCount,
			Confidence:         recognized.Confidence,
			LanguageCodes:      recognized.LanguageCodes,
			ProcessingDuration: recognized.ProcessingDuration.String(),
		}
	}

	return writeScanOutput(output, outputPath, jsonOutput, log)
}

// validateInputFile checks that the input exists, is a regular non-empty file
// and fits the synchronous processing limit
func validateInputFile(inputPath string, log zerolog.Logger) (os.FileInfo, error) {
	fileInfo, err := os.Stat(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().
				Str("file", inputPath).
				Msg("Input file not found")
			return nil, fmt.Errorf("input file not found: %s", inputPath)
		}
		if os.IsPermission(err) {
			log.Error().
				Str("file", inputPath).
				Msg("Permission denied accessing input file")
			return nil, fmt.Errorf("permission denied accessing input file: %s", inputPath)
		}
		return nil, fmt.Errorf("error accessing input file: %w", err)
	}

	if !fileInfo.Mode().IsRegular() {
		log.Error().
			Str("file", inputPath).
			Msg("Path is not a regular file")
		return nil, fmt.Errorf("path is not a regular file: %s", inputPath)
	}

	if fileInfo.Size() == 0 {
		log.Error().
			Str("file", inputPath).
			Msg("Input file is empty")
		return nil, fmt.Errorf("input file is empty: %s", inputPath)
	}

	if fileInfo.Size() > ocr.MaxFileSizeBytes {
		log.Error().
			Str("file", inputPath).
			Int64("size", fileInfo.Size()).
			Int64("max_size", ocr.MaxFileSizeBytes).
			Msg("Input file exceeds maximum size limit")
		return nil, fmt.Errorf("input file too large (%d bytes). Maximum size is %d bytes (20MB)",
			fileInfo.Size(), ocr.MaxFileSizeBytes)
	}

	return fileInfo, nil
}

func isPDFPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".pdf")
}

// createContextWithTimeout creates a context with timeout and signal handling
func createContextWithTimeout(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling processing")
			cancel()
		case <-ctx.Done():
			// Context completed normally
		}
	}()

	return ctx, cancel
}

// createEngine creates and configures the text-recognition engine
func createEngine(ctx context.Context, log zerolog.Logger) (ocr.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireGoogleCredentials(); err != nil {
		log.Error().Err(err).Msg("Google Cloud credentials not configured")
		return nil, fmt.Errorf("Google Cloud credentials not configured. Please set one of:\n\n" +
			"1. Export GOOGLE_APPLICATION_CREDENTIALS with path to service account JSON:\n" +
			"   export GOOGLE_APPLICATION_CREDENTIALS=/path/to/service-account-key.json\n\n" +
			"2. Export GOOGLE_CREDENTIALS with inline JSON:\n" +
			"   export GOOGLE_CREDENTIALS='{\"type\":\"service_account\",\"project_id\":\"your-project\",...}'\n\n" +
			"3. Check that your .env file contains the credentials variables")
	}

	engine, err := ocr.NewGoogleVisionEngine(ctx)
	if err != nil {
		if errors.Is(err, ocr.ErrMissingCredentials) {
			log.Error().
				Err(err).
				Msg("Google Cloud credentials validation failed")
			return nil, fmt.Errorf("Google Cloud credentials validation failed. Please verify:\n\n"+
				"1. Credentials file exists and is readable\n"+
				"2. JSON format is valid\n"+
				"3. Service account has proper permissions\n\n"+
				"Original error: %w", err)
		}
		log.Error().
			Err(err).
			Msg("Failed to create recognition engine")
		return nil, fmt.Errorf("failed to create recognition engine: %w", err)
	}

	log.Debug().Msg("Recognition engine created successfully")
	return engine, nil
}

// handleEngineError provides user-friendly error messages for recognition failures
func handleEngineError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Text recognition failed")

	errStr := err.Error()

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("processing timed out. Try increasing --timeout or processing a smaller file")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("processing was canceled")
	case errors.Is(err, ocr.ErrFileTooLarge):
		return fmt.Errorf("input file is too large (maximum 20MB). Try compressing or splitting the file")
	case errors.Is(err, ocr.ErrTooManyPages):
		return fmt.Errorf("PDF has too many pages (maximum 5 pages). Try splitting into smaller files")
	case errors.Is(err, ocr.ErrInvalidInput):
		return fmt.Errorf("invalid or corrupted input file. Please check the file integrity")
	case errors.Is(err, ocr.ErrEmptyDocument):
		return fmt.Errorf("no readable text found in the document. The scan may be too blurry or contain only graphics")
	case strings.Contains(errStr, "Unauthenticated") ||
		strings.Contains(errStr, "invalid_grant") ||
		strings.Contains(errStr, "auth:"):
		return fmt.Errorf("Google Cloud authentication failed. Please check your credentials:\n\n"+
			"1. Set GOOGLE_APPLICATION_CREDENTIALS to your service account JSON file path\n"+
			"2. Or set GOOGLE_CREDENTIALS with inline JSON\n"+
			"3. Ensure the service account has 'Cloud Vision API User' role\n\n"+
			"Original error: %v", err)
	case strings.Contains(errStr, "PERMISSION_DENIED") ||
		strings.Contains(errStr, "forbidden"):
		return fmt.Errorf("permission denied. Please ensure your Google Cloud service account has the 'Cloud Vision API User' role")
	case strings.Contains(errStr, "QUOTA_EXCEEDED") ||
		strings.Contains(errStr, "quota"):
		return fmt.Errorf("Google Cloud Vision API quota exceeded. Check your project quotas in the Google Cloud Console")
	case errors.Is(err, ocr.ErrRecognitionFailed):
		return fmt.Errorf("text recognition failed. This may be due to network issues, API quota limits, or service unavailability: %w", err)
	default:
		return fmt.Errorf("text recognition failed: %w", err)
	}
}

// writeScanOutput formats and writes the scan result
func writeScanOutput(output ScanOutput, outputPath string, jsonOutput bool, log zerolog.Logger) error {
	var outputData []byte
	var err error

	if jsonOutput {
		outputData, err = json.MarshalIndent(output, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("Failed to marshal JSON output")
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
	} else {
		outputData = []byte(formatScanText(output))
	}

	return writeOutput(outputData, outputPath, jsonOutput, log)
}

// formatScanText renders a human-readable summary of the scan
func formatScanText(output ScanOutput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("=== Scan Results for %s ===\n", output.FileName))
	if output.OCR != nil {
		b.WriteString(fmt.Sprintf("Pages processed: %d\n", output.OCR.PageCount))
		b.WriteString(fmt.Sprintf("OCR confidence: %.1f%%\n", output.OCR.Confidence*100))
		if len(output.OCR.LanguageCodes) > 0 {
			b.WriteString(fmt.Sprintf("Languages: %s\n", strings.Join(output.OCR.LanguageCodes, ", ")))
		}
		b.WriteString(fmt.Sprintf("Recognition time: %s\n", output.OCR.ProcessingDuration))
	}

	b.WriteString(fmt.Sprintf("\nSections detected: %d (confidence %.2f)\n", len(output.Classification.Sections), output.Classification.Confidence))
	for _, section := range output.Classification.Sections {
		title := section.Title
		if title == "" {
			title = "(no header)"
		}
		b.WriteString(fmt.Sprintf("  %-16s %-32s confidence %.2f\n", section.Type, title, section.Confidence))
	}
	for _, warning := range output.Classification.Warnings {
		b.WriteString(fmt.Sprintf("  warning: %s\n", warning))
	}

	b.WriteString(fmt.Sprintf("\nExtraction confidence: %.2f\n", output.Extraction.Confidence))
	data := output.Extraction.Data
	if data.Personal.Name != "" {
		b.WriteString(fmt.Sprintf("Name: %s\n", data.Personal.Name))
	}
	if data.Personal.Email != "" {
		b.WriteString(fmt.Sprintf("Email: %s\n", data.Personal.Email))
	}
	if data.Personal.Phone != "" {
		b.WriteString(fmt.Sprintf("Phone: %s\n", data.Personal.Phone))
	}
	b.WriteString(fmt.Sprintf("Experience entries: %d\n", len(data.Experience)))
	b.WriteString(fmt.Sprintf("Education entries: %d\n", len(data.Education)))
	b.WriteString(fmt.Sprintf("Technical skills: %d, soft skills: %d, languages: %d\n",
		len(data.Skills.Technical), len(data.Skills.Soft), len(data.Skills.Languages)))
	for _, issue := range output.Extraction.Issues {
		b.WriteString(fmt.Sprintf("  issue [%s] %s: %s\n", issue.Severity, issue.Field, issue.Issue))
	}

	return b.String()
}

// writeOutput writes data to the output file or stdout
func writeOutput(outputData []byte, outputPath string, jsonOutput bool, log zerolog.Logger) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
			log.Error().
				Err(err).
				Str("output_file", outputPath).
				Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}

		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(outputData)).
			Msg("Results written to file")
		return nil
	}

	if _, err := os.Stdout.Write(outputData); err != nil {
		log.Error().Err(err).Msg("Failed to write to stdout")
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !jsonOutput {
		fmt.Println()
	}
	return nil
}
