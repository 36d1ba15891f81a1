// Package ocr is the boundary to the text-recognition engine.
//
// The engine is a collaborator, not part of the scanning core: it supplies
// raw recognized text plus an engine-reported confidence, and everything
// downstream (section classification, field extraction) computes its own
// heuristic confidences from the text alone. Engine confidences are rescaled
// to [0,1] at this boundary before anyone else sees them.
//
// The shipped implementation uses Google Cloud Vision document text
// detection. Required environment:
//   - GOOGLE_APPLICATION_CREDENTIALS: path to a service account JSON file, OR
//   - GOOGLE_CREDENTIALS: inline JSON credentials string
package ocr

import (
	"context"
	"io"
	"time"
)

// Engine is the interface the scanning pipeline consumes.
type Engine interface {
	// RecognizeImage extracts text from a photographed or uploaded image
	// (JPEG, PNG, TIFF).
	RecognizeImage(ctx context.Context, image io.Reader) (*Result, error)

	// RecognizePDF extracts text from a PDF document.
	RecognizePDF(ctx context.Context, pdf io.Reader) (*Result, error)
}

// Result contains the recognition output with metadata.
type Result struct {
	// Text is the recognized text in reading order.
	Text string `json:"text"`

	// PageCount is the number of pages processed (1 for images).
	PageCount int `json:"page_count"`

	// Confidence is the engine-reported recognition confidence, already
	// rescaled to [0,1].
	Confidence float64 `json:"confidence"`

	// LanguageCodes are the languages the engine detected.
	LanguageCodes []string `json:"language_codes,omitempty"`

	// ProcessedAt is when recognition completed.
	ProcessedAt time.Time `json:"processed_at"`

	// ProcessingDuration is how long recognition took.
	ProcessingDuration time.Duration `json:"processing_duration"`
}
