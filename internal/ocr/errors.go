package ocr

import (
	"errors"
	"fmt"
)

// Common recognition errors
var (
	// ErrFileTooLarge is returned when the input exceeds the maximum size
	// for synchronous processing (20MB with Google Cloud Vision).
	ErrFileTooLarge = errors.New("file size exceeds the maximum limit (20MB)")

	// ErrInvalidInput is returned when the data is not a valid image or PDF.
	ErrInvalidInput = errors.New("invalid or corrupted input document")

	// ErrRecognitionFailed is returned when the engine fails to process the document.
	ErrRecognitionFailed = errors.New("text recognition failed")

	// ErrMissingCredentials is returned when neither GOOGLE_APPLICATION_CREDENTIALS
	// nor GOOGLE_CREDENTIALS environment variables are configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")

	// ErrTooManyPages is returned when a PDF has too many pages for
	// synchronous processing (5 with Google Cloud Vision).
	ErrTooManyPages = errors.New("PDF has too many pages (maximum 5 pages for synchronous processing)")

	// ErrEmptyDocument is returned when the document contains no readable text.
	ErrEmptyDocument = errors.New("document contains no readable text")
)

// EngineError wraps errors with additional context about the recognition failure.
type EngineError struct {
	// Op is the operation that failed (e.g., "RecognizeImage").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *EngineError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapEngineError wraps an error as an EngineError if it isn't already one.
func WrapEngineError(op string, err error, details string) error {
	if err == nil {
		return nil
	}
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return err
	}
	return &EngineError{Op: op, Err: err, Details: details}
}
