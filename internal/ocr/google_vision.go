package ocr

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

const (
	// MaxFileSizeBytes is the maximum input size for synchronous processing (20MB)
	MaxFileSizeBytes = 20 * 1024 * 1024

	// MaxPagesSync is the maximum number of PDF pages for synchronous processing
	MaxPagesSync = 5
)

// GoogleVisionEngine implements Engine using Google Cloud Vision API.
type GoogleVisionEngine struct {
	client *vision.ImageAnnotatorClient
}

// NewGoogleVisionEngine creates an engine with credentials from the environment.
func NewGoogleVisionEngine(ctx context.Context) (Engine, error) {
	const op = "NewGoogleVisionEngine"

	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapEngineError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapEngineError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		// Try default credentials as fallback
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapEngineError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return &GoogleVisionEngine{client: client}, nil
}

// NewGoogleVisionEngineWithClient creates an engine with an explicit client (for testing).
func NewGoogleVisionEngineWithClient(client *vision.ImageAnnotatorClient) Engine {
	return &GoogleVisionEngine{client: client}
}

// RecognizeImage runs document text detection over a single image, the path
// used for camera captures and photo uploads.
func (g *GoogleVisionEngine) RecognizeImage(ctx context.Context, image io.Reader) (*Result, error) {
	const op = "RecognizeImage"
	startTime := time.Now()

	imageBytes, err := io.ReadAll(image)
	if err != nil {
		return nil, WrapEngineError(op, err, "failed to read image data")
	}
	if len(imageBytes) == 0 {
		return nil, WrapEngineError(op, ErrInvalidInput, "empty image")
	}
	if len(imageBytes) > MaxFileSizeBytes {
		return nil, WrapEngineError(op, ErrFileTooLarge, fmt.Sprintf("file size: %d bytes", len(imageBytes)))
	}

	resp, err := g.client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageBytes},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	})
	if err != nil {
		return nil, WrapEngineError(op, ErrRecognitionFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return nil, WrapEngineError(op, ErrRecognitionFailed, "no response from Vision API")
	}

	annotation := resp.Responses[0]
	if annotation.Error != nil {
		return nil, WrapEngineError(op, ErrRecognitionFailed, fmt.Sprintf("Vision API error: %s", annotation.Error.Message))
	}
	if annotation.FullTextAnnotation == nil || strings.TrimSpace(annotation.FullTextAnnotation.Text) == "" {
		return nil, WrapEngineError(op, ErrEmptyDocument, "")
	}

	result := &Result{
		Text:       annotation.FullTextAnnotation.Text,
		PageCount:  1,
		Confidence: annotationConfidence(annotation),
	}
	for _, page := range annotation.FullTextAnnotation.Pages {
		if page.Property == nil {
			continue
		}
		for _, lang := range page.Property.DetectedLanguages {
			if lang.LanguageCode != "" {
				result.LanguageCodes = appendUnique(result.LanguageCodes, lang.LanguageCode)
			}
		}
	}

	result.ProcessedAt = time.Now()
	result.ProcessingDuration = result.ProcessedAt.Sub(startTime)
	return result, nil
}

// RecognizePDF runs document text detection over an uploaded PDF.
func (g *GoogleVisionEngine) RecognizePDF(ctx context.Context, pdf io.Reader) (*Result, error) {
	const op = "RecognizePDF"
	startTime := time.Now()

	pdfBytes, err := io.ReadAll(pdf)
	if err != nil {
		return nil, WrapEngineError(op, err, "failed to read PDF data")
	}
	if len(pdfBytes) > MaxFileSizeBytes {
		return nil, WrapEngineError(op, ErrFileTooLarge, fmt.Sprintf("file size: %d bytes", len(pdfBytes)))
	}
	if len(pdfBytes) < 4 || string(pdfBytes[:4]) != "%PDF" {
		return nil, WrapEngineError(op, ErrInvalidInput, "missing PDF header")
	}

	resp, err := g.client.BatchAnnotateFiles(ctx, &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  pdfBytes,
					MimeType: "application/pdf",
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	})
	if err != nil {
		return nil, WrapEngineError(op, ErrRecognitionFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return nil, WrapEngineError(op, ErrRecognitionFailed, "no response from Vision API")
	}
	fileResp := resp.Responses[0]
	if fileResp.Error != nil {
		return nil, WrapEngineError(op, ErrRecognitionFailed, fmt.Sprintf("Vision API error: %s", fileResp.Error.Message))
	}

	result, err := g.collectPages(fileResp)
	if err != nil {
		return nil, WrapEngineError(op, err, "failed to process Vision API response")
	}

	result.ProcessedAt = time.Now()
	result.ProcessingDuration = result.ProcessedAt.Sub(startTime)
	return result, nil
}

// collectPages aggregates text, confidence and languages across PDF pages in
// reading order.
func (g *GoogleVisionEngine) collectPages(fileResp *visionpb.AnnotateFileResponse) (*Result, error) {
	if len(fileResp.Responses) == 0 {
		return nil, ErrEmptyDocument
	}
	pageCount := len(fileResp.Responses)
	if pageCount > MaxPagesSync {
		return nil, fmt.Errorf("%w: document has %d pages", ErrTooManyPages, pageCount)
	}

	var allText strings.Builder
	var confidenceSum float64
	var confidenceCount int
	var languages []string

	for pageIdx, page := range fileResp.Responses {
		if page.Error != nil {
			return nil, fmt.Errorf("error processing page %d: %s", pageIdx+1, page.Error.Message)
		}
		if page.FullTextAnnotation == nil {
			continue
		}
		if pageIdx > 0 {
			allText.WriteString("\n\n")
		}
		allText.WriteString(page.FullTextAnnotation.Text)

		for _, textAnnotation := range page.TextAnnotations {
			if textAnnotation.Confidence > 0 {
				confidenceSum += float64(textAnnotation.Confidence)
				confidenceCount++
			}
		}
		for _, pageInfo := range page.FullTextAnnotation.Pages {
			if pageInfo.Property == nil {
				continue
			}
			for _, lang := range pageInfo.Property.DetectedLanguages {
				if lang.LanguageCode != "" {
					languages = appendUnique(languages, lang.LanguageCode)
				}
			}
		}
	}

	text := allText.String()
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	var confidence float64
	if confidenceCount > 0 {
		confidence = confidenceSum / float64(confidenceCount)
	}

	return &Result{
		Text:          text,
		PageCount:     pageCount,
		Confidence:    RescaleConfidence(confidence),
		LanguageCodes: languages,
	}, nil
}

// annotationConfidence averages the positive confidences on an image annotation.
func annotationConfidence(annotation *visionpb.AnnotateImageResponse) float64 {
	var sum float64
	var count int
	for _, page := range annotation.FullTextAnnotation.Pages {
		if page.Confidence > 0 {
			sum += float64(page.Confidence)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return RescaleConfidence(sum / float64(count))
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

// Close closes the underlying Vision client.
func (g *GoogleVisionEngine) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
