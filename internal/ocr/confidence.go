package ocr

// RescaleConfidence normalizes an engine-reported confidence to [0,1].
// Tesseract-style engines report percentages (0–100); Vision already reports
// a fraction. Values above 1 are treated as percentages, everything is
// clamped so downstream consumers can rely on the bound.
func RescaleConfidence(v float64) float64 {
	if v > 1 {
		v = v / 100
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
