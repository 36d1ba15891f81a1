package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRescaleConfidence(t *testing.T) {
	// Fractions pass through.
	assert.Equal(t, 0.87, RescaleConfidence(0.87))
	assert.Equal(t, 0.0, RescaleConfidence(0))
	assert.Equal(t, 1.0, RescaleConfidence(1))

	// Percentage-style values are rescaled.
	assert.Equal(t, 0.95, RescaleConfidence(95))
	assert.Equal(t, 1.0, RescaleConfidence(100))

	// Out-of-range values are clamped.
	assert.Equal(t, 0.0, RescaleConfidence(-0.3))
	assert.Equal(t, 1.0, RescaleConfidence(250))
}
