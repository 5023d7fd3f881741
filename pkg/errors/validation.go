package errors

import (
	"strings"
	"unicode"
)

// MaxSamples is the largest rays-per-pixel value the renderer accepts.
const MaxSamples = 16

// ValidatePrefix validates an output filename prefix.
//
// The prefix is prepended verbatim to every output filename and written
// unescaped into the scene manifest, so it must not contain quotes or
// control characters. It may contain directory separators.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidConfig, "filename prefix cannot be empty")
	}

	const maxPrefixLength = 255
	if len(prefix) > maxPrefixLength {
		return New(ErrCodeInvalidConfig, "filename prefix too long (max %d characters)", maxPrefixLength)
	}

	for _, r := range prefix {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "filename prefix contains invalid control characters")
		}
	}

	if strings.ContainsRune(prefix, '"') {
		return New(ErrCodeInvalidConfig, "filename prefix cannot contain quotes")
	}

	return nil
}

// ValidateSamples checks the rays-per-pixel setting.
func ValidateSamples(n int) error {
	if n < 1 || n > MaxSamples {
		return New(ErrCodeInvalidConfig, "rays per pixel must be between 1 and %d, got %d", MaxSamples, n)
	}
	return nil
}

// ValidateLayer checks a visibility layer index.
func ValidateLayer(layer, numLayers int) error {
	if layer < 0 || layer >= numLayers {
		return New(ErrCodeInvalidLayer, "layer %d out of range (0-%d)", layer, numLayers-1)
	}
	return nil
}

// ValidateUnit checks that a colour component lies in [0,1].
func ValidateUnit(name string, v float64) error {
	if v < 0 || v > 1 {
		return New(ErrCodeInvalidConfig, "%s must be between 0 and 1, got %g", name, v)
	}
	return nil
}
