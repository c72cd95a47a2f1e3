package tilesr

import (
	"fmt"
	"slices"
)

// Limits bounds the source and output dimensions of a single upscale operation.
// Zero fields fall back to the defaults.
type Limits struct {
	MaxDimension int // longest source side, px
	MaxOutput    int // longest output side, px
}

// DefaultLimits fit a CPU-only serverless function.
var DefaultLimits = Limits{
	MaxDimension: defaultMaxDimension,
	MaxOutput:    defaultMaxOutput,
}

// Validate checks source dimensions and the projected output dimensions.
// It must run before any full-resolution buffer is allocated.
func (l Limits) Validate(width, height, scale int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, width, height)
	}
	maxDim := l.MaxDimension
	if maxDim <= 0 {
		maxDim = defaultMaxDimension
	}
	maxOut := l.MaxOutput
	if maxOut <= 0 {
		maxOut = defaultMaxOutput
	}

	side := max(width, height)
	if side > maxDim {
		return fmt.Errorf("%w: %dx%d exceeds %dpx, reduce the image first", ErrImageTooLarge, width, height, maxDim)
	}
	if side*scale > maxOut {
		return fmt.Errorf("%w: %dx%d exceeds %dpx, use a smaller scale or image",
			ErrOutputTooLarge, width*scale, height*scale, maxOut)
	}
	return nil
}

// ValidateScale checks that scale is one of supported, or of 2 and 4 if supported is empty.
func ValidateScale(scale int, supported []int) error {
	if len(supported) == 0 {
		supported = defaultScales
	}
	if scale < 1 || !slices.Contains(supported, scale) {
		return fmt.Errorf("%w: %d, supported %v", ErrInvalidScale, scale, supported)
	}
	return nil
}
