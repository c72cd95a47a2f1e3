package tilesr

import (
	"errors"
	"fmt"
)

var (
	// ErrImageTooLarge is returned when the source exceeds the maximum dimension.
	ErrImageTooLarge = errors.New("image too large")
	// ErrOutputTooLarge is returned when the upscaled result would exceed the maximum output dimension.
	ErrOutputTooLarge = errors.New("output too large")
	// ErrInvalidScale is returned for scale factors outside the supported set.
	ErrInvalidScale = errors.New("invalid scale")
	// ErrBackend is matched by every failure attributed to the backend.
	ErrBackend = errors.New("backend error")
	// ErrInvalidImage is returned for empty or inconsistent pixel buffers.
	ErrInvalidImage = errors.New("invalid image")
	// ErrInvalidTiling is returned for non-positive tile sizes or negative overlap.
	ErrInvalidTiling = errors.New("invalid tiling")
)

// BackendError describes a tile whose inference failed or produced a malformed result.
type BackendError struct {
	Tile Rect
	Err  error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend: tile %s: %v", e.Tile, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is reports ErrBackend as a match, so callers can use errors.Is(err, ErrBackend).
func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}
