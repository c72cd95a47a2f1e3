package tilesr

import "fmt"

// Tiling describes how a source image is split into overlapping tiles.
type Tiling struct {
	TileSize int
	Overlap  int
	// MinStep is the smallest distance between tile origins, DefaultMinStep if zero.
	// It is capped at TileSize so that tiny tiles still cover the image.
	MinStep int
}

// Step returns the distance between consecutive tile origins.
func (t Tiling) Step() int {
	minStep := t.MinStep
	if minStep <= 0 {
		minStep = DefaultMinStep
	}
	if minStep > t.TileSize {
		minStep = t.TileSize
	}
	return max(t.TileSize-t.Overlap, minStep)
}

// Validate checks tile size and overlap.
func (t Tiling) Validate() error {
	if t.TileSize <= 0 {
		return fmt.Errorf("%w: tile size %d", ErrInvalidTiling, t.TileSize)
	}
	if t.Overlap < 0 {
		return fmt.Errorf("%w: overlap %d", ErrInvalidTiling, t.Overlap)
	}
	return nil
}

// Partition returns tiles covering [0,width)×[0,height) in row-major order.
// Edge tiles are clipped to the image and may be smaller than TileSize.
func (t Tiling) Partition(width, height int) ([]Rect, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, width, height)
	}
	step := t.Step()
	nx := (width + step - 1) / step
	ny := (height + step - 1) / step
	tiles := make([]Rect, 0, nx*ny)
	for y := 0; y < height; y += step {
		h := min(t.TileSize, height-y)
		for x := 0; x < width; x += step {
			tiles = append(tiles, Rect{X: x, Y: y, W: min(t.TileSize, width-x), H: h})
		}
	}
	return tiles, nil
}

// Partition splits a width×height image into overlapping tiles using DefaultMinStep.
func Partition(width, height, tileSize, overlap int) ([]Rect, error) {
	return Tiling{TileSize: tileSize, Overlap: overlap}.Partition(width, height)
}
