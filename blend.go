package tilesr

import (
	"errors"
	"fmt"
	"sync"
)

// Accumulator sums upscaled tiles into a full-resolution buffer and counts
// how many tiles covered every output pixel.
//
// Overlapping regions are averaged uniformly: every covering tile contributes
// with weight 1. Accumulator is safe for concurrent use.
type Accumulator struct {
	mu     sync.Mutex
	scale  int
	width  int // output width
	height int // output height
	acc    []float32
	weight []float32
}

// NewAccumulator allocates zeroed buffers for a srcW×srcH source upscaled by scale.
func NewAccumulator(srcW, srcH, scale int) *Accumulator {
	w, h := srcW*scale, srcH*scale
	return &Accumulator{
		scale:  scale,
		width:  w,
		height: h,
		acc:    make([]float32, w*h*3),
		weight: make([]float32, w*h),
	}
}

// Size returns the output dimensions.
func (a *Accumulator) Size() (width, height int) {
	return a.width, a.height
}

// Accumulate adds p at the output footprint of the source tile r and
// increments the weight of every covered pixel.
// Buffers are left untouched when p does not match the footprint.
func (a *Accumulator) Accumulate(r Rect, p *Patch) error {
	if p == nil {
		return &BackendError{Tile: r, Err: errors.New("missing tile output")}
	}
	if p.Width != r.W*a.scale || p.Height != r.H*a.scale || len(p.Pix) != p.Width*p.Height*3 {
		return &BackendError{Tile: r, Err: fmt.Errorf("output %dx%d (%d values) does not match footprint %dx%d",
			p.Width, p.Height, len(p.Pix), r.W*a.scale, r.H*a.scale)}
	}
	ox, oy := r.X*a.scale, r.Y*a.scale
	if ox < 0 || oy < 0 || ox+p.Width > a.width || oy+p.Height > a.height {
		return fmt.Errorf("%w: tile %s outside %dx%d output", ErrInvalidTiling, r, a.width, a.height)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	rowSize := p.Width * 3
	for y := 0; y < p.Height; y++ {
		base := (oy+y)*a.width + ox
		src := p.Pix[y*rowSize : (y+1)*rowSize]
		dst := a.acc[base*3 : base*3+rowSize]
		for i, v := range src {
			dst[i] += v
		}
		wrow := a.weight[base : base+p.Width]
		for i := range wrow {
			wrow[i]++
		}
	}
	return nil
}

// Weight returns the number of tiles that covered output pixel (x, y).
func (a *Accumulator) Weight(x, y int) float32 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.weight[y*a.width+x]
}

// MinWeight returns the smallest weight over the whole output.
func (a *Accumulator) MinWeight() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.weight) == 0 {
		return 0
	}
	m := a.weight[0]
	for _, w := range a.weight[1:] {
		if w < m {
			m = w
		}
	}
	return m
}

// Finalize divides accumulated color by weight, clamps to [0, 255] and
// quantizes to an 8-bit image in the requested channel order.
// Uncovered pixels keep weight 1, so they come out black.
func (a *Accumulator) Finalize(order ChannelOrder) *Image {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := NewImage(a.width, a.height, order)
	for i, w := range a.weight {
		if w == 0 {
			w = 1
		}
		r := clampToByte(a.acc[i*3] / w)
		g := clampToByte(a.acc[i*3+1] / w)
		b := clampToByte(a.acc[i*3+2] / w)
		if order == OrderBGR {
			r, b = b, r
		}
		out.Pix[i*3], out.Pix[i*3+1], out.Pix[i*3+2] = r, g, b
	}
	return out
}
