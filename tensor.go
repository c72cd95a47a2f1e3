package tilesr

import (
	"errors"
	"fmt"
)

// NewTensor allocates a zeroed 3-channel tensor.
func NewTensor(width, height int, l Layout) *Tensor {
	return &Tensor{
		Channels: 3,
		Height:   height,
		Width:    width,
		Layout:   l,
		Data:     make([]float32, width*height*3),
	}
}

// Validate checks the channel count and buffer length.
func (t *Tensor) Validate() error {
	if t == nil {
		return errors.New("nil tensor")
	}
	if t.Channels != 3 {
		return fmt.Errorf("tensor has %d channels, want 3", t.Channels)
	}
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("tensor dimensions %dx%d", t.Width, t.Height)
	}
	if len(t.Data) != t.Channels*t.Width*t.Height {
		return fmt.Errorf("tensor data length %d, want %d", len(t.Data), t.Channels*t.Width*t.Height)
	}
	return nil
}

// Offset returns the index of channel c at (x, y) in Data.
func (t *Tensor) Offset(c, y, x int) int {
	if t.Layout.ChannelFirst {
		return (c*t.Height+y)*t.Width + x
	}
	return (y*t.Width+x)*t.Channels + c
}

// At returns the value of channel c at (x, y).
func (t *Tensor) At(c, y, x int) float32 {
	return t.Data[t.Offset(c, y, x)]
}

// Set assigns the value of channel c at (x, y).
func (t *Tensor) Set(c, y, x int, v float32) {
	t.Data[t.Offset(c, y, x)] = v
}

// Plane copies channel c into a new row-major buffer.
func (t *Tensor) Plane(c int) []float32 {
	n := t.Width * t.Height
	out := make([]float32, n)
	if t.Layout.ChannelFirst {
		copy(out, t.Data[c*n:(c+1)*n])
		return out
	}
	for i := range out {
		out[i] = t.Data[i*t.Channels+c]
	}
	return out
}

// SetPlane overwrites channel c from a row-major buffer.
func (t *Tensor) SetPlane(c int, plane []float32) {
	n := t.Width * t.Height
	if t.Layout.ChannelFirst {
		copy(t.Data[c*n:(c+1)*n], plane)
		return
	}
	for i := 0; i < n; i++ {
		t.Data[i*t.Channels+c] = plane[i]
	}
}

// ToTensor converts an 8-bit image into the backend layout, scaling values to [0, 1].
func ToTensor(img *Image, l Layout) *Tensor {
	t := NewTensor(img.Width, img.Height, l)
	n := img.Width * img.Height
	swap := img.Order != l.Order
	for i := 0; i < n; i++ {
		c0, c1, c2 := img.Pix[i*3], img.Pix[i*3+1], img.Pix[i*3+2]
		if swap {
			c0, c2 = c2, c0
		}
		v0, v1, v2 := float32(c0)/255.0, float32(c1)/255.0, float32(c2)/255.0
		if l.ChannelFirst {
			t.Data[i] = v0
			t.Data[n+i] = v1
			t.Data[2*n+i] = v2
		} else {
			t.Data[i*3] = v0
			t.Data[i*3+1] = v1
			t.Data[i*3+2] = v2
		}
	}
	return t
}

// FromTensor converts a backend tensor into an RGB channel-last patch in the [0, 255] range.
// Values are not clamped, so overlapping tiles blend before quantization.
func FromTensor(t *Tensor) (*Patch, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	n := t.Width * t.Height
	p := &Patch{Width: t.Width, Height: t.Height, Pix: make([]float32, n*3)}
	r, b := 0, 2
	if t.Layout.Order == OrderBGR {
		r, b = 2, 0
	}
	for i := 0; i < n; i++ {
		var v [3]float32
		if t.Layout.ChannelFirst {
			v[0], v[1], v[2] = t.Data[i], t.Data[n+i], t.Data[2*n+i]
		} else {
			v[0], v[1], v[2] = t.Data[i*3], t.Data[i*3+1], t.Data[i*3+2]
		}
		p.Pix[i*3] = v[r] * 255.0
		p.Pix[i*3+1] = v[1] * 255.0
		p.Pix[i*3+2] = v[b] * 255.0
	}
	return p, nil
}

// Image quantizes the patch to an 8-bit image in the given order.
func (p *Patch) Image(order ChannelOrder) *Image {
	out := NewImage(p.Width, p.Height, order)
	for i := 0; i+2 < len(p.Pix); i += 3 {
		r, g, b := clampToByte(p.Pix[i]), clampToByte(p.Pix[i+1]), clampToByte(p.Pix[i+2])
		if order == OrderBGR {
			r, b = b, r
		}
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = r, g, b
	}
	return out
}
