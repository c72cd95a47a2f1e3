package tilesr

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// NewImage allocates a black image.
func NewImage(width, height int, order ChannelOrder) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Order:  order,
		Pix:    make([]uint8, width*height*3),
	}
}

// Validate checks dimensions and buffer length.
func (img *Image) Validate() error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, img.Width, img.Height)
	}
	if len(img.Pix) != img.Width*img.Height*3 {
		return fmt.Errorf("%w: %d bytes for %dx%dx3", ErrInvalidImage, len(img.Pix), img.Width, img.Height)
	}
	return nil
}

// Stride returns the number of bytes per row.
func (img *Image) Stride() int {
	return img.Width * 3
}

// RGB returns the pixel at (x, y) in RGB order regardless of the storage order.
func (img *Image) RGB(x, y int) (r, g, b uint8) {
	i := (y*img.Width + x) * 3
	r, g, b = img.Pix[i], img.Pix[i+1], img.Pix[i+2]
	if img.Order == OrderBGR {
		r, b = b, r
	}
	return r, g, b
}

// Convert returns a copy of img stored in the given channel order.
func (img *Image) Convert(order ChannelOrder) *Image {
	out := &Image{Width: img.Width, Height: img.Height, Order: order, Pix: make([]uint8, len(img.Pix))}
	copy(out.Pix, img.Pix)
	if order == img.Order {
		return out
	}
	for i := 0; i+2 < len(out.Pix); i += 3 {
		out.Pix[i], out.Pix[i+2] = out.Pix[i+2], out.Pix[i]
	}
	return out
}

// Crop copies the region r into a new image of r.W×r.H.
// The rectangle must lie within the image bounds.
func (img *Image) Crop(r Rect) *Image {
	out := NewImage(r.W, r.H, img.Order)
	rowSize := r.W * 3
	stride := img.Stride()
	for y := 0; y < r.H; y++ {
		src := img.Pix[(r.Y+y)*stride+r.X*3:]
		copy(out.Pix[y*rowSize:(y+1)*rowSize], src[:rowSize])
	}
	return out
}

// FromImage converts any image.Image to an RGB Image.
// Alpha is dropped without compositing, colors are taken unpremultiplied.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	nrgba, ok := src.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}

	nb := nrgba.Bounds()
	out := NewImage(b.Dx(), b.Dy(), OrderRGB)
	for y := 0; y < out.Height; y++ {
		row := nrgba.Pix[nrgba.PixOffset(nb.Min.X, nb.Min.Y+y):]
		dst := out.Pix[y*out.Stride():]
		for x := 0; x < out.Width; x++ {
			dst[x*3] = row[x*4]
			dst[x*3+1] = row[x*4+1]
			dst[x*3+2] = row[x*4+2]
		}
	}
	return out
}

// ToRGBA converts img to an opaque *image.RGBA.
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := img.RGB(x, y)
			out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xFF})
		}
	}
	return out
}
