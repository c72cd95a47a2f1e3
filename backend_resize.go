package tilesr

import (
	"context"
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

// ResizeBackend upscales tiles with github.com/nfnt/resize filters.
// Samples are carried as 16-bit RGBA to keep precision through the filter.
type ResizeBackend struct {
	Filter resize.InterpolationFunction
}

// Upscale implements Backend.
func (rb ResizeBackend) Upscale(ctx context.Context, in *Tensor, scale int) (*Tensor, error) {
	if err := checkBackendInput(in, scale); err != nil {
		return nil, err
	}
	src := tensorToRGBA64(in)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dstImg := resize.Resize(uint(in.Width*scale), uint(in.Height*scale), src, rb.Filter)
	dst, ok := dstImg.(*image.RGBA64)
	if !ok {
		return nil, fmt.Errorf("unexpected resize result %T", dstImg)
	}
	return rgba64ToTensor(dst, in.Layout), nil
}

func tensorToRGBA64(t *Tensor) *image.RGBA64 {
	img := image.NewRGBA64(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < t.Width; x++ {
			off := x * 8
			for c := 0; c < 3; c++ {
				v := uint16(clamp01(t.At(c, y, x))*65535.0 + 0.5)
				row[off+c*2] = uint8(v >> 8)
				row[off+c*2+1] = uint8(v)
			}
			row[off+6], row[off+7] = 0xFF, 0xFF
		}
	}
	return img
}

func rgba64ToTensor(img *image.RGBA64, l Layout) *Tensor {
	b := img.Bounds()
	t := NewTensor(b.Dx(), b.Dy(), l)
	for y := 0; y < t.Height; y++ {
		row := img.Pix[(y+b.Min.Y-img.Rect.Min.Y)*img.Stride+(b.Min.X-img.Rect.Min.X)*8:]
		for x := 0; x < t.Width; x++ {
			off := x * 8
			for c := 0; c < 3; c++ {
				v := uint16(row[off+c*2])<<8 | uint16(row[off+c*2+1])
				t.Set(c, y, x, float32(v)/65535.0)
			}
		}
	}
	return t
}
