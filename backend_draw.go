package tilesr

import (
	"context"
	"image"

	"golang.org/x/image/draw"
)

// DrawBackend upscales tiles with a golang.org/x/image/draw scaler,
// draw.CatmullRom when Scaler is nil.
type DrawBackend struct {
	Scaler draw.Scaler
}

// Upscale implements Backend.
func (db DrawBackend) Upscale(ctx context.Context, in *Tensor, scale int) (*Tensor, error) {
	if err := checkBackendInput(in, scale); err != nil {
		return nil, err
	}
	scaler := db.Scaler
	if scaler == nil {
		scaler = draw.CatmullRom
	}
	src := tensorToRGBA64(in)
	dst := image.NewRGBA64(image.Rect(0, 0, in.Width*scale, in.Height*scale))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return rgba64ToTensor(dst, in.Layout), nil
}
