package tilesr

import (
	"context"
	"fmt"
)

func checkBackendInput(in *Tensor, scale int) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if scale < 1 {
		return fmt.Errorf("scale %d", scale)
	}
	return nil
}

// NearestBackend replicates every input sample into a scale×scale block.
// Tiling it with any overlap gives the same result as whole-image inference.
type NearestBackend struct{}

// Upscale implements Backend.
func (NearestBackend) Upscale(ctx context.Context, in *Tensor, scale int) (*Tensor, error) {
	if err := checkBackendInput(in, scale); err != nil {
		return nil, err
	}
	out := NewTensor(in.Width*scale, in.Height*scale, in.Layout)
	for c := 0; c < in.Channels; c++ {
		for y := 0; y < out.Height; y++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			sy := y / scale
			for x := 0; x < out.Width; x++ {
				out.Set(c, y, x, in.At(c, sy, x/scale))
			}
		}
	}
	return out, nil
}

// KernelBackend resamples every channel with a separable interpolation kernel.
type KernelBackend struct {
	Interpolation Interpolation
}

// Upscale implements Backend.
func (k KernelBackend) Upscale(ctx context.Context, in *Tensor, scale int) (*Tensor, error) {
	if err := checkBackendInput(in, scale); err != nil {
		return nil, err
	}
	def := kernelForInterpolation(k.Interpolation)
	out := NewTensor(in.Width*scale, in.Height*scale, in.Layout)
	for c := 0; c < in.Channels; c++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		plane := resamplePlane(in.Plane(c), in.Width, in.Height, out.Width, out.Height, def)
		out.SetPlane(c, plane)
	}
	return out, nil
}
