package tilesr

import (
	"context"
	"fmt"
)

// Backend upscales a single tile.
//
// Upscale must return a tensor in the same layout as in, with 3 channels and
// spatial dimensions exactly scale times the input. Implementations used with
// Options.Workers > 1 must be safe for concurrent use.
type Backend interface {
	Upscale(ctx context.Context, in *Tensor, scale int) (*Tensor, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, in *Tensor, scale int) (*Tensor, error)

// Upscale calls f.
func (f BackendFunc) Upscale(ctx context.Context, in *Tensor, scale int) (*Tensor, error) {
	return f(ctx, in, scale)
}

// Inferencer runs a backend on 8-bit tiles and enforces the output shape contract.
type Inferencer struct {
	Backend Backend
	Layout  Layout
	Scale   int
}

// Infer upscales tile and returns its output as a patch ready for accumulation.
// Any backend failure or shape mismatch is reported as *BackendError.
func (inf Inferencer) Infer(ctx context.Context, tile *Image) (*Patch, error) {
	in := ToTensor(tile, inf.Layout)
	out, err := inf.Backend.Upscale(ctx, in, inf.Scale)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &BackendError{Err: err}
	}
	if err := inf.checkShape(out, tile.Width*inf.Scale, tile.Height*inf.Scale); err != nil {
		return nil, &BackendError{Err: err}
	}
	p, err := FromTensor(out)
	if err != nil {
		return nil, &BackendError{Err: err}
	}
	return p, nil
}

func (inf Inferencer) checkShape(out *Tensor, width, height int) error {
	if err := out.Validate(); err != nil {
		return err
	}
	if out.Layout != inf.Layout {
		return fmt.Errorf("output layout %+v, want %+v", out.Layout, inf.Layout)
	}
	if out.Width != width || out.Height != height {
		return fmt.Errorf("output %dx%d, want %dx%d for scale %d", out.Width, out.Height, width, height, inf.Scale)
	}
	return nil
}
