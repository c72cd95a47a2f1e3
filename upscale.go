package tilesr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Options controls tiled upscaling.
type Options struct {
	TileSize int // source pixels per tile edge
	Overlap  int // pixels shared by neighboring tiles
	MinStep  int // floor for the distance between tile origins
	Limits   Limits
	Scales   []int // supported scale factors
	// Workers bounds concurrent backend calls, 1 processes tiles sequentially.
	Workers int
	// Layout is the tensor convention of the backend.
	Layout Layout
	// Timeout bounds the whole operation when positive.
	Timeout time.Duration
	// OnTile is called after each tile has been accumulated.
	// With Workers > 1 it is called concurrently.
	OnTile func(ev TileEvent)
}

// Upscaler runs a backend over an image tile by tile.
type Upscaler struct {
	backend Backend
	opt     Options
}

// New creates an Upscaler with default options adjusted by opts.
func New(b Backend, opts ...func(o *Options)) *Upscaler {
	opt := Options{
		TileSize: DefaultTileSize,
		Overlap:  DefaultOverlap,
		MinStep:  DefaultMinStep,
		Limits:   DefaultLimits,
		Scales:   defaultScales,
		Workers:  1,
		Layout:   DefaultLayout,
	}

	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	if opt.Workers < 1 {
		opt.Workers = 1
	}

	return &Upscaler{backend: b, opt: opt}
}

// Options returns the effective options.
func (u *Upscaler) Options() Options {
	return u.opt
}

// Tiling returns the tile geometry used by Upscale.
func (u *Upscaler) Tiling() Tiling {
	return Tiling{TileSize: u.opt.TileSize, Overlap: u.opt.Overlap, MinStep: u.opt.MinStep}
}

// Upscale enlarges img by scale and returns a new image in img's channel order.
//
// Dimensions are validated before any buffer is allocated. The first failing
// tile aborts the operation, no partial result is returned.
func (u *Upscaler) Upscale(ctx context.Context, img *Image, scale int) (*Image, error) {
	if u.backend == nil {
		return nil, errors.New("backend is nil")
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateScale(scale, u.opt.Scales); err != nil {
		return nil, err
	}
	if err := u.opt.Limits.Validate(img.Width, img.Height, scale); err != nil {
		return nil, err
	}
	tiles, err := u.Tiling().Partition(img.Width, img.Height)
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}

	if u.opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.opt.Timeout)
		defer cancel()
	}

	start := time.Now()
	log := Logger()
	log.Info("upscale started",
		"width", img.Width, "height", img.Height, "scale", scale,
		"tiles", len(tiles), "workers", u.opt.Workers)

	acc := NewAccumulator(img.Width, img.Height, scale)
	inf := Inferencer{Backend: u.backend, Layout: u.opt.Layout, Scale: scale}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.opt.Workers)
	for i, r := range tiles {
		if gctx.Err() != nil {
			break
		}
		i, r := i, r
		g.Go(func() error {
			return u.processTile(gctx, inf, acc, img, r, i, len(tiles))
		})
	}
	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		log.Warn("upscale failed", "error", err, "elapsed", time.Since(start))
		return nil, err
	}

	out := acc.Finalize(img.Order)
	log.Info("upscale finished",
		"width", out.Width, "height", out.Height, "elapsed", time.Since(start))
	return out, nil
}

func (u *Upscaler) processTile(ctx context.Context, inf Inferencer, acc *Accumulator, img *Image, r Rect, i, total int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	p, err := inf.Infer(ctx, img.Crop(r))
	if err != nil {
		var be *BackendError
		if errors.As(err, &be) {
			be.Tile = r
		}
		return fmt.Errorf("tile %d/%d: %w", i+1, total, err)
	}
	if err := acc.Accumulate(r, p); err != nil {
		return fmt.Errorf("tile %d/%d: %w", i+1, total, err)
	}

	elapsed := time.Since(start)
	Logger().Debug("tile done", "index", i, "tile", r.String(), "elapsed", elapsed)
	if u.opt.OnTile != nil {
		u.opt.OnTile(TileEvent{Index: i, Total: total, Rect: r, Elapsed: elapsed})
	}
	return nil
}

// Upscale enlarges img by scale with the given tile geometry and default limits.
func Upscale(ctx context.Context, b Backend, img *Image, scale, tileSize, overlap int) (*Image, error) {
	return New(b, func(o *Options) {
		o.TileSize = tileSize
		o.Overlap = overlap
	}).Upscale(ctx, img, scale)
}
