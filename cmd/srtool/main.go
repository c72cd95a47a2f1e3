package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/vearutop/tilesr"
	"github.com/vearutop/tilesr/internal/httpapi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "upscale":
		if err := runUpscale(os.Args[2:]); err != nil {
			fail(err)
		}
	case "tiles":
		if err := runTiles(os.Args[2:]); err != nil {
			fail(err)
		}
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fail(err)
		}
	case "backends":
		fmt.Fprintln(os.Stdout, strings.Join(tilesr.BackendNames(), "\n"))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: srtool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  upscale  -in input.png [-out output.{png,jpg,tiff,bmp}] [-scale 2] [-tile 256] [-overlap 16] [-backend lanczos3] [-workers 1] [-timeout 0]")
	fmt.Fprintln(os.Stderr, "           (without -out the PNG is printed to stdout as base64)")
	fmt.Fprintln(os.Stderr, "  tiles    -w 300 -h 200 [-tile 256] [-overlap 16] [-min-step 32]")
	fmt.Fprintln(os.Stderr, "  serve    [-listen :5000] [-backend lanczos3] [-timeout 60s]")
	fmt.Fprintln(os.Stderr, "  backends")
}

// pipelineFlags are shared by upscale and serve.
type pipelineFlags struct {
	backend string
	tile    int
	overlap int
	minStep int
	workers int
	timeout time.Duration
	maxDim  int
	maxOut  int
	verbose bool
}

func (p *pipelineFlags) register(fs *flag.FlagSet, timeout time.Duration) {
	fs.StringVar(&p.backend, "backend", "lanczos3", "backend name, see srtool backends")
	fs.IntVar(&p.tile, "tile", tilesr.DefaultTileSize, "tile size for memory-friendly inference")
	fs.IntVar(&p.overlap, "overlap", tilesr.DefaultOverlap, "overlap between neighboring tiles")
	fs.IntVar(&p.minStep, "min-step", tilesr.DefaultMinStep, "minimum distance between tile origins")
	fs.IntVar(&p.workers, "workers", 1, "concurrent tile inferences")
	fs.DurationVar(&p.timeout, "timeout", timeout, "operation timeout, 0 for none")
	fs.IntVar(&p.maxDim, "max-dim", tilesr.DefaultLimits.MaxDimension, "maximum source dimension")
	fs.IntVar(&p.maxOut, "max-out", tilesr.DefaultLimits.MaxOutput, "maximum output dimension")
	fs.BoolVar(&p.verbose, "v", false, "debug logging")
}

func (p *pipelineFlags) options(o *tilesr.Options) {
	o.TileSize = p.tile
	o.Overlap = p.overlap
	o.MinStep = p.minStep
	o.Workers = p.workers
	o.Timeout = p.timeout
	o.Limits = tilesr.Limits{MaxDimension: p.maxDim, MaxOutput: p.maxOut}
}

func (p *pipelineFlags) setupLogger() {
	level := slog.LevelInfo
	if p.verbose {
		level = slog.LevelDebug
	}
	tilesr.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func runUpscale(args []string) error {
	fs := flag.NewFlagSet("upscale", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	outPath := fs.String("out", "", "output image, format by extension (png, jpg, tiff, bmp), base64 PNG to stdout if empty")
	scale := fs.Int("scale", 2, "upscale factor")
	var pf pipelineFlags
	pf.register(fs, 0)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}
	pf.setupLogger()
	b, err := tilesr.NewBackend(pf.backend)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *outPath != "" {
		return tilesr.UpscaleFile(ctx, *inPath, *outPath, *scale, b, pf.options)
	}

	data, err := os.ReadFile(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	u := tilesr.New(b, pf.options)
	if err := tilesr.ValidateScale(*scale, u.Options().Scales); err != nil {
		return err
	}
	img, err := tilesr.DecodeLimited(data, u.Options().Limits, *scale)
	if err != nil {
		return err
	}
	out, err := u.Upscale(ctx, img, *scale)
	if err != nil {
		return err
	}
	encoded, err := tilesr.EncodeBase64PNG(out)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, encoded)
	return nil
}

func runTiles(args []string) error {
	fs := flag.NewFlagSet("tiles", flag.ContinueOnError)
	width := fs.Int("w", 0, "image width")
	height := fs.Int("h", 0, "image height")
	tile := fs.Int("tile", tilesr.DefaultTileSize, "tile size")
	overlap := fs.Int("overlap", tilesr.DefaultOverlap, "overlap")
	minStep := fs.Int("min-step", tilesr.DefaultMinStep, "minimum step")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *width <= 0 || *height <= 0 {
		return errors.New("missing required arguments")
	}
	t := tilesr.Tiling{TileSize: *tile, Overlap: *overlap, MinStep: *minStep}
	tiles, err := t.Partition(*width, *height)
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(struct {
		Step  int           `json:"step"`
		Tiles []tilesr.Rect `json:"tiles"`
	}{Step: t.Step(), Tiles: tiles}, "", "  ")
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(payload, '\n'))
	return err
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	listen := fs.String("listen", "", "listen address, :$PORT or :5000 if empty")
	var pf pipelineFlags
	pf.register(fs, 60*time.Second)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *listen == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "5000"
		}
		*listen = ":" + port
	}
	pf.setupLogger()
	b, err := tilesr.NewBackend(pf.backend)
	if err != nil {
		return err
	}

	h := httpapi.NewHandler(tilesr.New(b, pf.options))
	mux := http.NewServeMux()
	mux.Handle("/upscale", h)
	mux.Handle("/api/upscale", h)

	srv := &http.Server{
		Addr:              *listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	tilesr.Logger().Info("listening", "addr", *listen, "backend", pf.backend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
