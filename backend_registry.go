package tilesr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

var backendFactories = map[string]func() Backend{
	"replicate":            func() Backend { return NearestBackend{} },
	"resize-nearest":       func() Backend { return ResizeBackend{Filter: resize.NearestNeighbor} },
	"resize-bilinear":      func() Backend { return ResizeBackend{Filter: resize.Bilinear} },
	"resize-bicubic":       func() Backend { return ResizeBackend{Filter: resize.Bicubic} },
	"resize-mitchell":      func() Backend { return ResizeBackend{Filter: resize.MitchellNetravali} },
	"resize-lanczos2":      func() Backend { return ResizeBackend{Filter: resize.Lanczos2} },
	"resize-lanczos3":      func() Backend { return ResizeBackend{Filter: resize.Lanczos3} },
	"draw-nearest":         func() Backend { return DrawBackend{Scaler: draw.NearestNeighbor} },
	"draw-approx-bilinear": func() Backend { return DrawBackend{Scaler: draw.ApproxBiLinear} },
	"draw-bilinear":        func() Backend { return DrawBackend{Scaler: draw.BiLinear} },
	"draw-catmullrom":      func() Backend { return DrawBackend{Scaler: draw.CatmullRom} },
}

func init() {
	for interp, name := range interpolationNames {
		interp := interp
		backendFactories[name] = func() Backend { return KernelBackend{Interpolation: interp} }
	}
}

// NewBackend creates a built-in backend by name, see BackendNames.
func NewBackend(name string) (Backend, error) {
	f, ok := backendFactories[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q, available: %s", name, strings.Join(BackendNames(), ", "))
	}
	return f(), nil
}

// BackendNames lists built-in backends in alphabetical order.
func BackendNames() []string {
	names := make([]string, 0, len(backendFactories))
	for name := range backendFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
