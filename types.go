package tilesr

import (
	"fmt"
	"time"
)

// ChannelOrder identifies the order of color channels within a pixel.
type ChannelOrder int

const (
	OrderRGB ChannelOrder = iota
	OrderBGR
)

func (o ChannelOrder) String() string {
	switch o {
	case OrderRGB:
		return "RGB"
	case OrderBGR:
		return "BGR"
	default:
		return fmt.Sprintf("ChannelOrder(%d)", int(o))
	}
}

// Image is a dense 8-bit, 3-channel, channel-last pixel buffer.
// Rows are packed, the stride is Width*3 bytes.
type Image struct {
	Width  int
	Height int
	Order  ChannelOrder
	Pix    []uint8
}

// Rect is an axis-aligned tile rectangle in source pixel coordinates.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// Layout describes the tensor convention a backend expects.
type Layout struct {
	Order        ChannelOrder
	ChannelFirst bool // CHW when true, HWC otherwise
}

// DefaultLayout matches Real-ESRGAN ONNX exports: BGR planes, channel-first.
var DefaultLayout = Layout{Order: OrderBGR, ChannelFirst: true}

// Tensor is a 3-channel float32 buffer with an implicit batch dimension of one.
// Values are nominally in [0, 1].
type Tensor struct {
	Channels int
	Height   int
	Width    int
	Layout   Layout
	Data     []float32
}

// Patch is the upscaled output of a single tile: RGB, channel-last,
// values in the [0, 255] range without clamping.
type Patch struct {
	Width  int
	Height int
	Pix    []float32
}

// TileEvent reports progress of a single processed tile.
type TileEvent struct {
	Index   int
	Total   int
	Rect    Rect
	Elapsed time.Duration
}
