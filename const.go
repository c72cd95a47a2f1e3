package tilesr

const (
	defaultMaxDimension = 4096
	defaultMaxOutput    = 8192 // guards scaled size to fit serverless RAM/time
)

const (
	// DefaultTileSize is the nominal tile edge in source pixels.
	DefaultTileSize = 256
	// DefaultOverlap is the number of pixels shared by neighboring tiles.
	DefaultOverlap = 16
	// DefaultMinStep is the smallest distance between tile origins.
	DefaultMinStep = 32
)

var defaultScales = []int{2, 4}
