package tilesr

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder.
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // Register WebP decoder.
)

// Output formats supported by Encode.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatTIFF = "tiff"
	FormatBMP  = "bmp"
)

// DefaultJPEGQuality is used by Encode when quality is not in [1, 100].
const DefaultJPEGQuality = 95

// FormatFromPath picks an output format by file extension, PNG by default.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".tif", ".tiff":
		return FormatTIFF
	case ".bmp":
		return FormatBMP
	default:
		return FormatPNG
	}
}

// Encode writes img in the given format. Quality only applies to JPEG.
func Encode(w io.Writer, img *Image, format string, quality int) error {
	switch format {
	case FormatPNG, "":
		return EncodePNG(w, img)
	case FormatJPEG:
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img.ToRGBA(), &jpeg.Options{Quality: quality})
	case FormatTIFF:
		return tiff.Encode(w, img.ToRGBA(), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case FormatBMP:
		return bmp.Encode(w, img.ToRGBA())
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// Decode reads an image in any registered format and converts it to RGB.
// It returns the format name reported by the decoder.
func Decode(r io.Reader) (*Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	return FromImage(img), format, nil
}

// DecodeConfig returns image dimensions without decoding pixels, so limits
// can be checked before the full decode.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	return image.DecodeConfig(r)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img *Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img.ToRGBA())
}

// DecodeBase64 decodes a base64 image payload, with or without a data URL prefix,
// into the encoded image bytes.
func DecodeBase64(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if i := strings.IndexByte(s, ','); i >= 0 {
			s = s[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	return data, nil
}

// EncodeBase64PNG encodes img as a base64 PNG payload.
func EncodeBase64PNG(img *Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeLimited checks the encoded image dimensions against l for the given scale
// before decoding pixels.
func DecodeLimited(data []byte, l Limits, scale int) (*Image, error) {
	cfg, _, err := DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := l.Validate(cfg.Width, cfg.Height, scale); err != nil {
		return nil, err
	}
	img, _, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// UpscaleFile reads an image from inPath, upscales it and writes it to outPath
// in the format implied by the extension, see FormatFromPath.
// Source dimensions are checked against the limits before pixels are decoded.
func UpscaleFile(ctx context.Context, inPath, outPath string, scale int, b Backend, opts ...func(o *Options)) error {
	data, err := os.ReadFile(filepath.Clean(inPath))
	if err != nil {
		return err
	}
	u := New(b, opts...)
	if err := ValidateScale(scale, u.Options().Scales); err != nil {
		return err
	}
	img, err := DecodeLimited(data, u.Options().Limits, scale)
	if err != nil {
		return err
	}
	out, err := u.Upscale(ctx, img, scale)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, out, FormatFromPath(outPath), DefaultJPEGQuality); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return os.WriteFile(filepath.Clean(outPath), buf.Bytes(), 0o644)
}
