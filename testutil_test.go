package tilesr

import "testing"

// gradientImage returns a deterministic image with distinct channels.
func gradientImage(w, h int, order ChannelOrder) *Image {
	img := NewImage(w, h, order)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			img.Pix[i] = uint8((x*7 + y*3) % 256)
			img.Pix[i+1] = uint8((x*x + y) % 256)
			img.Pix[i+2] = uint8((255 - y*5 + x) % 256)
		}
	}
	return img
}

func assertSameImage(t *testing.T, got, want *Image) {
	t.Helper()
	if got.Width != want.Width || got.Height != want.Height {
		t.Fatalf("dims mismatch: got %dx%d want %dx%d", got.Width, got.Height, want.Width, want.Height)
	}
	if got.Order != want.Order {
		t.Fatalf("order mismatch: got %s want %s", got.Order, want.Order)
	}
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			p := i / 3
			t.Fatalf("pixel (%d,%d) channel %d mismatch: got %d want %d",
				p%want.Width, p/want.Width, i%3, got.Pix[i], want.Pix[i])
		}
	}
}
