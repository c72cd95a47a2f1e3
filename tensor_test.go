package tilesr

import (
	"image"
	"image/color"
	"testing"
)

func TestToTensorLayout(t *testing.T) {
	img := NewImage(2, 1, OrderRGB)
	copy(img.Pix, []uint8{255, 0, 51, 0, 102, 0})

	chw := ToTensor(img, DefaultLayout)
	if chw.Channels != 3 || chw.Width != 2 || chw.Height != 1 {
		t.Fatalf("unexpected shape: %dx%dx%d", chw.Channels, chw.Height, chw.Width)
	}
	// BGR planes: B, G, R.
	want := []float32{51.0 / 255, 0, 0, 102.0 / 255, 1, 0}
	for i, v := range want {
		if chw.Data[i] != v {
			t.Fatalf("chw data[%d]: got %v want %v", i, chw.Data[i], v)
		}
	}

	hwc := ToTensor(img, Layout{Order: OrderRGB})
	want = []float32{1, 0, 51.0 / 255, 0, 102.0 / 255, 0}
	for i, v := range want {
		if hwc.Data[i] != v {
			t.Fatalf("hwc data[%d]: got %v want %v", i, hwc.Data[i], v)
		}
	}
	if hwc.At(0, 0, 0) != 1 || chw.At(2, 0, 0) != 1 {
		t.Fatal("At does not address the red channel")
	}
}

func TestTensorRoundTrip(t *testing.T) {
	layouts := []Layout{
		DefaultLayout,
		{Order: OrderRGB, ChannelFirst: true},
		{Order: OrderRGB},
		{Order: OrderBGR},
	}
	for _, order := range []ChannelOrder{OrderRGB, OrderBGR} {
		src := gradientImage(5, 3, order)
		for _, l := range layouts {
			p, err := FromTensor(ToTensor(src, l))
			if err != nil {
				t.Fatalf("from tensor %+v: %v", l, err)
			}
			assertSameImage(t, p.Image(order), src)
		}
	}
}

func TestTensorPlanes(t *testing.T) {
	for _, l := range []Layout{DefaultLayout, {Order: OrderRGB}} {
		tn := ToTensor(gradientImage(4, 4, OrderRGB), l)
		for c := 0; c < 3; c++ {
			plane := tn.Plane(c)
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					if plane[y*4+x] != tn.At(c, y, x) {
						t.Fatalf("%+v plane %d mismatch at (%d,%d)", l, c, x, y)
					}
				}
			}
			for i := range plane {
				plane[i] = float32(c)
			}
			tn.SetPlane(c, plane)
		}
		if tn.At(0, 3, 3) != 0 || tn.At(1, 2, 1) != 1 || tn.At(2, 0, 0) != 2 {
			t.Fatalf("%+v SetPlane did not overwrite channels", l)
		}
	}
}

func TestFromTensorInvalid(t *testing.T) {
	tn := NewTensor(2, 2, DefaultLayout)
	tn.Data = tn.Data[:5]
	if _, err := FromTensor(tn); err == nil {
		t.Fatal("expected error for short data")
	}
	tn = NewTensor(2, 2, DefaultLayout)
	tn.Channels = 4
	if _, err := FromTensor(tn); err == nil {
		t.Fatal("expected error for 4 channels")
	}
}

func TestImageConvertAndCrop(t *testing.T) {
	src := gradientImage(6, 4, OrderRGB)
	bgr := src.Convert(OrderBGR)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			r1, g1, b1 := src.RGB(x, y)
			r2, g2, b2 := bgr.RGB(x, y)
			if r1 != r2 || g1 != g2 || b1 != b2 {
				t.Fatalf("convert changed color at (%d,%d)", x, y)
			}
		}
	}
	if bgr.Pix[0] != src.Pix[2] {
		t.Fatal("convert did not swap storage order")
	}

	crop := src.Crop(Rect{X: 2, Y: 1, W: 3, H: 2})
	if crop.Width != 3 || crop.Height != 2 {
		t.Fatalf("unexpected crop size %dx%d", crop.Width, crop.Height)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			r1, g1, b1 := src.RGB(x+2, y+1)
			r2, g2, b2 := crop.RGB(x, y)
			if r1 != r2 || g1 != g2 || b1 != b2 {
				t.Fatalf("crop mismatch at (%d,%d)", x, y)
			}
		}
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	src.SetNRGBA(10, 20, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	src.SetNRGBA(12, 21, color.NRGBA{R: 1, G: 2, B: 3, A: 128})

	img := FromImage(src)
	if img.Width != 3 || img.Height != 2 || img.Order != OrderRGB {
		t.Fatalf("unexpected image %dx%d %s", img.Width, img.Height, img.Order)
	}
	if r, g, b := img.RGB(0, 0); r != 200 || g != 100 || b != 50 {
		t.Fatalf("unexpected pixel (0,0): %d %d %d", r, g, b)
	}
	if r, g, b := img.RGB(2, 1); r != 1 || g != 2 || b != 3 {
		t.Fatalf("alpha should be dropped without compositing, got %d %d %d", r, g, b)
	}

	rgba := img.ToRGBA()
	if c := rgba.RGBAAt(0, 0); c != (color.RGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Fatalf("unexpected RGBA pixel: %v", c)
	}
}

func TestImageValidate(t *testing.T) {
	if err := (&Image{Width: 2, Height: 2, Pix: make([]uint8, 11)}).Validate(); err == nil {
		t.Fatal("expected error for short buffer")
	}
	var nilImg *Image
	if err := nilImg.Validate(); err == nil {
		t.Fatal("expected error for nil image")
	}
	if err := NewImage(2, 2, OrderBGR).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
