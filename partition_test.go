package tilesr

import (
	"errors"
	"reflect"
	"testing"
)

func TestPartitionScenario(t *testing.T) {
	tiles, err := Partition(300, 200, 256, 16)
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	want := []Rect{
		{X: 0, Y: 0, W: 256, H: 200},
		{X: 240, Y: 0, W: 60, H: 200},
	}
	if !reflect.DeepEqual(tiles, want) {
		t.Fatalf("unexpected tiles: got %v want %v", tiles, want)
	}
}

func TestPartitionSingleTile(t *testing.T) {
	tiles, err := Partition(120, 256, 256, 16)
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	if len(tiles) != 1 {
		t.Fatalf("unexpected tile count: got %d want 1", len(tiles))
	}
	if tiles[0] != (Rect{X: 0, Y: 0, W: 120, H: 256}) {
		t.Fatalf("unexpected tile: %v", tiles[0])
	}
}

func TestPartitionRowMajor(t *testing.T) {
	tiles, err := Partition(100, 100, 64, 16)
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	// step = max(64-16, 32) = 48, starts 0, 48, 96.
	if len(tiles) != 9 {
		t.Fatalf("unexpected tile count: got %d want 9", len(tiles))
	}
	for i := 1; i < len(tiles); i++ {
		prev, cur := tiles[i-1], tiles[i]
		if cur.Y < prev.Y || (cur.Y == prev.Y && cur.X <= prev.X) {
			t.Fatalf("tiles not row-major at %d: %v then %v", i, prev, cur)
		}
	}
	if last := tiles[len(tiles)-1]; last != (Rect{X: 96, Y: 96, W: 4, H: 4}) {
		t.Fatalf("unexpected last tile: %v", last)
	}

	again, err := Partition(100, 100, 64, 16)
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	if !reflect.DeepEqual(tiles, again) {
		t.Fatal("partition is not deterministic")
	}
}

func TestPartitionFullCoverage(t *testing.T) {
	sizes := [][2]int{{1, 1}, {7, 300}, {300, 200}, {513, 257}, {97, 1000}}
	tilings := []Tiling{
		{TileSize: 256, Overlap: 16},
		{TileSize: 64, Overlap: 0},
		{TileSize: 64, Overlap: 63},
		{TileSize: 40, Overlap: 20},
		{TileSize: 16, Overlap: 4},
		{TileSize: 1, Overlap: 0},
	}
	for _, tl := range tilings {
		for _, sz := range sizes {
			w, h := sz[0], sz[1]
			tiles, err := tl.Partition(w, h)
			if err != nil {
				t.Fatalf("partition %+v %dx%d: %v", tl, w, h, err)
			}
			covered := make([]int, w*h)
			for _, r := range tiles {
				if r.W < 1 || r.H < 1 || r.W > tl.TileSize || r.H > tl.TileSize {
					t.Fatalf("%+v %dx%d: bad tile size %v", tl, w, h, r)
				}
				if r.X < 0 || r.Y < 0 || r.X+r.W > w || r.Y+r.H > h {
					t.Fatalf("%+v %dx%d: tile out of bounds %v", tl, w, h, r)
				}
				for y := r.Y; y < r.Y+r.H; y++ {
					for x := r.X; x < r.X+r.W; x++ {
						covered[y*w+x]++
					}
				}
			}
			for i, c := range covered {
				if c == 0 {
					t.Fatalf("%+v %dx%d: pixel (%d,%d) not covered", tl, w, h, i%w, i/w)
				}
			}
		}
	}
}

func TestTilingStep(t *testing.T) {
	cases := []struct {
		tiling Tiling
		step   int
	}{
		{Tiling{TileSize: 256, Overlap: 16}, 240},
		{Tiling{TileSize: 64, Overlap: 48}, 32},
		{Tiling{TileSize: 64, Overlap: 48, MinStep: 8}, 16},
		{Tiling{TileSize: 20, Overlap: 0}, 20},
		{Tiling{TileSize: 20, Overlap: 10}, 20},
	}
	for _, c := range cases {
		if got := c.tiling.Step(); got != c.step {
			t.Errorf("step %+v: got %d want %d", c.tiling, got, c.step)
		}
	}
}

func TestPartitionInvalid(t *testing.T) {
	if _, err := Partition(10, 10, 0, 0); !errors.Is(err, ErrInvalidTiling) {
		t.Fatalf("expected ErrInvalidTiling for zero tile size, got %v", err)
	}
	if _, err := Partition(10, 10, 32, -1); !errors.Is(err, ErrInvalidTiling) {
		t.Fatalf("expected ErrInvalidTiling for negative overlap, got %v", err)
	}
	if _, err := Partition(0, 10, 32, 0); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage for zero width, got %v", err)
	}
}
