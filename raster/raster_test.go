package raster

import (
	"image"
	stdcolor "image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bdwalton/piet/color"
)

// fakeImage is a minimal image.Image backed by an explicit grid of
// RGBA pixels, used to drive Build without touching the filesystem.
type fakeImage struct {
	w, h int
	px   func(x, y int) stdcolor.Color
}

func (f *fakeImage) ColorModel() stdcolor.Model { return stdcolor.RGBAModel }
func (f *fakeImage) Bounds() image.Rectangle    { return image.Rect(0, 0, f.w, f.h) }
func (f *fakeImage) At(x, y int) stdcolor.Color { return f.px(x, y) }

func solid(c stdcolor.Color) func(x, y int) stdcolor.Color {
	return func(x, y int) stdcolor.Color { return c }
}

func TestBuildSamplesEveryKthPixel(t *testing.T) {
	red := stdcolor.RGBA{0xFF, 0x00, 0x00, 0xFF}
	img := &fakeImage{w: 6, h: 4, px: solid(red)}

	g := Build(img, 2)
	if g.Cols != 3 || g.Rows != 2 {
		t.Fatalf("Cols,Rows = %d,%d, want 3,2", g.Cols, g.Rows)
	}
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			if got := g.At(x, y); got != (color.Color{Kind: color.Chromatic, Hue: color.Red, Lightness: color.Normal}) {
				t.Errorf("At(%d,%d) = %v, want normal red", x, y, got)
			}
		}
	}
}

func TestBuildDiscardsRemainderPixels(t *testing.T) {
	red := stdcolor.RGBA{0xFF, 0x00, 0x00, 0xFF}
	img := &fakeImage{w: 5, h: 5, px: solid(red)}

	g := Build(img, 2)
	if g.Cols != 2 || g.Rows != 2 {
		t.Fatalf("Cols,Rows = %d,%d, want 2,2 (5/2 floors to 2)", g.Cols, g.Rows)
	}
}

func TestLoadRejectsDegenerateGrid(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	path := filepath.Join(t.TempDir(), "tiny.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing test image: %v", err)
	}

	if _, err := Load(path, 4); err == nil {
		t.Fatal("Load of a 3x3 image at codel size 4 = nil error, want a degenerate-grid error")
	}
}

func TestBuildPerCellColors(t *testing.T) {
	colors := map[[2]int]stdcolor.Color{
		{0, 0}: stdcolor.RGBA{0xFF, 0x00, 0x00, 0xFF},
		{1, 0}: stdcolor.RGBA{0x00, 0x00, 0x00, 0xFF},
	}
	img := &fakeImage{w: 2, h: 1, px: func(x, y int) stdcolor.Color {
		return colors[[2]int{x, y}]
	}}

	g := Build(img, 1)
	if got := g.At(0, 0); got.Kind != color.Chromatic || got.Hue != color.Red {
		t.Errorf("At(0,0) = %v, want red", got)
	}
	if got := g.At(1, 0); got != color.BlackColor {
		t.Errorf("At(1,0) = %v, want black", got)
	}
}

func TestInBounds(t *testing.T) {
	g := &Grid{Cols: 3, Rows: 2}
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true}, {2, 1, true}, {3, 0, false}, {0, 2, false}, {-1, 0, false},
	}
	for _, tc := range cases {
		if got := g.InBounds(tc.x, tc.y); got != tc.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}
