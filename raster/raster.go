// Package raster opens a Piet program image and lifts it into a grid
// of classified codels (spec §4.2). Decoding is delegated to Go's
// image package and a handful of registered format decoders; this
// package's own job is the codel sampling step only.
package raster

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/bdwalton/piet/color"
)

// Grid is a dense, read-only 2-D array of classified colors, indexed
// [y][x].
type Grid struct {
	Cols, Rows int
	cells      [][]color.Color
}

// At returns the color at (x, y). It panics if the position is
// out of bounds; callers should check InBounds first, matching the
// teacher's "should never happen" convention for addresses a caller
// is expected to have already validated.
func (g *Grid) At(x, y int) color.Color {
	return g.cells[y][x]
}

// InBounds reports whether (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Cols && y < g.Rows
}

// Load opens path, decodes it with any registered image format, and
// samples it into a Grid at the given codel size. codelSize must be
// >= 1. An image too small to yield even one full codel at the given
// size is rejected rather than handed to the traversal engine as a
// degenerate 0x0 grid.
func Load(path string, codelSize int) (*Grid, error) {
	if codelSize < 1 {
		return nil, fmt.Errorf("raster: codel size must be >= 1, got %d", codelSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %q: %w", path, err)
	}

	g := Build(img, codelSize)
	if g.Cols == 0 || g.Rows == 0 {
		return nil, fmt.Errorf("raster: image %q yields a %dx%d grid at codel size %d, too small to traverse", path, g.Cols, g.Rows, codelSize)
	}

	return g, nil
}

// Build samples img into a Grid at the given codel size (spec §4.2).
// For each output cell (i, j) it classifies the pixel at
// (i*codelSize, j*codelSize); remainder pixels beyond the last full
// codel are discarded. It does not verify that each codelSize x
// codelSize block is internally uniform.
//
// Each pixel's RGBA() method returns its channels in the 16-bit range
// whatever the decoder's own color model; Build keeps the high byte of
// each channel (>>8), so no additional /257 rescaling (needed by
// decoders that expose raw 16-bit samples) applies here.
func Build(img image.Image, codelSize int) *Grid {
	b := img.Bounds()
	cols := b.Dx() / codelSize
	rows := b.Dy() / codelSize

	cells := make([][]color.Color, rows)
	for j := 0; j < rows; j++ {
		row := make([]color.Color, cols)
		py := b.Min.Y + j*codelSize
		for i := 0; i < cols; i++ {
			px := b.Min.X + i*codelSize
			r, g, bl, _ := img.At(px, py).RGBA()
			row[i] = color.Classify(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
		}
		cells[j] = row
	}

	return &Grid{Cols: cols, Rows: rows, cells: cells}
}
