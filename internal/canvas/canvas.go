// Package canvas holds a flat, row-major RGB pixel buffer.
//
// A Canvas is sized once at construction and never grows: every pixel in
// range is addressable immediately, and the zero value of each pixel is black.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"iter"
	"math"
)

// ErrOutOfBounds is returned by Set when row or col falls outside the canvas.
var ErrOutOfBounds = errors.New("canvas: pixel coordinates out of bounds")

// ErrInvalidSize is returned by CheckSize.
var ErrInvalidSize = errors.New("canvas: invalid dimensions")

// RGB is a single 8-bit-per-channel pixel.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color. The canvas has no alpha channel, so pixels
// are always opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = 0xffff
	return
}

// Canvas is a width x height grid of RGB pixels stored top-left first,
// left-to-right, top-to-bottom.
type Canvas struct {
	width, height int
	pix           []RGB
}

// CheckSize rejects non-positive dimensions and sizes whose channel count
// (width*height*3) does not fit in an int.
func CheckSize(width, height int) error {
	if width <= 0 || height <= 0 || width > math.MaxInt/3/height {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return nil
}

// New allocates a zero-filled canvas. It panics when CheckSize fails.
func New(width, height int) *Canvas {
	if err := CheckSize(width, height); err != nil {
		panic(err.Error())
	}
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]RGB, width*height),
	}
}

// FromImage copies img into a new canvas. Alpha is discarded.
func FromImage(img image.Image) *Canvas {
	b := img.Bounds()
	c := New(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := (y - b.Min.Y) * c.width
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			c.pix[row+x-b.Min.X] = RGB{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)}
		}
	}
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Len returns the number of pixels, always Width()*Height().
func (c *Canvas) Len() int { return len(c.pix) }

func (c *Canvas) in(row, col int) bool {
	return row >= 0 && col >= 0 && row < c.height && col < c.width
}

func (c *Canvas) index(row, col int) int {
	return row*c.width + col
}

// Get returns the pixel at (row, col), or false when out of range.
func (c *Canvas) Get(row, col int) (RGB, bool) {
	if !c.in(row, col) {
		return RGB{}, false
	}
	return c.pix[c.index(row, col)], true
}

// GetMut returns a pointer to the pixel at (row, col) for in-place writes,
// or false when out of range.
func (c *Canvas) GetMut(row, col int) (*RGB, bool) {
	if !c.in(row, col) {
		return nil, false
	}
	return &c.pix[c.index(row, col)], true
}

// Set writes the pixel at (row, col).
func (c *Canvas) Set(row, col int, px RGB) error {
	p, ok := c.GetMut(row, col)
	if !ok {
		return fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, row, col, c.width, c.height)
	}
	*p = px
	return nil
}

// All yields every pixel in row-major order. Each call starts a fresh pass.
func (c *Canvas) All() iter.Seq[RGB] {
	return func(yield func(RGB) bool) {
		for _, px := range c.pix {
			if !yield(px) {
				return
			}
		}
	}
}

// Pixels returns the backing slice. Writes through it mutate the canvas;
// its length must not be changed.
func (c *Canvas) Pixels() []RGB {
	return c.pix
}

// Equal reports whether both canvases have the same size and pixels.
func (c *Canvas) Equal(other *Canvas) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.width != other.width || c.height != other.height {
		return false
	}
	for i := range c.pix {
		if c.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// ─── image.Image ─────────────────────────────────────────────

func (c *Canvas) ColorModel() color.Model { return color.RGBAModel }

func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// At uses image coordinates (x = col, y = row). Out-of-range points are black.
func (c *Canvas) At(x, y int) color.Color {
	px, _ := c.Get(y, x)
	return px
}
