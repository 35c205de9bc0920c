// Package sample generates synthetic canvases for demos and benchmarks.
package sample

import (
	"github.com/AnyUserName/ppmkit/internal/canvas"
	"github.com/AnyUserName/ppmkit/internal/preset"
)

// Gradient ramps red down the rows and green across the columns.
func Gradient(width, height int) *canvas.Canvas {
	c := canvas.New(width, height)
	for row := 0; row < height; row++ {
		r := uint8(row * 256 / height)
		for col := 0; col < width; col++ {
			p, _ := c.GetMut(row, col)
			*p = canvas.RGB{R: r, G: uint8(col * 256 / width)}
		}
	}
	return c
}

// Checker alternates black and white squares of cell pixels.
func Checker(width, height, cell int) *canvas.Canvas {
	if cell <= 0 {
		cell = 1
	}
	c := canvas.New(width, height)
	white := canvas.RGB{R: 255, G: 255, B: 255}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if (row/cell+col/cell)%2 == 1 {
				p, _ := c.GetMut(row, col)
				*p = white
			}
		}
	}
	return c
}

// Solid fills the canvas with one colour.
func Solid(width, height int, px canvas.RGB) *canvas.Canvas {
	c := canvas.New(width, height)
	pix := c.Pixels()
	for i := range pix {
		pix[i] = px
	}
	return c
}

// FromPreset renders the preset's pattern at the preset's size.
func FromPreset(p preset.Preset) *canvas.Canvas {
	switch p.Pattern {
	case preset.Checker:
		return Checker(p.Width, p.Height, p.Cell)
	case preset.Solid:
		return Solid(p.Width, p.Height, canvas.RGB{R: 128, G: 64, B: 32})
	default:
		return Gradient(p.Width, p.Height)
	}
}
