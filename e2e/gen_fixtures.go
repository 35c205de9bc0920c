//go:build ignore

// gen_fixtures creates a small input tree for the ppmkit build smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/AnyUserName/ppmkit/internal/canvas"
	"github.com/AnyUserName/ppmkit/internal/ppm"
	"github.com/AnyUserName/ppmkit/internal/sample"
	"github.com/AnyUserName/ppmkit/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	cards := filepath.Join(dir, "cards")
	if err := os.MkdirAll(cards, 0o755); err != nil {
		fail(err)
	}

	// Banner (P6, 400x225)
	save(dir, "banner", sample.Gradient(400, 225), store.SaveOptions{Variant: ppm.Binary})

	// Cards (P3, zstd-compressed, 64x48 each)
	for i := 1; i <= 3; i++ {
		c := solidWithBorder(64, 48, uint8(i*60))
		save(cards, fmt.Sprintf("card-%d", i), c, store.SaveOptions{Variant: ppm.Text, Compress: true})
	}

	// PNG import, only picked up with --import.
	writePNG(filepath.Join(dir, "logo.png"), 100, 100)

	// Truncated P6; the build reports it as failed and keeps going.
	if err := os.WriteFile(filepath.Join(dir, "broken.ppm"), []byte("P6\n4 4\n255\n\x00\x00\x00"), 0o644); err != nil {
		fail(err)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 fixtures in %s\n", dir)
}

func save(dir, name string, c *canvas.Canvas, opts store.SaveOptions) {
	if _, err := store.Save(dir, name, c, opts); err != nil {
		fail(err)
	}
}

func solidWithBorder(w, h int, shade uint8) *canvas.Canvas {
	c := sample.Solid(w, h, canvas.RGB{R: shade, G: shade / 2, B: 200})
	border := canvas.RGB{R: 40, G: 40, B: 40}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			if row < 2 || row >= h-2 || col < 2 || col >= w-2 {
				c.Set(row, col, border)
			}
		}
	}
	return c
}

func writePNG(path string, w, h int) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: 64, B: uint8(y * 255 / h), A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		fail(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
