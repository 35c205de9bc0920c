package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/ppmkit/internal/canvas"
	"github.com/AnyUserName/ppmkit/internal/hasher"
	"github.com/AnyUserName/ppmkit/internal/manifest"
	"github.com/AnyUserName/ppmkit/internal/ppm"
	"github.com/AnyUserName/ppmkit/internal/store"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	image manifest.Image
	err   error
}

// processImage handles a single source: load, hash, resize, encode, write.
func (p *Pipeline) processImage(src store.Source, formats []string) processResult {
	result := processResult{key: src.Key}

	c, maxVal, err := p.load(src)
	if err != nil {
		result.err = err
		return result
	}

	result.image = manifest.Image{
		Source: manifest.SourceInfo{
			Path:   src.RelPath,
			Format: src.Format,
			Width:  c.Width(),
			Height: c.Height(),
			Size:   src.Size,
			MaxVal: maxVal,
		},
		CanvasHash: hasher.CanvasHash(c, 16),
	}

	if p.cfg.Resize > 0 && p.cfg.Resize != c.Width() {
		c = Resize(c, p.cfg.Resize)
	}

	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(p.cfg.OutputDir, keyDir), 0o755); err != nil {
			result.err = fmt.Errorf("mkdir %s: %w", keyDir, err)
			return result
		}
	}

	for _, format := range formats {
		enc := p.registry.Get(format)
		if enc == nil {
			continue
		}

		data, err := enc.Encode(c)
		if err != nil {
			result.err = fmt.Errorf("encode %s as %s: %w", src.Key, format, err)
			return result
		}

		contentHash := hasher.ContentHash(data, 16)

		// key.WxH.hash.ext
		fileName := fmt.Sprintf("%s.%dx%d.%s.%s",
			filepath.Base(src.Key), c.Width(), c.Height(), contentHash[:8], enc.Extension())
		relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

		outPath := filepath.Join(p.cfg.OutputDir, relPath)
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			result.err = fmt.Errorf("write %s: %w", relPath, err)
			return result
		}

		result.image.Outputs = append(result.image.Outputs, manifest.Output{
			Format: format,
			Width:  c.Width(),
			Height: c.Height(),
			Size:   int64(len(data)),
			Hash:   contentHash,
			Path:   relPath,
		})
	}

	return result
}

// load decodes a PPM source with the codec, or any registered image format
// through image.Decode. maxVal is 0 for imported images.
func (p *Pipeline) load(src store.Source) (*canvas.Canvas, int, error) {
	if src.Format == "ppm" {
		data, err := store.ReadBytes(src.AbsPath)
		if err != nil {
			return nil, 0, err
		}
		c, h, err := ppm.DecodeWithOptions(data, ppm.DecodeOptions{StrictMaxVal: p.cfg.StrictMaxVal})
		if err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", src.RelPath, err)
		}
		return c, h.MaxVal, nil
	}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", src.RelPath, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", src.RelPath, err)
	}
	if img.Bounds().Empty() {
		return nil, 0, fmt.Errorf("decode %s: empty image", src.RelPath)
	}
	return canvas.FromImage(img), 0, nil
}

// Resize scales c to width pixels wide with a proportional height.
func Resize(c *canvas.Canvas, width int) *canvas.Canvas {
	h := int(float64(c.Height()) * float64(width) / float64(c.Width()))
	if h < 1 {
		h = 1
	}
	return canvas.FromImage(imaging.Resize(c, width, h, imaging.Lanczos))
}
