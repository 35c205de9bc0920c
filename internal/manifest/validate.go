package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/ppmkit/internal/hasher"
	"github.com/AnyUserName/ppmkit/internal/ppm"
	"github.com/AnyUserName/ppmkit/internal/store"
)

// Validate checks the manifest's internal consistency and every referenced
// output on disk: presence, size, content hash and PPM header dimensions.
// It returns one message per problem found.
func Validate(m *Manifest, baseDir string) []string {
	var errs []string

	if m.Version != SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	for key, img := range m.Images {
		if img.Source.Width <= 0 || img.Source.Height <= 0 {
			errs = append(errs, fmt.Sprintf("image %q: invalid source dimensions %dx%d",
				key, img.Source.Width, img.Source.Height))
		}
		if img.CanvasHash == "" {
			errs = append(errs, fmt.Sprintf("image %q: missing canvas hash", key))
		}
		if len(img.Outputs) == 0 {
			errs = append(errs, fmt.Sprintf("image %q: no outputs", key))
		}

		seenPaths := map[string]bool{}
		for i, o := range img.Outputs {
			if o.Path == "" {
				errs = append(errs, fmt.Sprintf("image %q output[%d]: missing path", key, i))
				continue
			}
			if seenPaths[o.Path] {
				errs = append(errs, fmt.Sprintf("image %q output[%d]: duplicate path %q", key, i, o.Path))
			}
			seenPaths[o.Path] = true
			errs = append(errs, checkOutput(key, i, o, filepath.Join(baseDir, o.Path))...)
		}
	}

	imageCount := len(m.Images)
	outputCount := 0
	for _, img := range m.Images {
		outputCount += len(img.Outputs)
	}
	if m.Stats.TotalImages != imageCount {
		errs = append(errs, fmt.Sprintf("stats.total_images mismatch: %d != %d", m.Stats.TotalImages, imageCount))
	}
	if m.Stats.TotalOutputs != outputCount {
		errs = append(errs, fmt.Sprintf("stats.total_outputs mismatch: %d != %d", m.Stats.TotalOutputs, outputCount))
	}

	return errs
}

func checkOutput(key string, i int, o Output, fullPath string) []string {
	var errs []string
	prefix := fmt.Sprintf("image %q output[%d]", key, i)

	f, err := os.Open(fullPath)
	if err != nil {
		return append(errs, fmt.Sprintf("%s: file not found: %s", prefix, o.Path))
	}
	defer f.Close()
	if st, err := f.Stat(); err == nil && o.Size > 0 && st.Size() != o.Size {
		errs = append(errs, fmt.Sprintf("%s: size mismatch: manifest=%d, disk=%d", prefix, o.Size, st.Size()))
	}
	if o.Hash != "" {
		sum, err := hasher.ContentHashReader(f, len(o.Hash))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: hash: %v", prefix, err))
		} else if sum != o.Hash {
			errs = append(errs, fmt.Sprintf("%s: content hash mismatch", prefix))
		}
	}

	data, err := store.ReadBytes(fullPath)
	if err != nil {
		return append(errs, fmt.Sprintf("%s: %v", prefix, err))
	}
	h, err := ppm.DecodeHeader(data)
	if err != nil {
		return append(errs, fmt.Sprintf("%s: %v", prefix, err))
	}
	if h.Width != o.Width || h.Height != o.Height {
		errs = append(errs, fmt.Sprintf("%s: header is %dx%d, manifest says %dx%d",
			prefix, h.Width, h.Height, o.Width, o.Height))
	}
	return errs
}
