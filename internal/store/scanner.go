package store

import (
	"os"
	"path/filepath"
	"strings"
)

// Source represents a discovered image file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the scanned directory.
	RelPath string
	// Key is RelPath without extension, forward slashes.
	Key string
	// Format is "ppm" for PPM files, otherwise the lower-case extension
	// of an importable image ("png", "jpeg", ...).
	Format string
	// Compressed is set for .ppm.zst files.
	Compressed bool
	// Size is the file size in bytes.
	Size int64
}

// importExtensions lists non-PPM formats that can be decoded into a canvas.
var importExtensions = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tiff": "tiff",
	".tif":  "tiff",
	".webp": "webp",
}

// Scan walks dir and returns PPM sources, plus importable images when
// withImports is set. Hidden directories are skipped.
func Scan(dir string, withImports bool) ([]Source, error) {
	var sources []Source

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		lower := strings.ToLower(info.Name())
		var ext, format string
		compressed := false
		switch {
		case strings.HasSuffix(lower, Ext+ZstdExt):
			ext, format, compressed = info.Name()[len(info.Name())-len(Ext+ZstdExt):], "ppm", true
		case strings.HasSuffix(lower, Ext):
			ext, format = filepath.Ext(info.Name()), "ppm"
		default:
			e := filepath.Ext(info.Name())
			f, ok := importExtensions[strings.ToLower(e)]
			if !ok || !withImports {
				return nil
			}
			ext, format = e, f
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(strings.TrimSuffix(relPath, ext))

		sources = append(sources, Source{
			AbsPath:    path,
			RelPath:    filepath.ToSlash(relPath),
			Key:        key,
			Format:     format,
			Compressed: compressed,
			Size:       info.Size(),
		})
		return nil
	})

	return sources, err
}
