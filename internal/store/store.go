// Package store owns the file-system side of ppm images: output path
// resolution, copy naming, optional zstd compression and directory scans.
// The ppm codec itself only sees bytes.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/AnyUserName/ppmkit/internal/canvas"
	"github.com/AnyUserName/ppmkit/internal/ppm"
)

const (
	Ext     = ".ppm"
	ZstdExt = ".zst"

	// MaxCopies bounds the name_copy_N search in ResolvePath.
	MaxCopies = 99
)

var ErrTooManyCopies = errors.New("store: too many copies exist, use a unique name")

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// SaveOptions controls how Save encodes and names its output.
type SaveOptions struct {
	Variant   ppm.Variant
	Compress  bool // write name.ppm.zst
	Overwrite bool // replace an existing file instead of picking a copy name
}

// ResolvePath returns dir/name+ext, or the first free dir/name_copy_N+ext
// when that is taken.
func ResolvePath(dir, name, ext string) (string, error) {
	p := filepath.Join(dir, name+ext)
	taken, err := exists(p)
	if err != nil {
		return "", err
	}
	if !taken {
		return p, nil
	}
	for i := 1; i <= MaxCopies; i++ {
		p = filepath.Join(dir, fmt.Sprintf("%s_copy_%d%s", name, i, ext))
		taken, err := exists(p)
		if err != nil {
			return "", err
		}
		if !taken {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrTooManyCopies, name)
}

func exists(p string) (bool, error) {
	_, err := os.Stat(p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Save encodes c and writes it under dir. It returns the path written.
func Save(dir, name string, c *canvas.Canvas, opts SaveOptions) (string, error) {
	data, err := ppm.Encode(c, opts.Variant)
	if err != nil {
		return "", err
	}
	ext := Ext
	if opts.Compress {
		if data, err = Compress(data); err != nil {
			return "", fmt.Errorf("compress %s: %w", name, err)
		}
		ext += ZstdExt
	}

	path := filepath.Join(dir, name+ext)
	if !opts.Overwrite {
		if path, err = ResolvePath(dir, name, ext); err != nil {
			return "", err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ReadBytes returns the raw PPM bytes at path, decompressing zstd frames.
// A missing file is reported as ppm.ErrSourceNotFound.
func ReadBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ppm.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if bytes.HasPrefix(data, zstdMagic) {
		if data, err = Decompress(data); err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
	}
	return data, nil
}

// Load reads and decodes the image at path.
func Load(path string) (*canvas.Canvas, error) {
	data, err := ReadBytes(path)
	if err != nil {
		return nil, err
	}
	c, err := ppm.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return c, nil
}

// NameFromPath strips the directory and the .ppm / .ppm.zst extension.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ZstdExt)
	return strings.TrimSuffix(base, Ext)
}

// Compress wraps data in a single zstd frame.
func Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data)/4)), nil
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}
