package encoder

import (
	"github.com/AnyUserName/ppmkit/internal/canvas"
	"github.com/AnyUserName/ppmkit/internal/ppm"
	"github.com/AnyUserName/ppmkit/internal/store"
)

// BinaryEncoder writes P6.
type BinaryEncoder struct{}

func (e *BinaryEncoder) Format() string    { return "p6" }
func (e *BinaryEncoder) Extension() string { return "ppm" }

func (e *BinaryEncoder) Encode(c *canvas.Canvas) ([]byte, error) {
	return ppm.EncodeBinary(c), nil
}

// TextEncoder writes P3.
type TextEncoder struct{}

func (e *TextEncoder) Format() string    { return "p3" }
func (e *TextEncoder) Extension() string { return "ppm" }

func (e *TextEncoder) Encode(c *canvas.Canvas) ([]byte, error) {
	return ppm.EncodeText(c), nil
}

// ZstdEncoder compresses the output of another encoder.
type ZstdEncoder struct {
	Inner Encoder
}

func (e *ZstdEncoder) Format() string    { return e.Inner.Format() + "+zstd" }
func (e *ZstdEncoder) Extension() string { return e.Inner.Extension() + ".zst" }

func (e *ZstdEncoder) Encode(c *canvas.Canvas) ([]byte, error) {
	data, err := e.Inner.Encode(c)
	if err != nil {
		return nil, err
	}
	return store.Compress(data)
}
