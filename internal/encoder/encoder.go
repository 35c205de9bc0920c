package encoder

import (
	"github.com/AnyUserName/ppmkit/internal/canvas"
)

// Encoder serializes a canvas to one output format.
type Encoder interface {
	// Format returns the canonical format name (e.g. "p6", "p3", "p6+zstd").
	Format() string

	// Encode converts the canvas to bytes.
	Encode(c *canvas.Canvas) ([]byte, error)

	// Extension returns the file extension without the leading dot.
	Extension() string
}
