package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/AnyUserName/ppmkit/internal/canvas"
)

// ContentHash computes the xxHash64 of encoded file bytes as hex, truncated
// to hexLen when 0 < hexLen < 16. Used for content-addressed output names.
func ContentHash(data []byte, hexLen int) string {
	return truncate(xxhash.Sum64(data), hexLen)
}

// ContentHashReader is ContentHash over a stream.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return truncate(h.Sum64(), hexLen), nil
}

// CanvasHash hashes dimensions and pixel values only, so the P6 and P3
// encodings of one canvas hash the same.
func CanvasHash(c *canvas.Canvas, hexLen int) string {
	h := xxhash.New()
	var dims [16]byte
	binary.BigEndian.PutUint64(dims[:8], uint64(c.Width()))
	binary.BigEndian.PutUint64(dims[8:], uint64(c.Height()))
	h.Write(dims[:])

	row := make([]byte, 0, c.Width()*3)
	for i, px := range c.Pixels() {
		row = append(row, px.R, px.G, px.B)
		if (i+1)%c.Width() == 0 {
			h.Write(row)
			row = row[:0]
		}
	}
	return truncate(h.Sum64(), hexLen)
}

func truncate(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
