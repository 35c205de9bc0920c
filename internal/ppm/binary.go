package ppm

import (
	"bytes"
	"fmt"
	"io"

	"github.com/AnyUserName/ppmkit/internal/canvas"
)

// decodeBinary fills a canvas from raw RGB triples. body starts at the first
// pixel byte.
func decodeBinary(h Header, body []byte) (*canvas.Canvas, error) {
	need, ok := h.units()
	if !ok {
		return nil, malformed("dimensions %dx%d too large", h.Width, h.Height)
	}
	if len(body) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrTruncatedData, len(body), need)
	}

	c := canvas.New(h.Width, h.Height)
	pix := c.Pixels()
	for i := range pix {
		j := i * 3
		pix[i] = canvas.RGB{R: body[j], G: body[j+1], B: body[j+2]}
	}
	return c, nil
}

// WriteBinary writes c as a P6 image.
func WriteBinary(w io.Writer, c *canvas.Canvas) error {
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n%d\n", c.Width(), c.Height(), MaxVal); err != nil {
		return err
	}

	// One row at a time keeps the scratch buffer small for large canvases.
	pix := c.Pixels()
	row := make([]byte, c.Width()*3)
	for y := 0; y < c.Height(); y++ {
		line := pix[y*c.Width() : (y+1)*c.Width()]
		for x, px := range line {
			row[x*3] = px.R
			row[x*3+1] = px.G
			row[x*3+2] = px.B
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// EncodeBinary returns c as P6 bytes.
func EncodeBinary(c *canvas.Canvas) []byte {
	var buf bytes.Buffer
	buf.Grow(32 + c.Len()*3)
	_ = WriteBinary(&buf, c) // bytes.Buffer writes do not fail
	return buf.Bytes()
}
