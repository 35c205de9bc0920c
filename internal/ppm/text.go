package ppm

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/AnyUserName/ppmkit/internal/canvas"
)

// decodeText parses three decimal tokens per pixel, row-major.
func decodeText(h Header, tokens []string) (*canvas.Canvas, error) {
	need, ok := h.units()
	if !ok {
		return nil, malformed("dimensions %dx%d too large", h.Width, h.Height)
	}
	if len(tokens) < need {
		return nil, fmt.Errorf("%w: have %d values, need %d", ErrTruncatedData, len(tokens), need)
	}

	// Parse before allocating so a bad token never leaves a half-filled canvas behind.
	vals := make([]uint8, need)
	for i := range vals {
		n, err := strconv.ParseUint(tokens[i], 10, 8)
		if err != nil {
			return nil, &PixelValueError{Index: i, Token: tokens[i]}
		}
		vals[i] = uint8(n)
	}

	c := canvas.New(h.Width, h.Height)
	pix := c.Pixels()
	for i := range pix {
		j := i * 3
		pix[i] = canvas.RGB{R: vals[j], G: vals[j+1], B: vals[j+2]}
	}
	return c, nil
}

// WriteText writes c as a P3 image, one "R G B" line per pixel.
func WriteText(w io.Writer, c *canvas.Canvas) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n%d\n", c.Width(), c.Height(), MaxVal); err != nil {
		return err
	}
	line := make([]byte, 0, len("255 255 255\n"))
	for px := range c.All() {
		line = line[:0]
		line = strconv.AppendUint(line, uint64(px.R), 10)
		line = append(line, ' ')
		line = strconv.AppendUint(line, uint64(px.G), 10)
		line = append(line, ' ')
		line = strconv.AppendUint(line, uint64(px.B), 10)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EncodeText returns c as P3 bytes.
func EncodeText(c *canvas.Canvas) []byte {
	var buf bytes.Buffer
	buf.Grow(32 + c.Len()*12)
	_ = WriteText(&buf, c)
	return buf.Bytes()
}
