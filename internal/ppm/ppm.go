// Package ppm decodes and encodes Portable Pixmap images in their binary
// (P6) and ASCII (P3) forms.
//
// Decoding works on a fully resident byte slice: the header is parsed, the
// payload length is checked against the declared dimensions, and only then
// is the canvas allocated and filled. On error no canvas is returned.
//
// The two variants share only the magic-token read. P6 headers are scanned
// digit run by digit run because the pixel bytes that follow may contain
// values indistinguishable from whitespace; P3 content is split on
// whitespace throughout.
package ppm

import (
	"fmt"

	"github.com/AnyUserName/ppmkit/internal/canvas"
)

// DecodeOptions tunes header policy.
type DecodeOptions struct {
	// StrictMaxVal rejects headers whose maxval is not 255. By default the
	// value is parsed and reported in the Header but not enforced.
	StrictMaxVal bool
}

// Decode parses a P6 or P3 image.
func Decode(data []byte) (*canvas.Canvas, error) {
	c, _, err := DecodeWithOptions(data, DecodeOptions{})
	return c, err
}

// DecodeWithOptions parses a P6 or P3 image and also returns its header.
func DecodeWithOptions(data []byte, opts DecodeOptions) (*canvas.Canvas, Header, error) {
	v, err := readMagic(data)
	if err != nil {
		return nil, Header{}, err
	}

	switch v {
	case Binary:
		h, off, err := parseBinaryHeader(data)
		if err != nil {
			return nil, Header{}, err
		}
		if err := checkMaxVal(h, opts); err != nil {
			return nil, Header{}, err
		}
		body := data[off:]
		if err := checkSize(h, len(body)); err != nil {
			return nil, Header{}, err
		}
		c, err := decodeBinary(h, body)
		if err != nil {
			return nil, Header{}, err
		}
		return c, h, nil

	case Text:
		h, tokens, err := parseTextHeader(data)
		if err != nil {
			return nil, Header{}, err
		}
		if err := checkMaxVal(h, opts); err != nil {
			return nil, Header{}, err
		}
		if err := checkSize(h, len(tokens)); err != nil {
			return nil, Header{}, err
		}
		c, err := decodeText(h, tokens)
		if err != nil {
			return nil, Header{}, err
		}
		return c, h, nil
	}
	return nil, Header{}, fmt.Errorf("%w: %s", ErrUnrecognizedFormat, v)
}

// DecodeHeader parses only the header. The payload is not validated.
func DecodeHeader(data []byte) (Header, error) {
	v, err := readMagic(data)
	if err != nil {
		return Header{}, err
	}
	if v == Text {
		h, _, err := parseTextHeader(data)
		return h, err
	}
	h, _, err := parseBinaryHeader(data)
	return h, err
}

func checkMaxVal(h Header, opts DecodeOptions) error {
	if opts.StrictMaxVal && h.MaxVal != MaxVal {
		return malformed("maxval %d, only %d is supported", h.MaxVal, MaxVal)
	}
	return nil
}

// Encode serializes c in the requested variant.
func Encode(c *canvas.Canvas, v Variant) ([]byte, error) {
	switch v {
	case Binary:
		return EncodeBinary(c), nil
	case Text:
		return EncodeText(c), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnrecognizedFormat, v)
}
