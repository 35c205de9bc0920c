package ppm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Variant selects between the two PPM encodings.
type Variant int

const (
	Binary Variant = iota // P6
	Text                  // P3
)

// MaxVal is the only channel maximum the encoders write.
const MaxVal = 255

func (v Variant) String() string {
	switch v {
	case Binary:
		return "binary"
	case Text:
		return "text"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Magic returns the two-byte format token.
func (v Variant) Magic() string {
	if v == Text {
		return "P3"
	}
	return "P6"
}

// ParseVariant accepts a magic token or a variant name.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "p6", "binary", "raw":
		return Binary, nil
	case "p3", "text", "ascii", "plain", "string":
		return Text, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, s)
}

// Header is the decoded PPM header.
type Header struct {
	Variant Variant
	Width   int
	Height  int
	MaxVal  int
}

// units returns width*height*3, or false when it does not fit in an int.
func (h Header) units() (int, bool) {
	if h.Width <= 0 || h.Height <= 0 {
		return 0, false
	}
	if h.Width > math.MaxInt/3/h.Height {
		return 0, false
	}
	return h.Width * h.Height * 3, true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// readMagic identifies the variant from the first two bytes and checks the
// single whitespace byte that must follow them.
func readMagic(data []byte) (Variant, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("%w: input is %d bytes", ErrUnrecognizedFormat, len(data))
	}
	var v Variant
	switch string(data[:2]) {
	case "P6":
		v = Binary
	case "P3":
		v = Text
	default:
		return 0, fmt.Errorf("%w: magic %q", ErrUnrecognizedFormat, data[:2])
	}
	if len(data) < 3 || !isSpace(data[2]) {
		return 0, malformed("missing separator after %s", v.Magic())
	}
	return v, nil
}

// parseBinaryHeader reads the P6 header digit run by digit run, consuming
// exactly one non-digit delimiter after each. The returned offset is the
// first pixel byte; nothing after it is treated as text.
func parseBinaryHeader(data []byte) (Header, int, error) {
	h := Header{Variant: Binary}
	pos := 3
	fields := [3]*int{&h.Width, &h.Height, &h.MaxVal}
	names := [3]string{"width", "height", "maxval"}
	for i, dst := range fields {
		start := pos
		for pos < len(data) && isDigit(data[pos]) {
			pos++
		}
		if pos == start {
			return Header{}, 0, malformed("missing %s", names[i])
		}
		n, err := strconv.Atoi(string(data[start:pos]))
		if err != nil {
			return Header{}, 0, malformed("%s %q: %v", names[i], data[start:pos], err)
		}
		if pos >= len(data) {
			return Header{}, 0, malformed("no delimiter after %s", names[i])
		}
		*dst = n
		pos++
	}
	if err := checkDimensions(h); err != nil {
		return Header{}, 0, err
	}
	return h, pos, nil
}

// splitTokens splits P3 content on spaces and newlines, dropping empty fields.
func splitTokens(data []byte) []string {
	return strings.FieldsFunc(string(data), func(r rune) bool {
		return r < 0x80 && isSpace(byte(r))
	})
}

// parseTextHeader tokenizes everything after the magic and returns the
// header plus the remaining pixel tokens.
func parseTextHeader(data []byte) (Header, []string, error) {
	h := Header{Variant: Text}
	tokens := splitTokens(data[3:])
	names := [3]string{"width", "height", "maxval"}
	fields := [3]*int{&h.Width, &h.Height, &h.MaxVal}
	for i, dst := range fields {
		if i >= len(tokens) {
			return Header{}, nil, malformed("missing %s", names[i])
		}
		n, err := strconv.ParseUint(tokens[i], 10, 0)
		if err != nil || n > math.MaxInt {
			return Header{}, nil, malformed("%s %q", names[i], tokens[i])
		}
		*dst = int(n)
	}
	if err := checkDimensions(h); err != nil {
		return Header{}, nil, err
	}
	return h, tokens[3:], nil
}

func checkDimensions(h Header) error {
	if h.Width == 0 || h.Height == 0 {
		return malformed("zero dimension %dx%d", h.Width, h.Height)
	}
	if _, ok := h.units(); !ok {
		return malformed("dimensions %dx%d too large", h.Width, h.Height)
	}
	return nil
}
