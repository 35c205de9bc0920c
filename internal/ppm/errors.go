package ppm

import (
	"errors"
	"fmt"
)

var (
	ErrSourceNotFound     = errors.New("ppm: source not found")
	ErrUnrecognizedFormat = errors.New("ppm: unrecognized format")
	ErrMalformedHeader    = errors.New("ppm: malformed header")
	ErrSizeMismatch       = errors.New("ppm: payload size does not match dimensions")
	ErrTruncatedData      = errors.New("ppm: truncated pixel data")
	ErrInvalidPixelValue  = errors.New("ppm: invalid pixel value")
)

// SizeMismatchError reports the channel-value count a header promised
// against the count actually present. Bytes for P6, tokens for P3.
type SizeMismatchError struct {
	Variant  Variant
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("ppm: %s payload has %d values, dimensions require %d", e.Variant, e.Actual, e.Expected)
}

func (e *SizeMismatchError) Is(target error) bool { return target == ErrSizeMismatch }

// PixelValueError reports a P3 token that is not a decimal in [0, 255].
// Index counts channel values from the start of the pixel section.
type PixelValueError struct {
	Index int
	Token string
}

func (e *PixelValueError) Error() string {
	return fmt.Sprintf("ppm: invalid pixel value %q at channel %d", e.Token, e.Index)
}

func (e *PixelValueError) Is(target error) bool { return target == ErrInvalidPixelValue }

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedHeader}, args...)...)
}
