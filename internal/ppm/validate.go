package ppm

// checkSize requires exactly width*height*3 channel values. It runs before
// the destination canvas is allocated.
func checkSize(h Header, actual int) error {
	expected, ok := h.units()
	if !ok {
		return malformed("dimensions %dx%d too large", h.Width, h.Height)
	}
	if actual != expected {
		return &SizeMismatchError{Variant: h.Variant, Expected: expected, Actual: actual}
	}
	return nil
}
