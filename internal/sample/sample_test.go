package sample

import (
	"errors"
	"testing"

	"github.com/AnyUserName/ppmkit/internal/canvas"
	"github.com/AnyUserName/ppmkit/internal/ppm"
	"github.com/AnyUserName/ppmkit/internal/preset"
)

func TestGradient_Corners(t *testing.T) {
	c := Gradient(256, 256)
	if px, _ := c.Get(0, 0); px != (canvas.RGB{}) {
		t.Errorf("top-left: got %+v", px)
	}
	if px, _ := c.Get(255, 255); px != (canvas.RGB{R: 255, G: 255}) {
		t.Errorf("bottom-right: got %+v", px)
	}
	if px, _ := c.Get(0, 128); px.G != 128 || px.R != 0 {
		t.Errorf("top-middle: got %+v", px)
	}
}

func TestChecker_Cells(t *testing.T) {
	c := Checker(8, 8, 4)
	a, _ := c.Get(0, 0)
	b, _ := c.Get(0, 4)
	d, _ := c.Get(4, 4)
	if a.R != 0 || b.R != 255 || d.R != 0 {
		t.Errorf("unexpected cells: %+v %+v %+v", a, b, d)
	}
}

func TestFromPreset_AllPresetsEncode(t *testing.T) {
	for _, name := range preset.Names() {
		p := preset.Get(name)
		if p.Pixels() > 100_000 {
			continue // hd is covered by the ppm benchmarks
		}
		c := FromPreset(p)
		if c.Width() != p.Width || c.Height() != p.Height {
			t.Errorf("%s: got %dx%d", name, c.Width(), c.Height())
		}
		data, err := ppm.Encode(c, p.Variant)
		if err != nil {
			t.Fatalf("%s: encode: %v", name, err)
		}
		back, err := ppm.Decode(data)
		if err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if !back.Equal(c) {
			t.Errorf("%s: round trip mismatch", name)
		}
	}
}

func TestPresetFallback(t *testing.T) {
	p := preset.Get("nonexistent")
	if p.Name != "nonexistent" || p.Width != 1920 {
		t.Errorf("fallback preset: %+v", p)
	}
}

func TestParsePattern(t *testing.T) {
	for _, s := range []string{"gradient", "checker", "solid"} {
		if p, err := preset.ParsePattern(s); err != nil || string(p) != s {
			t.Errorf("%q: got %q, %v", s, p, err)
		}
	}
	if _, err := preset.ParsePattern("stripes"); !errors.Is(err, preset.ErrUnknownPattern) {
		t.Errorf("stripes: got %v", err)
	}
}
