package preset

import (
	"errors"
	"fmt"

	"github.com/AnyUserName/ppmkit/internal/ppm"
)

// Pattern names a sample image generator.
type Pattern string

const (
	Gradient Pattern = "gradient"
	Checker  Pattern = "checker"
	Solid    Pattern = "solid"
)

var ErrUnknownPattern = errors.New("preset: unknown pattern")

// ParsePattern accepts gradient, checker or solid.
func ParsePattern(s string) (Pattern, error) {
	switch p := Pattern(s); p {
	case Gradient, Checker, Solid:
		return p, nil
	}
	return "", fmt.Errorf("%w %q (want %s, %s or %s)", ErrUnknownPattern, s, Gradient, Checker, Solid)
}

// Preset defines the parameters of a generated sample image.
type Preset struct {
	Name    string
	Width   int
	Height  int
	Pattern Pattern
	Cell    int         // checker cell size in pixels
	Variant ppm.Variant // default output encoding
}

// Built-in presets.
var presets = map[string]Preset{
	"hd": {
		Name:    "hd",
		Width:   1920,
		Height:  1080,
		Pattern: Gradient,
		Variant: ppm.Binary,
	},
	"vga": {
		Name:    "vga",
		Width:   640,
		Height:  480,
		Pattern: Checker,
		Cell:    32,
		Variant: ppm.Binary,
	},
	"thumb": {
		Name:    "thumb",
		Width:   64,
		Height:  64,
		Pattern: Gradient,
		Variant: ppm.Text,
	},
	"tiny": {
		Name:    "tiny",
		Width:   3,
		Height:  3,
		Pattern: Solid,
		Variant: ppm.Text,
	},
}

// Get returns a preset by name. Falls back to hd if unknown.
func Get(name string) Preset {
	if p, ok := presets[name]; ok {
		return p
	}
	p := presets["hd"]
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in presets in a stable order.
func Names() []string {
	return []string{"hd", "vga", "thumb", "tiny"}
}

// Pixels returns the pixel count of the preset image.
func (p Preset) Pixels() int {
	return p.Width * p.Height
}
