package hasher

import (
	"bytes"
	"testing"

	"github.com/AnyUserName/ppmkit/internal/canvas"
	"github.com/AnyUserName/ppmkit/internal/ppm"
)

func TestContentHash_Length(t *testing.T) {
	data := []byte("P6\n1 1\n255\n\x01\x02\x03")
	if got := ContentHash(data, 0); len(got) != 16 {
		t.Errorf("full hash: got %d chars", len(got))
	}
	if got := ContentHash(data, 8); len(got) != 8 {
		t.Errorf("short hash: got %d chars", len(got))
	}
	if ContentHash(data, 8) != ContentHash(data, 0)[:8] {
		t.Error("short hash is not a prefix of full hash")
	}
}

func TestContentHashReader_MatchesBytes(t *testing.T) {
	data := bytes.Repeat([]byte{7, 8, 9}, 1000)
	got, err := ContentHashReader(bytes.NewReader(data), 16)
	if err != nil {
		t.Fatal(err)
	}
	if got != ContentHash(data, 16) {
		t.Errorf("reader hash %s != byte hash %s", got, ContentHash(data, 16))
	}
}

func TestCanvasHash_VariantIndependent(t *testing.T) {
	c := canvas.New(5, 4)
	for i := range c.Pixels() {
		c.Pixels()[i] = canvas.RGB{R: uint8(i), G: uint8(i * 3), B: 200}
	}

	fromBinary, err := ppm.Decode(ppm.EncodeBinary(c))
	if err != nil {
		t.Fatal(err)
	}
	fromText, err := ppm.Decode(ppm.EncodeText(c))
	if err != nil {
		t.Fatal(err)
	}
	if CanvasHash(fromBinary, 0) != CanvasHash(fromText, 0) {
		t.Error("P6 and P3 decodes of the same canvas hash differently")
	}
	if ContentHash(ppm.EncodeBinary(c), 0) == ContentHash(ppm.EncodeText(c), 0) {
		t.Error("different encodings should not share a content hash")
	}
}

func TestCanvasHash_DimensionsMatter(t *testing.T) {
	// Same six zero pixels, different shape.
	if CanvasHash(canvas.New(2, 3), 0) == CanvasHash(canvas.New(3, 2), 0) {
		t.Error("2x3 and 3x2 canvases collide")
	}
}
