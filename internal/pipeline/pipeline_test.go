package pipeline

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/ppmkit/internal/canvas"
	"github.com/AnyUserName/ppmkit/internal/manifest"
	"github.com/AnyUserName/ppmkit/internal/ppm"
	"github.com/AnyUserName/ppmkit/internal/sample"
	"github.com/AnyUserName/ppmkit/internal/store"
)

func writeFixtures(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, "cards"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(dir, "banner", sample.Gradient(40, 20), store.SaveOptions{Variant: ppm.Binary}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(filepath.Join(dir, "cards"), "card", sample.Checker(16, 16, 4), store.SaveOptions{Variant: ppm.Text, Compress: true}); err != nil {
		t.Fatal(err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 10, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 40), B: 9, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, "logo.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestRun_ConvertsAllSources(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeFixtures(t, in)

	m, err := New(Config{
		InputDir:  in,
		OutputDir: out,
		Formats:   []string{"text", "binary+zstd"},
		Workers:   2,
		Imports:   true,
	}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if m.Stats.TotalImages != 3 {
		t.Fatalf("images: got %d, want 3", m.Stats.TotalImages)
	}
	if m.Stats.TotalOutputs != 6 {
		t.Errorf("outputs: got %d, want 6", m.Stats.TotalOutputs)
	}
	if _, ok := m.Images["cards/card"]; !ok {
		t.Error("cards/card missing from manifest")
	}
	if got := m.Images["logo"].Source.Format; got != "png" {
		t.Errorf("logo format: got %q", got)
	}
	if got := m.Images["banner"].Source.MaxVal; got != 255 {
		t.Errorf("banner maxval: got %d", got)
	}

	// Every output decodes back to the source pixels.
	for key, img := range m.Images {
		for _, o := range img.Outputs {
			c, err := store.Load(filepath.Join(out, o.Path))
			if err != nil {
				t.Fatalf("%s: load %s: %v", key, o.Path, err)
			}
			if c.Width() != img.Source.Width || c.Height() != img.Source.Height {
				t.Errorf("%s: output %dx%d", key, c.Width(), c.Height())
			}
		}
	}

	if err := manifest.WriteJSON(m, filepath.Join(out, manifest.FileName)); err != nil {
		t.Fatal(err)
	}
	if errs := manifest.Validate(m, out); len(errs) != 0 {
		t.Errorf("validate: %v", errs)
	}
}

func TestRun_ImportsDisabled(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeFixtures(t, in)

	m, err := New(Config{InputDir: in, OutputDir: out}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Images["logo"]; ok {
		t.Error("png imported without Imports")
	}
	if m.BuildInfo.Formats[0] != "p6" {
		t.Errorf("default format: got %v", m.BuildInfo.Formats)
	}
}

func TestRun_PartialFailure(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeFixtures(t, in)
	os.WriteFile(filepath.Join(in, "broken.ppm"), []byte("P6\n2 2\n255\n\x00\x00"), 0o644)

	m, err := New(Config{InputDir: in, OutputDir: out}).Run()
	if err != nil {
		t.Fatalf("partial failure should not fail the run: %v", err)
	}
	if m.Stats.Failed != 1 {
		t.Errorf("failed: got %d, want 1", m.Stats.Failed)
	}
	if _, ok := m.Images["broken"]; ok {
		t.Error("broken image present in manifest")
	}
}

func TestRun_AllFailed(t *testing.T) {
	in := t.TempDir()
	os.WriteFile(filepath.Join(in, "a.ppm"), []byte("P9\n"), 0o644)
	os.WriteFile(filepath.Join(in, "b.ppm"), []byte("P3\n1 1\n255\n300 0 0\n"), 0o644)

	_, err := New(Config{InputDir: in, OutputDir: t.TempDir()}).Run()
	if err == nil {
		t.Fatal("expected error when every image fails")
	}
}

func TestRun_EmptyImportFails(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	if _, err := store.Save(in, "good", sample.Gradient(8, 4), store.SaveOptions{}); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(filepath.Join(in, "empty.gif"))
	if err != nil {
		t.Fatal(err)
	}
	if err := gif.Encode(f, image.NewPaletted(image.Rect(0, 0, 0, 0), palette.Plan9), nil); err != nil {
		t.Fatal(err)
	}
	f.Close()

	m, err := New(Config{InputDir: in, OutputDir: out, Imports: true}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if m.Stats.Failed != 1 {
		t.Errorf("failed: got %d, want 1", m.Stats.Failed)
	}
	if _, ok := m.Images["good"]; !ok {
		t.Error("good image missing from manifest")
	}
}

func TestRun_KeyCollision(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	if _, err := store.Save(in, "a", sample.Gradient(8, 4), store.SaveOptions{}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(in, "a", sample.Checker(6, 6, 2), store.SaveOptions{Compress: true}); err != nil {
		t.Fatal(err)
	}

	m, err := New(Config{InputDir: in, OutputDir: out}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if m.Stats.Failed != 1 {
		t.Errorf("failed: got %d, want 1", m.Stats.Failed)
	}
	img, ok := m.Images["a"]
	if !ok {
		t.Fatal("a missing from manifest")
	}
	if img.Source.Path != "a.ppm" {
		t.Errorf("source: got %s, want a.ppm", img.Source.Path)
	}

	// Only the winning source's output is written.
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	var written []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".ppm") {
			written = append(written, e.Name())
		}
	}
	if len(written) != 1 || written[0] != img.Outputs[0].Path {
		t.Errorf("outputs on disk: %v, manifest: %s", written, img.Outputs[0].Path)
	}
}

func TestRun_EmptyDir(t *testing.T) {
	if _, err := New(Config{InputDir: t.TempDir(), OutputDir: t.TempDir()}).Run(); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestResize_Proportional(t *testing.T) {
	c := Resize(sample.Gradient(100, 50), 40)
	if c.Width() != 40 || c.Height() != 20 {
		t.Fatalf("got %dx%d, want 40x20", c.Width(), c.Height())
	}
	tiny := Resize(canvas.New(100, 1), 10)
	if tiny.Height() != 1 {
		t.Errorf("height clamps to 1, got %d", tiny.Height())
	}
}
