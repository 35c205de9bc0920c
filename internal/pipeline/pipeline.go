package pipeline

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/AnyUserName/ppmkit/internal/encoder"
	"github.com/AnyUserName/ppmkit/internal/manifest"
	"github.com/AnyUserName/ppmkit/internal/store"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir     string
	OutputDir    string
	Formats      []string // encoder names or aliases, see encoder.Registry
	Resize       int      // target width, 0 keeps the original size
	Workers      int
	Imports      bool // also convert png/jpeg/gif/bmp/tiff/webp sources
	StrictMaxVal bool
	Logger       *zap.SugaredLogger
}

// Pipeline converts every image under InputDir into the requested PPM
// formats.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
	log      *zap.SugaredLogger
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
		log:      log,
	}
}

// Run executes the full build and returns the manifest. Individual failures
// are logged and counted; Run fails only when no source could be processed.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	p.log.Debugw("starting build", "registry", p.registry.String(), "workers", p.cfg.Workers)

	// Step 1: Scan for images.
	sources, err := store.Scan(p.cfg.InputDir, p.cfg.Imports)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	formats := p.registry.Resolve(p.cfg.Formats)
	p.log.Debugw("found sources", "count", len(sources), "formats", formats)

	// Step 2: Process images in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	// Scan order is lexical, so for a shared key the first path wins and
	// later ones fail instead of overwriting its manifest entry.
	owner := make(map[string]string, len(sources))
	for i, src := range sources {
		if first, ok := owner[src.Key]; ok {
			results[i] = processResult{
				key: src.Key,
				err: fmt.Errorf("%s: key %q already taken by %s", src.RelPath, src.Key, first),
			}
			continue
		}
		owner[src.Key] = src.RelPath

		wg.Add(1)
		go func(idx int, s store.Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			p.log.Debugw("processing", "key", s.Key)
			results[idx] = p.processImage(s, formats)
			if results[idx].err == nil {
				p.log.Debugw("done", "key", s.Key, "outputs", len(results[idx].image.Outputs))
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into manifest.
	m := manifest.New()
	var errs error
	for _, r := range results {
		if r.err != nil {
			errs = multierr.Append(errs, r.err)
			continue
		}
		m.Images[r.key] = r.image
	}

	failed := multierr.Errors(errs)
	if len(failed) > 0 {
		if len(failed) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process: %w", len(failed), errs)
		}
		for _, e := range failed {
			p.log.Errorw("image failed", "error", e)
		}
		p.log.Warnf("%d of %d images had errors", len(failed), len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers: p.cfg.Workers,
		Formats: formats,
		Resize:  p.cfg.Resize,
	}
	m.Stats.Failed = len(failed)
	m.ComputeStats()
	return m, nil
}
