package manifest

// Manifest is the top-level output of a ppmkit build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	BasePath    string           `json:"base_path"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Images      map[string]Image `json:"images"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers int      `json:"workers"`
	Formats []string `json:"formats"`
	Resize  int      `json:"resize,omitempty"` // target width, 0 = original size
}

// Image describes one source file and every encoded output of it.
type Image struct {
	Source     SourceInfo `json:"source"`
	CanvasHash string     `json:"canvas_hash"` // xxhash64 of dimensions + pixels
	Outputs    []Output   `json:"outputs"`
}

// SourceInfo holds metadata about the input file.
type SourceInfo struct {
	Path   string `json:"path"`
	Format string `json:"format"` // "ppm" or an imported format such as "png"
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
	MaxVal int    `json:"maxval,omitempty"` // ppm sources only
}

// Output is one encoded file written by the build.
type Output struct {
	Format string `json:"format"` // "p6", "p3", "p6+zstd", "p3+zstd"
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"` // bytes on disk
	Hash   string `json:"hash"` // 16 hex chars of xxhash64 over the file bytes
	Path   string `json:"path"` // relative to base_path
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalImages      int   `json:"total_images"`
	TotalOutputs     int   `json:"total_outputs"`
	Failed           int   `json:"failed,omitempty"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the manifest's name inside a build output directory.
const FileName = "ppmkit.manifest.json"
