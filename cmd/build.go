package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/ppmkit/internal/manifest"
	"github.com/AnyUserName/ppmkit/internal/pipeline"
)

var (
	buildOutDir  string
	buildWorkers int
	buildFormats []string
	buildResize  int
	buildImports bool
	buildStrict  bool
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Batch-convert a directory of images to PPM + manifest",
	Long: `Scans input directory for .ppm and .ppm.zst files (and, with --import,
png/jpeg/gif/bmp/tiff/webp), re-encodes each into every requested format
(p6, p3, p6+zstd, p3+zstd), and writes a manifest file.

Output filenames are content-addressed: <key>.<w>x<h>.<hash>.ppm[.zst]`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./ppmkit_out", "output directory")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().StringSliceVarP(&buildFormats, "formats", "f", []string{"p6"}, "output formats")
	buildCmd.Flags().IntVar(&buildResize, "resize", 0, "resize to this width (0 = original)")
	buildCmd.Flags().BoolVar(&buildImports, "import", false, "also convert non-PPM images")
	buildCmd.Flags().BoolVar(&buildStrict, "strict", false, "reject PPM sources with maxval other than 255")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(_ *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("formats: %v (resize=%d, import=%v)", buildFormats, buildResize, buildImports)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:     absInput,
		OutputDir:    absOutput,
		Formats:      buildFormats,
		Resize:       buildResize,
		Workers:      buildWorkers,
		Imports:      buildImports,
		StrictMaxVal: buildStrict,
		Logger:       logger,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(m, time.Since(start))
	return nil
}

func printBuildReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║              ppmkit build complete               ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := m.Stats
	fmt.Printf("  Images:      %d\n", stats.TotalImages)
	fmt.Printf("  Outputs:     %d\n", stats.TotalOutputs)
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	if stats.Failed > 0 {
		fmt.Printf("  Failed:      %d images (see log)\n", stats.Failed)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.BuildInfo.Workers)
		fmt.Printf("  Formats:     %s\n", strings.Join(m.BuildInfo.Formats, ", "))
	}
	fmt.Println()

	// Top 10 largest sources.
	if len(m.Images) > 0 {
		type imageSize struct {
			key        string
			inputSize  int64
			outputSize int64
		}
		var items []imageSize
		for key, img := range m.Images {
			var outSum int64
			for _, o := range img.Outputs {
				outSum += o.Size
			}
			items = append(items, imageSize{key, img.Source.Size, outSum})
		}
		sort.Slice(items, func(i, j int) bool {
			return items[i].inputSize > items[j].inputSize
		})
		n := min(len(items), 10)
		fmt.Printf("  Top %d largest (source → all outputs):\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %8s → %8s\n",
				truncKey(it.key, 40),
				formatBytes(it.inputSize),
				formatBytes(it.outputSize),
			)
		}
		fmt.Println()
	}

	data, _ := json.Marshal(m)
	fmt.Printf("  Manifest:    %s (%s)\n", manifest.FileName, formatBytes(int64(len(data))))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
