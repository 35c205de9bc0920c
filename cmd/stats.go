package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/ppmkit/internal/manifest"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a built output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}
	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
		if m.BuildInfo.Resize > 0 {
			fmt.Printf("  Resize width:     %d\n", m.BuildInfo.Resize)
		}
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total images:     %d\n", s.TotalImages)
	fmt.Printf("  Total outputs:    %d\n", s.TotalOutputs)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	if s.Failed > 0 {
		fmt.Printf("  Failed sources:   %d\n", s.Failed)
	}
	fmt.Println()

	// Per-format breakdown.
	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, img := range m.Images {
		for _, o := range img.Outputs {
			fs := formatStats[o.Format]
			fs.count++
			fs.bytes += o.Size
			formatStats[o.Format] = fs
		}
	}
	fmt.Println("  Format breakdown:")
	for _, f := range []string{"p6", "p3", "p6+zstd", "p3+zstd"} {
		if fs, ok := formatStats[f]; ok {
			fmt.Printf("    %-8s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
		}
	}
	fmt.Println()

	// Per-source-format breakdown.
	sourceStats := map[string]int{}
	for _, img := range m.Images {
		sourceStats[img.Source.Format]++
	}
	var sourceFormats []string
	for f := range sourceStats {
		sourceFormats = append(sourceFormats, f)
	}
	sort.Strings(sourceFormats)
	fmt.Println("  Sources:")
	for _, f := range sourceFormats {
		fmt.Printf("    %-6s  %4d images\n", f, sourceStats[f])
	}

	// Warnings.
	var warnings []string
	for key, img := range m.Images {
		if len(img.Outputs) == 0 {
			warnings = append(warnings, fmt.Sprintf("image %q has no outputs", key))
		}
		if img.Source.MaxVal != 0 && img.Source.MaxVal != 255 {
			warnings = append(warnings, fmt.Sprintf("image %q source maxval is %d", key, img.Source.MaxVal))
		}
	}
	if len(warnings) > 0 {
		sort.Strings(warnings)
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
