package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/ppmkit/internal/canvas"
	"github.com/AnyUserName/ppmkit/internal/ppm"
	"github.com/AnyUserName/ppmkit/internal/sample"
	"github.com/AnyUserName/ppmkit/internal/store"
)

var (
	benchWidth  int
	benchHeight int
	benchRuns   int
	benchOutDir string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time canvas fill, encode and decode for both PPM variants",
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchWidth, "width", 1920, "canvas width")
	benchCmd.Flags().IntVar(&benchHeight, "height", 1080, "canvas height")
	benchCmd.Flags().IntVarP(&benchRuns, "runs", "r", 3, "runs per step (best time is reported)")
	benchCmd.Flags().StringVarP(&benchOutDir, "out", "o", "", "also write the encoded images here")
	rootCmd.AddCommand(benchCmd)
}

type benchRow struct {
	step  string
	best  time.Duration
	bytes int
}

func runBench(_ *cobra.Command, _ []string) error {
	if err := canvas.CheckSize(benchWidth, benchHeight); err != nil {
		return err
	}
	if benchRuns < 1 {
		benchRuns = 1
	}

	var rows []benchRow
	best := func(step string, fn func() (int, error)) error {
		row := benchRow{step: step, best: time.Duration(1<<63 - 1)}
		for i := 0; i < benchRuns; i++ {
			start := time.Now()
			n, err := fn()
			if err != nil {
				return fmt.Errorf("%s: %w", step, err)
			}
			if d := time.Since(start); d < row.best {
				row.best = d
			}
			row.bytes = n
		}
		logVerbose("%s: best of %d = %s", step, benchRuns, row.best)
		rows = append(rows, row)
		return nil
	}

	c := sample.Gradient(benchWidth, benchHeight)
	if err := best("fill", func() (int, error) {
		sample.Gradient(benchWidth, benchHeight)
		return c.Len() * 3, nil
	}); err != nil {
		return err
	}

	for _, v := range []ppm.Variant{ppm.Binary, ppm.Text} {
		var data []byte
		if err := best("encode "+v.Magic(), func() (int, error) {
			var err error
			data, err = ppm.Encode(c, v)
			return len(data), err
		}); err != nil {
			return err
		}
		if err := best("decode "+v.Magic(), func() (int, error) {
			back, err := ppm.Decode(data)
			if err == nil && !back.Equal(c) {
				err = fmt.Errorf("round trip mismatch")
			}
			return len(data), err
		}); err != nil {
			return err
		}
		if benchOutDir != "" {
			if err := os.MkdirAll(benchOutDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			path, err := store.Save(benchOutDir, "bench_"+v.String(), c, store.SaveOptions{Variant: v})
			if err != nil {
				return err
			}
			logVerbose("wrote %s", path)
		}
	}

	fmt.Println()
	fmt.Printf("  Canvas: %dx%d (%d pixels), best of %d\n\n", benchWidth, benchHeight, c.Len(), benchRuns)
	for _, r := range rows {
		mbps := float64(r.bytes) / (1 << 20) / r.best.Seconds()
		fmt.Printf("    %-10s %12s  %10s  %8.1f MB/s\n", r.step, r.best.Round(time.Microsecond), formatBytes(int64(r.bytes)), mbps)
	}
	fmt.Println()
	return nil
}
