package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/ppmkit/internal/pipeline"
	"github.com/AnyUserName/ppmkit/internal/ppm"
	"github.com/AnyUserName/ppmkit/internal/store"
)

var (
	convFormat    string
	convName      string
	convResize    int
	convCompress  bool
	convOverwrite bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.ppm> <out_dir>",
	Short: "Re-encode a PPM image as P6 or P3",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convFormat, "format", "f", "p6", "target variant: p6/binary or p3/text")
	convertCmd.Flags().StringVarP(&convName, "name", "n", "", "output name without extension (default: input name)")
	convertCmd.Flags().IntVar(&convResize, "resize", 0, "resize to this width, keeping aspect ratio")
	convertCmd.Flags().BoolVarP(&convCompress, "zstd", "z", false, "compress output with zstd")
	convertCmd.Flags().BoolVar(&convOverwrite, "overwrite", false, "replace an existing file")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, args []string) error {
	in, outDir := args[0], args[1]

	v, err := ppm.ParseVariant(convFormat)
	if err != nil {
		return err
	}

	c, err := store.Load(in)
	if err != nil {
		return err
	}
	logVerbose("loaded %s: %dx%d", in, c.Width(), c.Height())

	if convResize > 0 && convResize != c.Width() {
		c = pipeline.Resize(c, convResize)
		logVerbose("resized to %dx%d", c.Width(), c.Height())
	}

	name := convName
	if name == "" {
		name = store.NameFromPath(in)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path, err := store.Save(outDir, name, c, store.SaveOptions{
		Variant:   v,
		Compress:  convCompress,
		Overwrite: convOverwrite,
	})
	if err != nil {
		return err
	}
	fmt.Printf("  ✓ %s → %s (%s)\n", in, path, v.Magic())
	return nil
}
