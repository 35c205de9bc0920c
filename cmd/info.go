package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/ppmkit/internal/hasher"
	"github.com/AnyUserName/ppmkit/internal/ppm"
	"github.com/AnyUserName/ppmkit/internal/store"
)

var infoStrict bool

var infoCmd = &cobra.Command{
	Use:   "info <file.ppm>",
	Short: "Print header fields and hashes of a PPM image",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoStrict, "strict", false, "reject maxval other than 255")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, args []string) error {
	path := args[0]

	st, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ppm.ErrSourceNotFound, path)
		}
		return err
	}
	data, err := store.ReadBytes(path)
	if err != nil {
		return err
	}

	c, h, err := ppm.DecodeWithOptions(data, ppm.DecodeOptions{StrictMaxVal: infoStrict})
	if err != nil {
		// Still show what the header says when only the payload is bad.
		if hdr, herr := ppm.DecodeHeader(data); herr == nil {
			printHeader(path, hdr, st.Size(), int64(len(data)))
		}
		return err
	}

	printHeader(path, h, st.Size(), int64(len(data)))
	fmt.Printf("  Pixels:       %d\n", c.Len())
	fmt.Printf("  File hash:    %s\n", hasher.ContentHash(data, 16))
	fmt.Printf("  Canvas hash:  %s\n", hasher.CanvasHash(c, 16))
	if h.MaxVal != ppm.MaxVal {
		fmt.Printf("  ⚠ maxval %d (only %d is written by ppmkit)\n", h.MaxVal, ppm.MaxVal)
	}
	fmt.Println()
	return nil
}

func printHeader(path string, h ppm.Header, diskSize, rawSize int64) {
	fmt.Println()
	fmt.Printf("  File:         %s\n", path)
	fmt.Printf("  Format:       %s (%s)\n", h.Variant.Magic(), h.Variant)
	fmt.Printf("  Dimensions:   %dx%d\n", h.Width, h.Height)
	fmt.Printf("  Maxval:       %d\n", h.MaxVal)
	fmt.Printf("  Size on disk: %s\n", formatBytes(diskSize))
	if rawSize != diskSize {
		fmt.Printf("  Size (raw):   %s\n", formatBytes(rawSize))
	}
}
