package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "0.1.0"
	verbose bool
	logger  = zap.NewNop().Sugar()
)

var rootCmd = &cobra.Command{
	Use:   "ppmkit",
	Short: "Read, write and convert PPM (P6/P3) images",
	Long: `ppmkit — an in-memory RGB canvas with a strict PPM codec.

Generates sample images, converts between the binary (P6) and ASCII (P3)
variants, inspects headers, and batch-converts directories into
content-addressed outputs with a manifest.`,
	Version: version,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"ppmkit %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// newLogger builds a console logger on stderr: debug level with --verbose,
// warnings and errors otherwise.
func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}
	cfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Named("ppmkit").Sugar(), nil
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	logger.Debugf(format, args...)
}
