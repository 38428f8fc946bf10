// Package scan implements `depsweep scan`.
package scan

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/1homsi/depsweep/internal/analyzer"
	"github.com/1homsi/depsweep/internal/config"
	"github.com/1homsi/depsweep/internal/logger"
	"github.com/1homsi/depsweep/internal/manifest"
	"github.com/1homsi/depsweep/internal/report"
)

// ErrUnusedFound is returned with --fail-on-unused when anything was flagged.
var ErrUnusedFound = errors.New("potentially unused dependencies found")

type options struct {
	srcDir       string
	ext          string
	manifestPath string
	metadata     string
	configPath   string
	skipComments bool
	jsonOut      bool
	sarifOut     bool
	failOnUnused bool
	verbose      bool
}

func NewCommand(version string) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Report declared dependencies not referenced in source",
		Long: `Scan reads the root package's dependencies, scans every .rs file under the
source directory, and prints the dependencies it found no reference to.

Examples:
  depsweep scan
  depsweep scan ./my-crate --metadata toml
  depsweep scan --json --fail-on-unused`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if o.verbose {
				logger.SetVerbose(true)
			}
			cfg, err := loadConfig(cmd, dir, &o)
			if err != nil {
				return err
			}
			return run(cmd, dir, cfg, o, version)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.srcDir, "src", "src", "source directory, relative to dir")
	f.StringVar(&o.ext, "ext", ".rs", "source file extension")
	f.StringVar(&o.manifestPath, "manifest-path", "", "path to Cargo.toml")
	f.StringVar(&o.metadata, "metadata", "cargo", "metadata source: cargo|toml")
	f.StringVar(&o.configPath, "config", "", "config file (default <dir>/"+config.FileName+")")
	f.BoolVar(&o.skipComments, "skip-comments", false, "ignore references inside comments")
	f.BoolVar(&o.jsonOut, "json", false, "JSON output")
	f.BoolVar(&o.sarifOut, "sarif", false, "SARIF 2.1.0 output")
	f.BoolVar(&o.failOnUnused, "fail-on-unused", false, "exit 1 when any dependency is flagged")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose logging")
	cmd.MarkFlagsMutuallyExclusive("json", "sarif")
	return cmd
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, dir string, o *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadDir(dir)
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("src") {
		cfg.SourceDir = o.srcDir
	}
	if cmd.Flags().Changed("ext") {
		cfg.Extension = o.ext
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, dir string, cfg *config.Config, o options, version string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("cannot resolve directory %q: %w", dir, err)
	}

	manifestPath := o.manifestPath
	if manifestPath != "" {
		if manifestPath, err = filepath.Abs(manifestPath); err != nil {
			return fmt.Errorf("cannot resolve manifest path %q: %w", o.manifestPath, err)
		}
	}

	loader, err := manifest.ForSource(o.metadata, manifestPath)
	if err != nil {
		return err
	}

	a := analyzer.New(loader, analyzer.Options{
		SourceDir:    cfg.SourceDir,
		Extension:    cfg.Extension,
		SkipComments: o.skipComments,
		Ignored:      cfg.Ignored,
		Allowlist:    cfg.Allowlist,
	})
	res, err := a.Run(cmd.Context(), absDir)
	if err != nil {
		return err
	}

	if err := write(cmd.OutOrStdout(), res.Report, o, version); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if o.failOnUnused && len(res.Report.Flagged) > 0 {
		return ErrUnusedFound
	}
	return nil
}

func write(w io.Writer, r report.Report, o options, version string) error {
	switch {
	case o.sarifOut:
		return report.WriteSARIF(w, r, version)
	case o.jsonOut:
		return report.WriteJSON(w, r)
	default:
		report.WriteText(w, r)
		return nil
	}
}
