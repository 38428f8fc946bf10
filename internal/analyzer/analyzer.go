// Package analyzer runs a full depsweep pass: load the manifest, scan every
// source file, and reconcile the two.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/1homsi/depsweep/internal/logger"
	"github.com/1homsi/depsweep/internal/manifest"
	"github.com/1homsi/depsweep/internal/naming"
	"github.com/1homsi/depsweep/internal/report"
	"github.com/1homsi/depsweep/internal/usage"
	"github.com/1homsi/depsweep/internal/walker"
)

// Options control a single run. Zero values fall back to the Rust defaults.
type Options struct {
	// SourceDir is resolved against the project directory when relative.
	SourceDir string
	Extension string
	// SkipComments blanks comments before scanning. Off by default so the
	// lexical heuristic sees exactly what is on disk.
	SkipComments bool
	Ignored      []string
	// Allowlist is merged over the built-in macro-only table.
	Allowlist usage.Allowlist
}

// Result is everything collected by Run.
type Result struct {
	Package *manifest.Package
	Files   []string
	Used    usage.UsedSet
	Report  report.Report
}

type Analyzer struct {
	loader manifest.Loader
	opts   Options
}

func New(loader manifest.Loader, opts Options) *Analyzer {
	if opts.SourceDir == "" {
		opts.SourceDir = "src"
	}
	if opts.Extension == "" {
		opts.Extension = usage.Rust().Extension
	}
	return &Analyzer{loader: loader, opts: opts}
}

// Run analyzes the project in dir. Any metadata, traversal or read error
// aborts the run; no partial result is returned.
func (a *Analyzer) Run(ctx context.Context, dir string) (*Result, error) {
	pkg, err := a.loader.Load(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("load metadata (%s): %w", a.loader.Name(), err)
	}
	logger.Infof("package %s: %d declared dependencies", pkg.Name, len(pkg.Dependencies))

	srcDir := a.opts.SourceDir
	if !filepath.IsAbs(srcDir) {
		srcDir = filepath.Join(dir, srcDir)
	}
	files, err := walker.Walk(srcDir, a.opts.Extension)
	if err != nil {
		return nil, err
	}

	rs := usage.Rust()
	scanner := usage.New(rs.Rules, rs.Allowlist.Merge(a.opts.Allowlist), naming.NewMapping(pkg.Names()))

	used := usage.NewUsedSet()
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		if a.opts.SkipComments {
			if src, err = usage.StripComments(ctx, src); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
		before := len(used)
		scanner.Scan(string(src), used)
		logger.Debugf("scanned %s: %d new names", path, len(used)-before)
	}

	r := report.Build(pkg.Dependencies, used, a.opts.Ignored)
	r.Package = pkg.Name
	r.Manifest = pkg.ManifestPath
	r.FilesScanned = len(files)
	logger.Infof("scanned %d files, %d of %d dependencies flagged", len(files), len(r.Flagged), len(pkg.Dependencies))

	return &Result{
		Package: pkg,
		Files:   files,
		Used:    used,
		Report:  r,
	}, nil
}
