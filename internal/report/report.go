// Package report reconciles declared dependencies with the names found in
// source and renders the result.
package report

import (
	"sort"

	"github.com/1homsi/depsweep/internal/manifest"
	"github.com/1homsi/depsweep/internal/naming"
	"github.com/1homsi/depsweep/internal/usage"
)

// UnusedMarker follows the name of every flagged dependency.
const UnusedMarker = "POTENTIALLY UNUSED"

// Hints are printed under each flagged dependency. Lexical scanning can
// suggest non-usage but never prove it.
var Hints = []string{
	"Check for macro usage",
	"Look for #[derive(...)] usage",
	"Review build.rs dependencies",
	"Check conditional compilation flags",
}

type Report struct {
	Package      string                `json:"package,omitempty"`
	Manifest     string                `json:"manifest,omitempty"`
	FilesScanned int                   `json:"files_scanned"`
	Flagged      []manifest.Dependency `json:"flagged"`
	Used         []string              `json:"used"`
	Ignored      []string              `json:"ignored,omitempty"`
}

// IsUsed reports whether name, in either its canonical or identifier form,
// is in used.
func IsUsed(name string, used usage.UsedSet) bool {
	return used.Has(name) || used.Has(naming.IdentForm(name))
}

// Build flags every dependency that is neither used nor ignored. Output
// slices are ordered by name.
func Build(deps []manifest.Dependency, used usage.UsedSet, ignored []string) Report {
	skip := make(map[string]bool, len(ignored))
	for _, name := range ignored {
		skip[name] = true
	}

	r := Report{
		Flagged: []manifest.Dependency{},
		Used:    []string{},
	}
	for _, d := range deps {
		switch {
		case skip[d.Name]:
			r.Ignored = append(r.Ignored, d.Name)
		case IsUsed(d.Name, used):
			r.Used = append(r.Used, d.Name)
		default:
			r.Flagged = append(r.Flagged, d)
		}
	}

	sort.Slice(r.Flagged, func(i, j int) bool { return r.Flagged[i].Name < r.Flagged[j].Name })
	sort.Strings(r.Used)
	sort.Strings(r.Ignored)
	return r
}
