// Package manifest reads a Cargo package's declared dependencies, either by
// asking cargo (`cargo metadata`) or by parsing Cargo.toml directly.
package manifest

import (
	"fmt"
	"sort"
)

// Dependency kinds as reported by cargo. Normal dependencies have no kind.
const (
	KindNormal = ""
	KindDev    = "dev"
	KindBuild  = "build"
)

// Dependency is one declared dependency of the root package.
type Dependency struct {
	Name     string   `json:"name"`
	Req      string   `json:"req"`
	Features []string `json:"features"`
	Kind     string   `json:"kind,omitempty"`
	Optional bool     `json:"optional,omitempty"`
}

// Package is the root package and its dependencies. Dependency names are
// unique.
type Package struct {
	Name         string
	Version      string
	ManifestPath string
	Dependencies []Dependency
}

// Names returns the dependency names in declaration order.
func (p *Package) Names() []string {
	out := make([]string, len(p.Dependencies))
	for i, d := range p.Dependencies {
		out[i] = d.Name
	}
	return out
}

// ForSource returns a Loader for source, "cargo" or "toml". manifestPath may
// be empty, in which case the loader looks for Cargo.toml in the directory
// passed to Load.
func ForSource(source, manifestPath string) (Loader, error) {
	switch source {
	case "cargo", "":
		return &CargoMetadata{ManifestPath: manifestPath}, nil
	case "toml":
		return &TOMLFile{ManifestPath: manifestPath}, nil
	default:
		return nil, fmt.Errorf("%w %q; choose cargo|toml", ErrUnknownSource, source)
	}
}

// dedupe keeps the first dependency of each name and orders the result by
// name. Cargo lists a crate once per kind; the report wants it once.
func dedupe(deps []Dependency) []Dependency {
	seen := make(map[string]bool, len(deps))
	out := make([]Dependency, 0, len(deps))
	for _, d := range deps {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		if d.Features == nil {
			d.Features = []string{}
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
