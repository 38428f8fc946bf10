package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/1homsi/depsweep/internal/logger"
)

// TOMLFile loads dependencies straight from Cargo.toml without invoking
// cargo. Workspace-inherited requirements (`foo.workspace = true`) are not
// resolved and are reported as "*".
type TOMLFile struct {
	ManifestPath string
}

func (t *TOMLFile) Name() string { return "toml" }

func (t *TOMLFile) Load(_ context.Context, dir string) (*Package, error) {
	path := t.ManifestPath
	if path == "" {
		path = filepath.Join(dir, "Cargo.toml")
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	logger.Debugf("reading %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	pkg, err := parseCargoTOML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	pkg.ManifestPath = path
	return pkg, nil
}

type cargoTOML struct {
	Package *cargoPackage `toml:"package"`
	cargoDepTables
	Target map[string]cargoDepTables `toml:"target"`
}

type cargoDepTables struct {
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

type kindTable struct {
	kind    string
	entries map[string]any
}

func (t cargoDepTables) byKind() []kindTable {
	return []kindTable{
		{KindNormal, t.Dependencies},
		{KindDev, t.DevDependencies},
		{KindBuild, t.BuildDependencies},
	}
}

type cargoPackage struct {
	Name    string `toml:"name"`
	Version any    `toml:"version"`
}

func parseCargoTOML(data []byte) (*Package, error) {
	var ct cargoTOML
	if _, err := toml.Decode(string(data), &ct); err != nil {
		return nil, fmt.Errorf("parse Cargo.toml: %w", err)
	}
	if ct.Package == nil {
		return nil, ErrNoRootPackage
	}

	tables := ct.cargoDepTables.byKind()
	targets := make([]string, 0, len(ct.Target))
	for cfg := range ct.Target {
		targets = append(targets, cfg)
	}
	sort.Strings(targets)
	for _, cfg := range targets {
		tables = append(tables, ct.Target[cfg].byKind()...)
	}

	var deps []Dependency
	for _, table := range tables {
		for key, val := range table.entries {
			d, err := tomlDependency(key, val)
			if err != nil {
				return nil, err
			}
			d.Kind = table.kind
			deps = append(deps, d)
		}
	}

	version, _ := ct.Package.Version.(string)
	return &Package{
		Name:         ct.Package.Name,
		Version:      version,
		Dependencies: dedupe(sortByKind(deps)),
	}, nil
}

// tomlDependency decodes `key = "1.0"` or `key = { version = ..., ... }`.
func tomlDependency(key string, val any) (Dependency, error) {
	d := Dependency{Name: key, Req: "*"}
	switch v := val.(type) {
	case string:
		d.Req = v
	case map[string]any:
		if s, ok := v["version"].(string); ok {
			d.Req = s
		}
		if s, ok := v["package"].(string); ok {
			d.Name = s
		}
		if b, ok := v["optional"].(bool); ok {
			d.Optional = b
		}
		if raw, ok := v["features"].([]any); ok {
			for _, f := range raw {
				s, ok := f.(string)
				if !ok {
					return d, fmt.Errorf("dependency %q: feature %v is not a string", key, f)
				}
				d.Features = append(d.Features, s)
			}
		}
	default:
		return d, fmt.Errorf("dependency %q: unsupported value %T", key, val)
	}
	return d, nil
}

// sortByKind orders normal, then dev, then build dependencies, and by name
// within a kind, so dedupe keeps the normal entry of a crate declared twice.
func sortByKind(deps []Dependency) []Dependency {
	rank := map[string]int{KindNormal: 0, KindDev: 1, KindBuild: 2}
	sort.SliceStable(deps, func(i, j int) bool {
		if rank[deps[i].Kind] != rank[deps[j].Kind] {
			return rank[deps[i].Kind] < rank[deps[j].Kind]
		}
		return deps[i].Name < deps[j].Name
	})
	return deps
}
