package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/1homsi/depsweep/internal/logger"
)

// CargoMetadata loads dependencies through `cargo metadata`, which resolves
// workspace inheritance and renames the same way the build does.
type CargoMetadata struct {
	ManifestPath string
	// Cargo is the cargo binary; defaults to "cargo" on PATH.
	Cargo string
}

func (c *CargoMetadata) Name() string { return "cargo" }

func (c *CargoMetadata) Load(ctx context.Context, dir string) (*Package, error) {
	bin := c.Cargo
	if bin == "" {
		bin = "cargo"
	}
	args := []string{"metadata", "--format-version", "1", "--no-deps"}
	if c.ManifestPath != "" {
		args = append(args, "--manifest-path", c.ManifestPath)
	}

	logger.Debugf("running %s %s in %s", bin, strings.Join(args, " "), dir)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("cargo metadata: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("cargo metadata: %w", err)
	}
	return parseMetadata(out)
}

type metadataJSON struct {
	Packages      []metadataPackage `json:"packages"`
	Resolve       *metadataResolve  `json:"resolve"`
	WorkspaceRoot string            `json:"workspace_root"`
}

type metadataResolve struct {
	Root *string `json:"root"`
}

type metadataPackage struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	ManifestPath string          `json:"manifest_path"`
	Dependencies []metadataDepJS `json:"dependencies"`
}

type metadataDepJS struct {
	Name     string   `json:"name"`
	Req      string   `json:"req"`
	Kind     *string  `json:"kind"`
	Optional bool     `json:"optional"`
	Features []string `json:"features"`
}

func parseMetadata(data []byte) (*Package, error) {
	var md metadataJSON
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("parse cargo metadata: %w", err)
	}

	root := md.rootPackage()
	if root == nil {
		return nil, fmt.Errorf("cargo metadata: %w in workspace %s", ErrNoRootPackage, md.WorkspaceRoot)
	}

	deps := make([]Dependency, 0, len(root.Dependencies))
	for _, d := range root.Dependencies {
		kind := KindNormal
		if d.Kind != nil {
			kind = *d.Kind
		}
		deps = append(deps, Dependency{
			Name:     d.Name,
			Req:      d.Req,
			Features: d.Features,
			Kind:     kind,
			Optional: d.Optional,
		})
	}

	return &Package{
		Name:         root.Name,
		Version:      root.Version,
		ManifestPath: root.ManifestPath,
		Dependencies: dedupe(deps),
	}, nil
}

// rootPackage follows cargo's own rule: the resolve root when present,
// otherwise the package whose manifest sits at the workspace root.
func (md *metadataJSON) rootPackage() *metadataPackage {
	if md.Resolve != nil && md.Resolve.Root != nil {
		for i := range md.Packages {
			if md.Packages[i].ID == *md.Resolve.Root {
				return &md.Packages[i]
			}
		}
		return nil
	}
	want := filepath.Join(md.WorkspaceRoot, "Cargo.toml")
	for i := range md.Packages {
		if md.Packages[i].ManifestPath == want {
			return &md.Packages[i]
		}
	}
	return nil
}
