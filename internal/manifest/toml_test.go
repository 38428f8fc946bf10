package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cargoToml = `[package]
name = "app"
version = "0.1.0"
edition = "2021"

[dependencies]
anyhow = "1.0"
regex = { version = "1.5", features = ["unicode"] }
foo-bar = { path = "../foo-bar" }
json = { package = "serde_json", version = "1", optional = true }

[dependencies.tokio]
version = "1"
features = ["rt", "macros"]

[dev-dependencies]
anyhow = "1.0"
pretty_assertions = "1"

[build-dependencies]
cc = "1"

[target.'cfg(unix)'.dependencies]
libc = "0.2"
`

func TestParseCargoTOML(t *testing.T) {
	pkg, err := parseCargoTOML([]byte(cargoToml))
	require.NoError(t, err)

	assert.Equal(t, "app", pkg.Name)
	assert.Equal(t, "0.1.0", pkg.Version)
	assert.Equal(t, []Dependency{
		{Name: "anyhow", Req: "1.0", Features: []string{}},
		{Name: "cc", Req: "1", Features: []string{}, Kind: KindBuild},
		{Name: "foo-bar", Req: "*", Features: []string{}},
		{Name: "libc", Req: "0.2", Features: []string{}},
		{Name: "pretty_assertions", Req: "1", Features: []string{}, Kind: KindDev},
		{Name: "regex", Req: "1.5", Features: []string{"unicode"}},
		{Name: "serde_json", Req: "1", Features: []string{}, Optional: true},
		{Name: "tokio", Req: "1", Features: []string{"rt", "macros"}},
	}, pkg.Dependencies)
}

func TestParseCargoTOMLVirtualManifest(t *testing.T) {
	_, err := parseCargoTOML([]byte("[workspace]\nmembers = [\"a\"]\n"))
	assert.ErrorIs(t, err, ErrNoRootPackage)
}

func TestParseCargoTOMLErrors(t *testing.T) {
	_, err := parseCargoTOML([]byte("[package\nname="))
	assert.Error(t, err)

	_, err = parseCargoTOML([]byte("[package]\nname = \"a\"\n[dependencies]\nx = 3\n"))
	assert.Error(t, err)

	_, err = parseCargoTOML([]byte("[package]\nname = \"a\"\n[dependencies]\nx = { version = \"1\", features = [1] }\n"))
	assert.Error(t, err)
}

func TestTOMLFileLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(cargoToml), 0o600))

	pkg, err := (&TOMLFile{}).Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Cargo.toml"), pkg.ManifestPath)
	assert.Len(t, pkg.Dependencies, 8)

	_, err = (&TOMLFile{ManifestPath: "missing/Cargo.toml"}).Load(context.Background(), dir)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
