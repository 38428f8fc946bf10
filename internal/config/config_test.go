package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1homsi/depsweep/internal/usage"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "src", cfg.SourceDir)
	assert.Equal(t, ".rs", cfg.Extension)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDir(t *testing.T) {
	dir := writeConfig(t, `
source_dir: crates/core/src
ignored:
  - openssl
allowlist:
  - name: tracing
  - name: log
    triggers: ["info!", "log::"]
`)
	cfg, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "crates/core/src", cfg.SourceDir)
	assert.Equal(t, ".rs", cfg.Extension)
	assert.Equal(t, []string{"openssl"}, cfg.Ignored)
	assert.Equal(t, usage.Allowlist{
		{Name: "tracing"},
		{Name: "log", Triggers: []string{"info!", "log::"}},
	}, cfg.Allowlist)
}

func TestLoadDirMissingFile(t *testing.T) {
	cfg, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"bad yaml", "source_dir: [", ErrConfigFileParse},
		{"empty source dir", "source_dir: ''", ErrSourceDirEmpty},
		{"bad extension", "extension: rs", ErrInvalidExtension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDir(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
