package walker

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

func extract(t *testing.T, archive string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range txtar.Parse([]byte(archive)).Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o600))
	}
	return dir
}

func TestWalk(t *testing.T) {
	dir := extract(t, `
-- src/main.rs --
fn main() {}
-- src/net/mod.rs --
pub mod client;
-- src/net/client.rs --
-- src/README.md --
notes
-- src/upper.RS --
-- build.rs --
fn main() {}
`)

	files, err := Walk(filepath.Join(dir, "src"), ".rs")
	require.NoError(t, err)

	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{
		"src/main.rs",
		"src/net/client.rs",
		"src/net/mod.rs",
	}, rel)
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "src"), ".rs")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWalkRootIsFile(t *testing.T) {
	dir := extract(t, "-- lib.rs --\n")
	_, err := Walk(filepath.Join(dir, "lib.rs"), ".rs")
	assert.ErrorIs(t, err, ErrNotDir)
}

func TestWalkUnreadableDir(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permissions are not enforced")
	}
	dir := extract(t, "-- src/locked/a.rs --\n")
	locked := filepath.Join(dir, "src", "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	_, err := Walk(filepath.Join(dir, "src"), ".rs")
	assert.ErrorIs(t, err, os.ErrPermission)
}
