package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1homsi/depsweep/internal/manifest"
	"github.com/1homsi/depsweep/internal/usage"
)

func usedSet(names ...string) usage.UsedSet {
	s := usage.NewUsedSet()
	for _, n := range names {
		s.Add(n)
	}
	return s
}

var scenarioDeps = []manifest.Dependency{
	{Name: "regex", Req: "1.5", Features: []string{"unicode"}},
	{Name: "anyhow", Req: "1.0", Features: []string{}},
}

func TestBuild(t *testing.T) {
	deps := []manifest.Dependency{
		{Name: "zeta", Req: "1", Features: []string{}},
		{Name: "foo-bar", Req: "2", Features: []string{}},
		{Name: "regex", Req: "1.5", Features: []string{}},
		{Name: "openssl", Req: "0.10", Features: []string{}},
		{Name: "alpha", Req: "1", Features: []string{}},
	}
	r := Build(deps, usedSet("regex", "foo_bar"), []string{"openssl"})

	var flagged []string
	for _, d := range r.Flagged {
		flagged = append(flagged, d.Name)
	}
	assert.Equal(t, []string{"alpha", "zeta"}, flagged)
	assert.Equal(t, []string{"foo-bar", "regex"}, r.Used)
	assert.Equal(t, []string{"openssl"}, r.Ignored)
}

func TestIsUsedEitherForm(t *testing.T) {
	assert.True(t, IsUsed("foo-bar", usedSet("foo-bar")))
	assert.True(t, IsUsed("foo-bar", usedSet("foo_bar")))
	assert.False(t, IsUsed("foo-bar", usedSet("foo")))
}

func TestWriteTextScenario(t *testing.T) {
	r := Build(scenarioDeps, usedSet("regex", "Regex"), nil)

	var buf bytes.Buffer
	WriteText(&buf, r)

	want := `
Dependency Analysis Report:
==========================

anyhow (POTENTIALLY UNUSED)
Version: 1.0
Feature flags: []
⚠️  This dependency might be removable. Verify:
  1. Check for macro usage
  2. Look for #[derive(...)] usage
  3. Review build.rs dependencies
  4. Check conditional compilation flags
`
	assert.Equal(t, want, buf.String())
}

func TestWriteTextNothingFlagged(t *testing.T) {
	var buf bytes.Buffer
	WriteText(&buf, Build(scenarioDeps, usedSet("regex", "anyhow"), nil))
	assert.Equal(t, "\nDependency Analysis Report:\n==========================\n", buf.String())
}

func TestWriteTextFlaggedOnce(t *testing.T) {
	var buf bytes.Buffer
	WriteText(&buf, Build(scenarioDeps, usedSet("anyhow"), nil))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "regex (POTENTIALLY UNUSED)"))
	assert.Contains(t, out, `Feature flags: ["unicode"]`)
	for _, h := range Hints {
		assert.Equal(t, 1, strings.Count(out, h))
	}
}

func TestDebugList(t *testing.T) {
	assert.Equal(t, "[]", debugList(nil))
	assert.Equal(t, `["a"]`, debugList([]string{"a"}))
	assert.Equal(t, `["derive", "std"]`, debugList([]string{"derive", "std"}))
}

func TestWriteJSON(t *testing.T) {
	r := Build(scenarioDeps, usedSet("regex"), nil)
	r.FilesScanned = 3

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, r))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r, decoded)
	assert.Contains(t, buf.String(), `"features": []`)
}

func TestWriteSARIF(t *testing.T) {
	deps := append([]manifest.Dependency{{Name: "cc", Req: "1", Features: []string{}, Kind: manifest.KindBuild}}, scenarioDeps...)
	r := Build(deps, usedSet("regex"), nil)
	r.Manifest = "Cargo.toml"

	var buf bytes.Buffer
	require.NoError(t, WriteSARIF(&buf, r, "1.2.3"))

	var out sarifOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Runs, 1)
	run := out.Runs[0]

	assert.Equal(t, "2.1.0", out.Version)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	require.Len(t, run.Results, 2)

	assert.Equal(t, unusedRuleID, run.Results[0].RuleID)
	assert.Equal(t, "Dependency anyhow (1.0) is potentially unused", run.Results[0].Message.Text)
	assert.Equal(t, "Cargo.toml", run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, "build", run.Results[1].Properties["kind"])
}

func TestWriteSARIFEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSARIF(&buf, Build(nil, usedSet(), nil), "dev"))
	assert.Contains(t, buf.String(), `"results": []`)
}
