package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdivide/internal/errs"
)

// TestSaveLoad_TOMLRoundTrip implements spec §8 P8: save then load reproduces
// the original manager's entries.
func TestSaveLoad_TOMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := New()
	m.Add("core", filepath.Join(dir, "core"), nil)
	m.Add("app", filepath.Join(dir, "app"), []string{"core"})

	path := filepath.Join(dir, "repos.toml")
	require.NoError(t, Save(m, path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"app", "core"}, loaded.List())
	app, ok := loaded.Get("app")
	require.True(t, ok)
	assert.Equal(t, []string{"core"}, app.Dependencies)
	assert.Equal(t, filepath.Join(dir, "app"), app.Path)
}

func TestSaveLoad_JSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := New()
	m.Add("svc", filepath.Join(dir, "svc"), []string{"lib"})
	m.Add("lib", filepath.Join(dir, "lib"), nil)

	path := filepath.Join(dir, "repos.json")
	require.NoError(t, Save(m, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"svc", "lib"}, loaded.List())
}

func TestLoad_MissingFileReturnsEmptyManagerAndConfigLoadError(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ConfigLoadError))
	assert.Empty(t, m.List())
}

func TestLoad_UnparseableFileReturnsEmptyManagerAndConfigLoadError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("not valid toml or json {{{"), 0o644))

	m, err := Load(path)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ConfigLoadError))
	assert.Empty(t, m.List())
}

func TestLoad_ResolvesRelativePathsAgainstConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repos.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[repositories]]
name = "a"
path = "sub/a"
`), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	r, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "sub", "a"), r.Path)
}
