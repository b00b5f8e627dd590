package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "pkg")
	require.NoError(t, os.Mkdir(sub, 0o755))
	for _, name := range []string{"a.py", "b.txt", "pkg/c.py", "pkg/d.go"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("pass\n"), 0o644))
	}

	files, err := expandPaths([]string{dir})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(sub, "c.py"),
	}, files)
}

func TestExpandPaths_ExplicitFileIsNotFiltered(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	files, err := expandPaths([]string{path})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestExpandPaths_MissingPath(t *testing.T) {
	_, err := expandPaths([]string{filepath.Join(t.TempDir(), "gone.py")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access")
}

func TestDumpStats(t *testing.T) {
	assert.Equal(t, "", dumpStats(0, 0, 0))
	assert.Equal(t, "1 file reformatted", dumpStats(1, 0, 0))
	assert.Equal(t, "2 files reformatted, 1 file left unchanged", dumpStats(2, 1, 0))
	assert.Equal(t, "3 files left unchanged, 1 file failed", dumpStats(0, 3, 1))
}

func TestColorizeDiff_Passthrough(t *testing.T) {
	diff := "--- a.py\n+++ a.py\n@@ -1 +1 @@\n-a = 1\n+a = 2\n"
	assert.Equal(t, diff, colorizeDiff(diff, false))
}

func TestColorizeDiff_HeadersStayPlain(t *testing.T) {
	diff := "--- a.py\n+++ a.py\n"
	assert.Equal(t, diff, colorizeDiff(diff, true))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
	assert.Empty(t, cfg.Rules)
	assert.Equal(t, "", cfg.Unparser)
	assert.False(t, cfg.Apply)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := "rules:\n  - swap-operands\nunparser: fast\nworkers: 2\napply: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configName), []byte(content), 0o644))

	cfg, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"swap-operands"}, cfg.Rules)
	assert.Equal(t, "fast", cfg.Unparser)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Apply)
}

func TestLoadConfig_ClampsWorkers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configName), []byte("workers: 0\n"), 0o644))

	cfg, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Workers)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configName), []byte(":\n\t:"), 0o644))

	_, err := loadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), configName)
}
