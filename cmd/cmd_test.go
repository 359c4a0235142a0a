package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristendillon/iconforge/core/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append(args, "--no-color"))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestInitWritesLoadableConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "iconforge generate")

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = execute(t, "init")
	assert.Error(t, err, "existing config is not overwritten without --force")
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	in := filepath.Join(dir, "icons")
	out := filepath.Join(dir, "components")
	require.NoError(t, os.MkdirAll(filepath.Join(in, "nav"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "nav", "icon-arrow-left.svg"), []byte(`<svg viewBox="0 0 24 24"><path d="M0"/></svg>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "empty.svg"), []byte(``), 0o644))

	_, err := execute(t, "generate", "--input", in, "--output", out)
	require.NoError(t, err, "skipped files do not fail the command")

	assert.FileExists(t, filepath.Join(out, "nav", "icon-arrow-left.tsx"))
	assert.NoFileExists(t, filepath.Join(out, "empty.tsx"))

	index, err := os.ReadFile(filepath.Join(out, "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export { default as IconArrowLeft } from './nav/icon-arrow-left';\n", string(index))
}

func TestGenerateRejectsInvalidFlags(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := execute(t, "generate", "--input", "same", "--output", "same")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "iconforge dev\n", out)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
