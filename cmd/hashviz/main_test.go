package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hashviz/internal/benchlog"
	"github.com/verte-zerg/hashviz/internal/config"
	"github.com/verte-zerg/hashviz/internal/model"
)

const cliLog = `[
  {"DIFFICULTY":"f0","BLOCK_EXPERIMENTS":[{"avg_time":10,"avg_hash_per_sec":2000000}]},
  {"DIFFICULTY":"ff","BLOCK_EXPERIMENTS":[{"avg_time":8,"avg_hash_per_sec":3000000}]}
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTableCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	logPath := writeFile(t, dir, "log.txt", cliLog)

	out, err := execute(t, "table", "--log", logPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Avg. Hashrate (MH/s)")
	assert.Contains(t, out, "Avg. Time (ms)")
	assert.NotContains(t, out, "Min. Time")
	assert.Contains(t, out, "4 (f0)")
	assert.Contains(t, out, "8 (ff)")
	assert.Contains(t, out, "Peak hashrate: 3.000 MH/s (difficulty 8, 1 blocks)")
}

func TestTableCommandScaleFromConfig(t *testing.T) {
	dir := t.TempDir()
	xdg := filepath.Join(dir, "xdg")
	t.Setenv("XDG_CONFIG_HOME", xdg)
	logPath := writeFile(t, dir, "log.txt", cliLog)
	writeFile(t, xdg, filepath.Join("hashviz", "config.toml"), "[render]\nscale = 1000.0\nunit = \"kH/s\"\n")

	out, err := execute(t, "table", "--log", logPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Avg. Hashrate (kH/s)")
	assert.Contains(t, out, "3000.000")

	out, err = execute(t, "table", "--log", logPath, "--unit", "MH/s", "--scale", "1000000")
	require.NoError(t, err)
	assert.Contains(t, out, "Avg. Hashrate (MH/s)")
}

func TestTableCommandMissingLog(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	_, err := execute(t, "table", "--log", filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, benchlog.ErrInputNotFound)
}

func TestTableCommandOrdering(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	logPath := writeFile(t, dir, "log.txt", `[
  {"DIFFICULTY":"ff","BLOCK_EXPERIMENTS":[{"avg_time":8,"avg_hash_per_sec":3000000}]},
  {"DIFFICULTY":"f0","BLOCK_EXPERIMENTS":[{"avg_time":10,"avg_hash_per_sec":2000000}]}
]`)

	_, err := execute(t, "table", "--log", logPath)
	require.ErrorIs(t, err, benchlog.ErrDifficultyOrder)

	_, err = execute(t, "table", "--log", logPath, "--permissive")
	require.NoError(t, err)
}

func TestTableCommandBlockSequence(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	logPath := writeFile(t, dir, "log.txt", `[
  {"DIFFICULTY":"f0","BLOCK_EXPERIMENTS":[
    {"Blocks":2,"avg_time":10,"avg_hash_per_sec":2000000},
    {"Blocks":1,"avg_time":20,"avg_hash_per_sec":2100000}]}
]`)

	_, err := execute(t, "table", "--log", logPath)
	require.ErrorIs(t, err, benchlog.ErrBlockOrder)

	_, err = execute(t, "table", "--log", logPath, "--permissive")
	require.NoError(t, err)
}

func TestInvalidSettings(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	logPath := writeFile(t, dir, "log.txt", cliLog)

	for _, args := range [][]string{
		{"table", "--log", logPath, "--source", "gpu"},
		{"table", "--log", logPath, "--scale", "0"},
		{"table", "--log", logPath, "--marker", "ff"},
		{"table", "--log", logPath, "--elevation", "120"},
	} {
		_, err := execute(t, args...)
		require.ErrorIs(t, err, config.ErrConfigValidation, strings.Join(args, " "))
	}

	_, err := execute(t, "table", "--log", logPath, "--log-level", "loud")
	require.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	logPath := writeFile(t, dir, "log.txt", cliLog)
	outPath := filepath.Join(dir, "out", "figure.png")

	_, err := execute(t, "export", "--log", logPath, "--out", outPath, "--width", "6", "--height", "4")
	require.NoError(t, err)
	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportCommandRequiresOut(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	logPath := writeFile(t, dir, "log.txt", cliLog)

	_, err := execute(t, "export", "--log", logPath)
	require.ErrorIs(t, err, config.ErrConfigValidation)
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var lines []string
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
		}
		lines = append(lines, line)
	}
	var cfg config.FileConfig
	meta, err := toml.Decode(strings.Join(lines, "\n"), &cfg)
	require.NoError(t, err)
	assert.Empty(t, meta.Undecoded())
	require.NotNil(t, cfg.Render.Scale)
	assert.Equal(t, 1e6, *cfg.Render.Scale)
	require.NotNil(t, cfg.Render.Marker)
	assert.Equal(t, "f", *cfg.Render.Marker)
	require.NotNil(t, cfg.Render.Elevation)
	assert.Equal(t, 30.0, *cfg.Render.Elevation)
	require.NotNil(t, cfg.Export.Width)
	assert.Equal(t, 16.0, *cfg.Export.Width)
}

func TestEnsureConfigFileKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hashviz", "config.toml")
	require.NoError(t, ensureConfigFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfigTemplate(), string(data))

	require.NoError(t, os.WriteFile(path, []byte("[render]\n"), 0o644))
	require.NoError(t, ensureConfigFile(path))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[render]\n", string(data))
}

func TestLoadOptions(t *testing.T) {
	opts := loadOptions(model.RenderConfig{Source: model.SourceCPU, Marker: "0", Multiplier: 1, Permissive: true})
	assert.Equal(t, benchlog.Options{Source: model.SourceCPU, Marker: '0', Multiplier: 1, Permissive: true}, opts)
}
