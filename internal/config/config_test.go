package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"toromap/internal/worldgen"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, worldgen.DefaultConfig(), cfg.Map)
	require.Equal(t, "info", cfg.Logging.Level)
	require.True(t, cfg.Output.Snapshot)
	require.Equal(t, 30, cfg.Viewer.TPS)
}

func TestLoadFromFileThenFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	yamlContent := `
map:
  cells: 900
  land_prob: 0.6
  rivers: false
output:
  dir: maps
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := Register(fs)
	require.NoError(t, fs.Parse([]string{
		"-config", path,
		"-seed", "77",
		"-set", "plates=40",
		"-set", "land_prob=0.3",
		"-debug",
	}))

	cfg, err := Load(f)
	require.NoError(t, err)
	require.Equal(t, 900, cfg.Map.Cells)
	require.Equal(t, 0.3, cfg.Map.LandProb)
	require.Equal(t, 40, cfg.Map.Plates)
	require.False(t, cfg.Map.Rivers)
	require.Equal(t, int64(77), cfg.Map.Seed)
	require.Equal(t, "maps", cfg.Output.Dir)
	require.Equal(t, "debug", cfg.Logging.Level)
	// Unset keys keep their defaults.
	require.Equal(t, worldgen.DefaultConfig().Relax, cfg.Map.Relax)
}

func TestLoadRejectsBadOverrides(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := Register(fs)
	require.NoError(t, fs.Parse([]string{"-config", filepath.Join(t.TempDir(), "none.yaml")}))
	_, err := Load(f)
	require.Error(t, err)

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	f = Register(fs)
	require.NoError(t, fs.Parse([]string{"-set", "plates=0"}))
	f.Config = writeEmpty(t)
	_, err = Load(f)
	require.ErrorIs(t, err, worldgen.ErrInvalidConfig)

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	Register(fs)
	require.Error(t, fs.Parse([]string{"-set", "noequals"}))
}

func writeEmpty(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestSaveToRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Map.Cells = 1234
	cfg.Viewer.Scale = 3
	path := filepath.Join(t.TempDir(), "nested", FileName)
	require.NoError(t, cfg.SaveTo(path))

	f := &Flags{Config: path}
	got, err := Load(f)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestKVListMap(t *testing.T) {
	l := KVList{"a=1", " b = two ", "a=3"}
	require.Equal(t, map[string]string{"a": "3", "b": "two"}, l.Map())
}
