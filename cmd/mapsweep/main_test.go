package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"toromap/internal/worldgen"
)

func TestParseFractions(t *testing.T) {
	got, err := parseFractions(" 0.2, 0.5 ,,1")
	require.NoError(t, err)
	require.Equal(t, []float64{0.2, 0.5, 1}, got)

	_, err = parseFractions("0.2,1.5")
	require.Error(t, err)
	_, err = parseFractions("")
	require.Error(t, err)
	_, err = parseFractions("half")
	require.Error(t, err)
}

func TestRunScenario(t *testing.T) {
	cfg := worldgen.DefaultConfig()
	cfg.Width, cfg.Height = 180, 40
	cfg.Cells, cfg.Plates = 80, 6
	cfg.RiverRadius = 0.06

	res := runScenario(cfg, scenario{seed: 3, land: 1})
	require.NoError(t, res.err)
	require.Greater(t, res.stats.LandRatio, 0.5)

	res = runScenario(cfg, scenario{seed: 3, land: 0})
	require.NoError(t, res.err)
	require.Less(t, res.stats.LandRatio, 0.5)

	cfg.Plates = 0
	res = runScenario(cfg, scenario{seed: 3, land: 0.5})
	require.ErrorIs(t, res.err, worldgen.ErrInvalidConfig)
}
