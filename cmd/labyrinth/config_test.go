// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/labyrinth/signature"
	"github.com/katalvlaran/labyrinth/solver"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadEngineConfig_Example(t *testing.T) {
	cfg, err := loadEngineConfig("ex.config.toml")
	require.NoError(t, err)

	def := solver.DefaultConfig()
	assert.Equal(t, 16, cfg.MaxRounds)
	assert.Equal(t, 96, cfg.MaxPlans)
	assert.Equal(t, 24, cfg.Identify.MaxTasks)
	assert.Equal(t, solver.ModeAll, cfg.Explore.Mode)
	assert.Equal(t, 8, cfg.Explore.TailMax)
	assert.Equal(t, 48, cfg.Reverse.MaxProbes)
	assert.Equal(t, 1.5, cfg.Candidate.IDFScale)
	assert.Equal(t, def.Candidate.IDFPower, cfg.Candidate.IDFPower)
	assert.Equal(t, 5.0, cfg.Candidate.Weights[signature.Forward2])
	assert.Equal(t, 2.0, cfg.Candidate.Weights[signature.Mixed])
	assert.Equal(t, def.Candidate.Weights[signature.Forward1], cfg.Candidate.Weights[signature.Forward1])
	assert.Equal(t, def.Candidate.PerNodeCap, cfg.Candidate.PerNodeCap)
	assert.Equal(t, def.Identify.Overselect, cfg.Identify.Overselect)
}

func TestLoadEngineConfig_OverlaysOnlyDefinedKeys(t *testing.T) {
	path := writeConfig(t, `
[budget]
markers = 2

[explore]
mode = " Minimal "
`)
	cfg, err := loadEngineConfig(path)
	require.NoError(t, err)

	want := solver.DefaultConfig()
	want.Budget.Markers = 2
	assert.Equal(t, want, cfg)
}

func TestLoadEngineConfig_ZeroValuesStick(t *testing.T) {
	cfg, err := loadEngineConfig(writeConfig(t, "max_plans = 0\n[walk]\nseed = 0\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.MaxPlans)
}

func TestLoadEngineConfig_Errors(t *testing.T) {
	_, err := loadEngineConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	_, err = loadEngineConfig(writeConfig(t, "max_rounds = \n"))
	require.Error(t, err)

	_, err = loadEngineConfig(writeConfig(t, "[budget]\nmarkers = 9\n"))
	require.ErrorIs(t, err, solver.ErrInvalidConfig)

	_, err = loadEngineConfig(writeConfig(t, "[budget]\nmarkrs = 2\n"))
	require.ErrorContains(t, err, "budget.markrs")

	_, err = loadEngineConfig(writeConfig(t, "[candidate.weights]\nf3 = 1\n"))
	require.ErrorContains(t, err, `unknown signature kind "f3"`)

	_, err = loadEngineConfig(writeConfig(t, "[candidate]\nidf_scale = 0\n"))
	require.ErrorIs(t, err, solver.ErrInvalidConfig)
}

func TestLoadEngineConfig_ZeroWeightDisablesKind(t *testing.T) {
	cfg, err := loadEngineConfig(writeConfig(t, "[candidate.weights]\nMIX = 0\n"))
	require.NoError(t, err)

	want := solver.DefaultConfig()
	want.Candidate.Weights[signature.Mixed] = 0
	assert.Equal(t, want, cfg)
}
