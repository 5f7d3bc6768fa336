package config

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oscilab/oscilab/internal/model"
	"github.com/oscilab/oscilab/internal/osc"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "harmonic", cfg.Model)
	assert.Equal(t, "rk4", cfg.Integrator)
	assert.Equal(t, DefaultSamples, cfg.Samples)
	assert.InDelta(t, 2*math.Pi, cfg.Omega, 1e-12)
	assert.InDelta(t, 3*math.Pi, cfg.OmegaD, 1e-12)
	assert.Greater(t, cfg.End, cfg.Start)
	assert.Greater(t, cfg.Mass, 0.0)
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := Default()
	cfg.Model = "damped_driven"
	cfg.Gamma = 0.25
	cfg.Samples = 500

	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBuildModel(t *testing.T) {
	cfg := Default()

	m, err := cfg.BuildModel()
	require.NoError(t, err)
	assert.IsType(t, &model.Harmonic{}, m)

	cfg.Model = "damped_driven"
	m, err = cfg.BuildModel()
	require.NoError(t, err)
	dd, ok := m.(*model.DampedDriven)
	require.True(t, ok)
	assert.Equal(t, cfg.Gamma, dd.Gamma)
	assert.Equal(t, cfg.F0, dd.F0)

	cfg.Model = "pendulum"
	_, err = cfg.BuildModel()
	assert.Error(t, err)
}

func TestBuildModel_InvalidParameters(t *testing.T) {
	cfg := Default()
	cfg.Model = "damped_driven"
	cfg.Gamma = -0.1

	_, err := cfg.BuildModel()
	assert.ErrorIs(t, err, osc.ErrParameterBounds)
}

func TestBuildGrid(t *testing.T) {
	cfg := Default()

	g, err := cfg.BuildGrid()
	require.NoError(t, err)
	assert.Equal(t, cfg.Samples, g.Len())

	cfg.Samples = 1
	_, err = cfg.BuildGrid()
	assert.ErrorIs(t, err, osc.ErrGridTooShort)
}

func TestInitState(t *testing.T) {
	cfg := Default()
	cfg.X0 = 0.5
	cfg.V0 = -1.0

	s := cfg.InitState()
	assert.Equal(t, osc.State{0.5, -1.0}, s)
}
