// Package config loads and validates run configuration. A Config is
// the single source for everything a run needs: the model and its
// parameters, the time grid, the initial state and the integrator
// choice.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oscilab/oscilab/internal/model"
	"github.com/oscilab/oscilab/internal/osc"
)

const (
	DefaultSamples    = 1000
	DefaultDuration   = 10.0
	DefaultMass       = 1.0
	DefaultGamma      = 0.5
	DefaultF0         = 0.5
	DefaultStateBound = 1e6
	DefaultRefTol     = 1e-9
)

type Config struct {
	Model      string  `yaml:"model"`      // harmonic | damped_driven
	Integrator string  `yaml:"integrator"` // euler | rk4
	Start      float64 `yaml:"t_start"`
	End        float64 `yaml:"t_end"`
	Samples    int     `yaml:"samples"`
	X0         float64 `yaml:"x0"`
	V0         float64 `yaml:"v0"`
	Mass       float64 `yaml:"mass"`
	Omega      float64 `yaml:"omega"`
	Gamma      float64 `yaml:"gamma"`
	F0         float64 `yaml:"f0"`
	OmegaD     float64 `yaml:"omega_d"`
	StateBound float64 `yaml:"state_bound"`
	RefTol     float64 `yaml:"ref_tol"`
}

func Default() *Config {
	omega := 2 * math.Pi
	return &Config{
		Model:      "harmonic",
		Integrator: "rk4",
		Start:      0,
		End:        DefaultDuration,
		Samples:    DefaultSamples,
		X0:         1.0,
		V0:         0.0,
		Mass:       DefaultMass,
		Omega:      omega,
		Gamma:      DefaultGamma,
		F0:         DefaultF0,
		OmegaD:     1.5 * omega,
		StateBound: DefaultStateBound,
		RefTol:     DefaultRefTol,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildModel constructs the configured model with validated
// parameters.
func (c *Config) BuildModel() (model.Model, error) {
	switch c.Model {
	case "harmonic":
		return model.NewHarmonic(c.Omega)
	case "damped_driven":
		return model.NewDampedDriven(c.Omega, c.Gamma, c.F0, c.OmegaD)
	default:
		return nil, fmt.Errorf("unknown model: %s", c.Model)
	}
}

// BuildGrid constructs the run's time grid.
func (c *Config) BuildGrid() (osc.Grid, error) {
	return osc.NewGrid(c.Start, c.End, c.Samples)
}

// InitState returns the configured initial (displacement, velocity).
func (c *Config) InitState() osc.State {
	return osc.State{c.X0, c.V0}
}
