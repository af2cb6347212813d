package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rotodyn/internal/models"
)

const (
	DefaultDt     = 0.001
	DefaultSteps  = 5
	DefaultRate1  = 0.15
	DefaultRate2  = -0.15
	DefaultTorque = 0.5
	DefaultKp     = 10.0
	DefaultKi     = 0.1
	DefaultKd     = 5.0
)

type Config struct {
	Formulation string           `yaml:"formulation"`
	Integrator  string           `yaml:"integrator"`
	Controller  string           `yaml:"controller"`
	Dt          float64          `yaml:"dt"`
	Steps       int              `yaml:"steps"`
	Seed        int64            `yaml:"seed"`
	Inertia     InertiaConfig    `yaml:"inertia"`
	InitState   InitStateConfig  `yaml:"init_state"`
	Control     ControllerConfig `yaml:"controller_params"`
}

type InertiaConfig struct {
	Ix float64 `yaml:"ix"`
	Iy float64 `yaml:"iy"`
}

type InitStateConfig struct {
	Theta1 float64 `yaml:"theta1"`
	Theta2 float64 `yaml:"theta2"`
	Rate1  float64 `yaml:"rate1"`
	Rate2  float64 `yaml:"rate2"`
}

type ControllerConfig struct {
	Torque1 float64 `yaml:"torque1"`
	Torque2 float64 `yaml:"torque2"`
	Kp      float64 `yaml:"kp"`
	Ki      float64 `yaml:"ki"`
	Kd      float64 `yaml:"kd"`
	Horizon int     `yaml:"horizon"`
	Q       float64 `yaml:"q"`
	R       float64 `yaml:"r"`
}

func DefaultConfig() *Config {
	return &Config{
		Formulation: "newtonian",
		Integrator:  "rk4",
		Controller:  "constant",
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
		Inertia: InertiaConfig{
			Ix: models.DefaultInertia,
			Iy: models.DefaultInertia,
		},
		InitState: InitStateConfig{
			Rate1: DefaultRate1,
			Rate2: DefaultRate2,
		},
		Control: ControllerConfig{
			Torque1: DefaultTorque,
			Torque2: DefaultTorque,
			Kp:      DefaultKp,
			Ki:      DefaultKi,
			Kd:      DefaultKd,
			Horizon: 10,
			Q:       1.0,
			R:       0.1,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// GetInitState builds the start vector for the configured formulation.
// The Hamiltonian layout gets the same physical conditions expressed as
// momenta.
func (c *Config) GetInitState() []float64 {
	rates := []float64{c.InitState.Theta1, c.InitState.Theta2, c.InitState.Rate1, c.InitState.Rate2}
	if c.Formulation == "hamiltonian" {
		return []float64{rates[0], rates[1], c.Inertia.Ix * rates[2], c.Inertia.Iy * rates[3]}
	}
	return rates
}

func (c *Config) GetTorque() []float64 {
	return []float64{c.Control.Torque1, c.Control.Torque2}
}
