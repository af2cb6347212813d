package config

var Presets = map[string]*Config{
	// The reference scenario: matched rates, symmetric torque, five
	// short steps. This is the setup the equivalence check reports on.
	"baseline": {
		Formulation: "newtonian", Integrator: "rk4", Controller: "constant",
		Dt: 0.001, Steps: 5,
		Inertia:   InertiaConfig{Ix: 2.0, Iy: 2.0},
		InitState: InitStateConfig{Rate1: 0.15, Rate2: -0.15},
		Control:   ControllerConfig{Torque1: 0.5, Torque2: 0.5},
	},
	"asymmetric": {
		Formulation: "newtonian", Integrator: "rk4", Controller: "constant",
		Dt: 0.001, Steps: 50,
		Inertia:   InertiaConfig{Ix: 2.0, Iy: 2.0},
		InitState: InitStateConfig{Rate1: 0.15, Rate2: -0.15},
		Control:   ControllerConfig{Torque1: 0.8, Torque2: -0.2},
	},
	"coarse": {
		Formulation: "newtonian", Integrator: "rk4", Controller: "constant",
		Dt: 0.01, Steps: 5,
		Inertia:   InertiaConfig{Ix: 2.0, Iy: 2.0},
		InitState: InitStateConfig{Rate1: 0.15, Rate2: -0.15},
		Control:   ControllerConfig{Torque1: 0.5, Torque2: 0.5},
	},
	"long": {
		Formulation: "newtonian", Integrator: "rk4", Controller: "constant",
		Dt: 0.001, Steps: 5000,
		Inertia:   InertiaConfig{Ix: 2.0, Iy: 2.0},
		InitState: InitStateConfig{Rate1: 0.15, Rate2: -0.15},
		Control:   ControllerConfig{Torque1: 0.5, Torque2: 0.5},
	},
	"regulate": {
		Formulation: "newtonian", Integrator: "rk4", Controller: "mpc",
		Dt: 0.05, Steps: 200,
		Inertia:   InertiaConfig{Ix: 2.0, Iy: 2.0},
		InitState: InitStateConfig{Theta1: 0.2, Theta2: -0.2},
		Control:   ControllerConfig{Horizon: 20, Q: 1.0, R: 0.1},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
