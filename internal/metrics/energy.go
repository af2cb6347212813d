// Package metrics provides per-run observables for the rotational
// simulations.
package metrics

import (
	"math"

	"github.com/san-kum/rotodyn/internal/dynamo"
)

// RotationalEnergy averages the kinetic energy ½I₁ω₁² + ½I₂ω₂² over the
// run. It reads the last two state components as angular rates, so it
// applies to the Newtonian layout.
type RotationalEnergy struct {
	name    string
	ix, iy  float64
	samples int
	total   float64
}

func NewRotationalEnergy(ix, iy float64) *RotationalEnergy {
	return &RotationalEnergy{name: "energy", ix: ix, iy: iy}
}

func (e *RotationalEnergy) Name() string { return e.name }

func (e *RotationalEnergy) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if len(x) < 4 {
		return
	}
	w1, w2 := x[2], x[3]
	e.total += 0.5*e.ix*w1*w1 + 0.5*e.iy*w2*w2
	e.samples++
}

func (e *RotationalEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *RotationalEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the worst relative deviation from the initial
// energy of a system implementing [dynamo.Hamiltonian].
type EnergyDrift struct {
	name     string
	dyn      dynamo.System
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(dyn dynamo.System) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", dyn: dyn}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, u dynamo.Control, t float64) {
	h, ok := e.dyn.(dynamo.Hamiltonian)
	if !ok {
		return
	}

	energy := h.Energy(x)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
