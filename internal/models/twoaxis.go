package models

import (
	"fmt"

	"github.com/san-kum/rotodyn/internal/dynamo"
)

// DefaultInertia is the moment of inertia used on both axes unless
// reconfigured.
const DefaultInertia = 2.0

// Newtonian models two decoupled rotational axes in angle/rate form:
// θ̈ᵢ = Tᵢ/Iᵢ.
type Newtonian struct {
	Ix, Iy float64
}

func NewNewtonian() *Newtonian {
	return &Newtonian{Ix: DefaultInertia, Iy: DefaultInertia}
}

func (n *Newtonian) StateDim() int   { return 4 }
func (n *Newtonian) ControlDim() int { return 2 }

func (n *Newtonian) Derive(x dynamo.State, u dynamo.Control, _ float64) dynamo.State {
	return dynamo.State{x[2], x[3], u[0] / n.Ix, u[1] / n.Iy}
}

func (n *Newtonian) DefaultState() dynamo.State {
	return dynamo.State{0, 0, 0.15, -0.15}
}

// Energy is the rotational kinetic energy ½I₁θ̇₁² + ½I₂θ̇₂².
func (n *Newtonian) Energy(x dynamo.State) float64 {
	return 0.5*n.Ix*x[2]*x[2] + 0.5*n.Iy*x[3]*x[3]
}

func (n *Newtonian) GetParams() map[string]float64 {
	return map[string]float64{"Ix": n.Ix, "Iy": n.Iy}
}

func (n *Newtonian) SetParam(name string, v float64) error {
	return setInertia(&n.Ix, &n.Iy, name, v)
}

// Hamiltonian models the same axes in canonical form: q̇ᵢ = pᵢ/Iᵢ,
// ṗᵢ = Tᵢ.
type Hamiltonian struct {
	Ix, Iy float64
}

func NewHamiltonian() *Hamiltonian {
	return &Hamiltonian{Ix: DefaultInertia, Iy: DefaultInertia}
}

func (h *Hamiltonian) StateDim() int   { return 4 }
func (h *Hamiltonian) ControlDim() int { return 2 }

func (h *Hamiltonian) Derive(x dynamo.State, u dynamo.Control, _ float64) dynamo.State {
	return dynamo.State{x[2] / h.Ix, x[3] / h.Iy, u[0], u[1]}
}

func (h *Hamiltonian) DefaultState() dynamo.State {
	return h.MomentaFromRates(dynamo.State{0, 0, 0.15, -0.15})
}

// Energy is the kinetic energy in momentum form: p₁²/2I₁ + p₂²/2I₂.
func (h *Hamiltonian) Energy(x dynamo.State) float64 {
	return x[2]*x[2]/(2*h.Ix) + x[3]*x[3]/(2*h.Iy)
}

func (h *Hamiltonian) GetParams() map[string]float64 {
	return map[string]float64{"Ix": h.Ix, "Iy": h.Iy}
}

func (h *Hamiltonian) SetParam(name string, v float64) error {
	return setInertia(&h.Ix, &h.Iy, name, v)
}

// MomentaFromRates maps a Newtonian state (θ1, θ2, θ1̇, θ2̇) to the
// canonical state (q1, q2, p1, p2) with matched physical conditions.
func (h *Hamiltonian) MomentaFromRates(x dynamo.State) dynamo.State {
	return dynamo.State{x[0], x[1], h.Ix * x[2], h.Iy * x[3]}
}

// RatesFromMomenta is the inverse of MomentaFromRates.
func (h *Hamiltonian) RatesFromMomenta(x dynamo.State) dynamo.State {
	return dynamo.State{x[0], x[1], x[2] / h.Ix, x[3] / h.Iy}
}

func setInertia(ix, iy *float64, name string, v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s = %f", dynamo.ErrParameterBounds, name, v)
	}
	switch name {
	case "Ix":
		*ix = v
	case "Iy":
		*iy = v
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
