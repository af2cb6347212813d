// Package models provides the two-axis rotational system in its two
// continuous formulations.
//
// Both implement [dynamo.System] over a 4-element state and 2-element
// torque control:
//
//   - [Newtonian]: state (θ1, θ2, θ1̇, θ2̇), angles and angular rates
//   - [Hamiltonian]: state (q1, q2, p1, p2), coordinates and conjugate
//     momenta with pᵢ = Iᵢ·θᵢ̇
//
// The formulations describe the same physics: evolved from matched
// initial conditions under identical torques, the Hamiltonian momenta
// stay equal to the Newtonian rates scaled by the inertias. Both models
// implement [dynamo.Hamiltonian] for energy and [dynamo.Configurable]
// for inertia adjustment. The inertias default to the same value on both
// axes; the designed equivalence assumes the two models share them.
package models
