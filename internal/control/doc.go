// Package control provides feedback controllers for the two-axis
// rotational system.
//
// Controllers implement the [dynamo.Controller] interface to compute
// torque inputs from the current state:
//
//   - [PID]: per-axis Proportional-Integral-Derivative control
//   - [LQR]: Linear Quadratic Regulator gain matrix
//   - [MPC]: receding-horizon control over the discrete linear model
//   - [None]: passthrough controller (zero torque)
//   - [Constant]: fixed torque, the equivalence check's input
//
// MPC is the consumer the linear model exists for: it predicts over the
// Euler-discretized matrices and solves the unconstrained horizon
// problem each step.
package control
