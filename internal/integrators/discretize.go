package integrators

import "github.com/san-kum/rotodyn/internal/dynamo"

// StepFunc advances a state by one step of size dt under a constant
// control. The dt passed at call time is the one used, whatever nominal
// step size the function was built with.
type StepFunc func(x dynamo.State, u dynamo.Control, dt float64) dynamo.State

// Discretize binds a system to an RK4 transition function with nominal
// step size dt. The call-time dt shadows the nominal one, so the same
// product can be stepped at any size. Each product owns its scratch
// buffers; two products built from the same arguments agree exactly on
// the same inputs.
func Discretize(dyn dynamo.System, dt float64) StepFunc {
	r := NewRK4()
	return func(x dynamo.State, u dynamo.Control, dt float64) dynamo.State {
		return r.Step(dyn, x, u, 0, dt)
	}
}
