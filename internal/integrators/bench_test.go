package integrators

import (
	"testing"

	"github.com/san-kum/rotodyn/internal/dynamo"
)

type benchDynamics struct{}

func (b *benchDynamics) StateDim() int   { return 4 }
func (b *benchDynamics) ControlDim() int { return 2 }
func (b *benchDynamics) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[2], x[3], u[0] / 2.0, u[1] / 2.0}
}

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := &benchDynamics{}
	x := dynamo.State{0, 0, 0.15, -0.15}
	u := dynamo.Control{0.5, 0.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, u, 0, 0.001)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := &benchDynamics{}
	x := dynamo.State{0, 0, 0.15, -0.15}
	u := dynamo.Control{0.5, 0.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, u, 0, 0.001)
	}
}

func BenchmarkDiscretize(b *testing.B) {
	dyn := &benchDynamics{}
	step := Discretize(dyn, 0.001)
	x := dynamo.State{0, 0, 0.15, -0.15}
	u := dynamo.Control{0.5, 0.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = step(x, u, 0.001)
	}
}
