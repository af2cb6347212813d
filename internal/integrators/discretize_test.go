package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/rotodyn/internal/dynamo"
)

type torqueDynamics struct{}

func (d *torqueDynamics) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[2], x[3], u[0] / 2.0, u[1] / 2.0}
}

func (d *torqueDynamics) StateDim() int   { return 4 }
func (d *torqueDynamics) ControlDim() int { return 2 }

func TestDiscretizeMatchesRK4(t *testing.T) {
	dyn := &torqueDynamics{}
	dt := 0.001

	step := Discretize(dyn, dt)
	rk4 := NewRK4()

	x := dynamo.State{0, 0, 0.15, -0.15}
	u := dynamo.Control{0.5, 0.5}

	fromFunc := step(x, u, dt)
	fromRK4 := rk4.Step(dyn, x, u, 0, dt)

	for i := range fromFunc {
		if fromFunc[i] != fromRK4[i] {
			t.Errorf("component %d differs: %v vs %v", i, fromFunc, fromRK4)
		}
	}
}

func TestDiscretizeIdempotent(t *testing.T) {
	dyn := &torqueDynamics{}
	dt := 0.001

	stepA := Discretize(dyn, dt)
	stepB := Discretize(dyn, dt)

	x := dynamo.State{0, 0, 0.15, -0.15}
	u := dynamo.Control{0.5, 0.5}

	a := stepA(x, u, dt)
	b := stepB(x, u, dt)

	for i := range a {
		if a[i] != b[i] {
			t.Errorf("two factory products disagree at component %d: %v vs %v", i, a, b)
		}
	}

	// Repeat calls to the same product must agree bitwise too.
	again := stepA(x, u, dt)
	for i := range a {
		if a[i] != again[i] {
			t.Errorf("repeat call disagrees at component %d", i)
		}
	}
}

func TestDiscretizeCallTimeDtWins(t *testing.T) {
	dyn := &torqueDynamics{}

	step := Discretize(dyn, 0.001)

	x := dynamo.State{0, 0, 0.15, -0.15}
	u := dynamo.Control{0.5, 0.5}

	coarse := step(x, u, 0.1)
	fine := step(x, u, 0.001)

	// The rate gain per step is (T/I)*dt; with a 100x larger call-time
	// dt the step must move 100x further regardless of construction dt.
	gainCoarse := coarse[2] - x[2]
	gainFine := fine[2] - x[2]
	if math.Abs(gainCoarse/gainFine-100.0) > 1e-9 {
		t.Errorf("call-time dt not honored: gains %e vs %e", gainCoarse, gainFine)
	}
}
