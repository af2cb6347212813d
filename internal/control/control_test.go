package control

import (
	"testing"

	"github.com/san-kum/rotodyn/internal/dynamo"
)

func TestNone(t *testing.T) {
	ctrl := NewNone(2)
	u := ctrl.Compute(dynamo.State{1.0, 2.0, 0, 0}, 0.0)

	if len(u) != 2 {
		t.Errorf("expected 2 controls, got %d", len(u))
	}
	for i, v := range u {
		if v != 0 {
			t.Errorf("control[%d] should be 0, got %f", i, v)
		}
	}
}

func TestConstant(t *testing.T) {
	ctrl := NewConstant(dynamo.Control{0.5, 0.5})

	u := ctrl.Compute(dynamo.State{1, 2, 3, 4}, 0.0)
	if u[0] != 0.5 || u[1] != 0.5 {
		t.Errorf("constant control changed: %v", u)
	}

	u[0] = 99
	again := ctrl.Compute(nil, 1.0)
	if again[0] != 0.5 {
		t.Error("caller mutation leaked into controller state")
	}
}

func TestPID(t *testing.T) {
	ctrl := NewPID(10.0, 0.1, 5.0, 0.0, 0.0)

	u := ctrl.Compute(dynamo.State{1.0, -1.0, 0, 0}, 0.0)
	if len(u) != 2 {
		t.Fatalf("expected 2 controls, got %d", len(u))
	}
	if u[0] >= 0 {
		t.Error("axis 1 should get negative torque for positive angle")
	}
	if u[1] <= 0 {
		t.Error("axis 2 should get positive torque for negative angle")
	}
}

func TestPIDReset(t *testing.T) {
	ctrl := NewPID(1.0, 1.0, 0.0, 0.0, 0.0)

	ctrl.Compute(dynamo.State{1.0, 1.0, 0, 0}, 0.0)
	ctrl.Compute(dynamo.State{1.0, 1.0, 0, 0}, 1.0)
	withIntegral := ctrl.Compute(dynamo.State{1.0, 1.0, 0, 0}, 2.0)

	ctrl.Reset()
	fresh := ctrl.Compute(dynamo.State{1.0, 1.0, 0, 0}, 3.0)

	if fresh[0] <= withIntegral[0] {
		t.Error("reset did not clear accumulated integral")
	}
}

func TestLQR(t *testing.T) {
	k := [][]float64{{1.0, 0, 2.0, 0}, {0, 1.0, 0, 2.0}}
	target := dynamo.State{0, 0, 0, 0}
	ctrl := NewLQR(k, target)

	u := ctrl.Compute(dynamo.State{0, 0, 0, 0}, 0.0)
	if u[0] != 0 || u[1] != 0 {
		t.Errorf("expected zero control at target, got %v", u)
	}

	u = ctrl.Compute(dynamo.State{1.0, 0, 0, 0}, 0.0)
	if u[0] == 0 {
		t.Error("expected non-zero control away from target")
	}
	if u[1] != 0 {
		t.Error("axis coupling in decoupled gain matrix")
	}
}

func TestTwoAxisLQR(t *testing.T) {
	ctrl := NewTwoAxisLQR()
	u := ctrl.Compute(dynamo.State{0.1, -0.1, 0, 0}, 0.0)

	if len(u) != 2 {
		t.Fatalf("expected 2 controls, got %d", len(u))
	}
	if u[0] >= 0 || u[1] <= 0 {
		t.Errorf("gains should push both angles toward zero, got %v", u)
	}
}
