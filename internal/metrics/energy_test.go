package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/rotodyn/internal/dynamo"
	"github.com/san-kum/rotodyn/internal/models"
)

func TestRotationalEnergy(t *testing.T) {
	m := NewRotationalEnergy(2.0, 2.0)

	x := dynamo.State{0, 0, 0.15, -0.15}
	u := dynamo.Control{}

	m.Observe(x, u, 0)

	expected := 0.5*2.0*0.15*0.15 + 0.5*2.0*0.15*0.15
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}
}

func TestRotationalEnergyReset(t *testing.T) {
	m := NewRotationalEnergy(2.0, 2.0)

	m.Observe(dynamo.State{0, 0, 1.0, 1.0}, nil, 0)
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDriftUnderTorque(t *testing.T) {
	dyn := models.NewNewtonian()
	m := NewEnergyDrift(dyn)

	// Constant torque pumps energy in; drift must be positive.
	m.Observe(dynamo.State{0, 0, 0.15, -0.15}, nil, 0)
	m.Observe(dynamo.State{0, 0, 0.20, -0.20}, nil, 1)

	if m.Value() <= 0 {
		t.Errorf("expected positive drift, got %f", m.Value())
	}
}

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()

	m.Observe(nil, dynamo.Control{0.5, 0.5}, 0)
	m.Observe(nil, dynamo.Control{-0.5, 0.5}, 1)

	if math.Abs(m.Value()-1.0) > 1e-12 {
		t.Errorf("expected mean effort 1.0, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(1.0)

	m.Observe(dynamo.State{0.1, 0.1}, nil, 0)
	m.Observe(dynamo.State{2.0, 0.1}, nil, 1)

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected stability 0.5, got %f", m.Value())
	}
}
