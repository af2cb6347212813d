package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rotodyn/internal/dynamo"
)

func TestNewDiscreteValidation(t *testing.T) {
	square := mat.NewDense(2, 2, []float64{1, 0, 0, 1})

	if _, err := NewDiscrete(nil, nil); err == nil {
		t.Error("expected error for nil state matrix")
	}
	if _, err := NewDiscrete(mat.NewDense(2, 3, nil), nil); err == nil {
		t.Error("expected error for non-square state matrix")
	}
	if _, err := NewDiscrete(square, mat.NewDense(3, 1, nil)); err == nil {
		t.Error("expected error for input matrix row mismatch")
	}
	if _, err := NewDiscrete(square, mat.NewDense(2, 1, nil)); err != nil {
		t.Errorf("valid matrices rejected: %v", err)
	}
}

func TestTwoAxisMatrices(t *testing.T) {
	dt := 0.001
	d := NewTwoAxis(dt, 2.0, 2.0)

	nx, nu := d.Dims()
	if nx != 4 || nu != 2 {
		t.Fatalf("expected 4 states and 2 inputs, got %d and %d", nx, nu)
	}

	wantA := []float64{
		1, 0, dt, 0,
		0, 1, 0, dt,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if got := d.A.At(i, j); got != wantA[i*4+j] {
				t.Errorf("A[%d,%d] = %f, want %f", i, j, got, wantA[i*4+j])
			}
		}
	}

	if got := d.B.At(2, 0); got != dt/2.0 {
		t.Errorf("B[2,0] = %f, want %f", got, dt/2.0)
	}
	if got := d.B.At(3, 1); got != dt/2.0 {
		t.Errorf("B[3,1] = %f, want %f", got, dt/2.0)
	}
	if got := d.B.At(0, 0); got != 0 {
		t.Errorf("B[0,0] = %f, want 0", got)
	}
}

func TestPropagateSingleStep(t *testing.T) {
	dt := 0.001
	d := NewTwoAxis(dt, 2.0, 2.0)

	x := dynamo.State{0, 0, 0.15, -0.15}
	u := dynamo.Control{0.5, 0.5}

	next := d.Propagate(x, u)

	// One Euler step: angles advance by rate*dt, rates by (T/I)*dt.
	want := dynamo.State{0.15 * dt, -0.15 * dt, 0.15 + 0.25*dt, -0.15 + 0.25*dt}
	for i := range want {
		if math.Abs(next[i]-want[i]) > 1e-15 {
			t.Errorf("component %d: got %.12f, want %.12f", i, next[i], want[i])
		}
	}
}

func TestPropagateZeroControl(t *testing.T) {
	d := NewTwoAxis(0.01, 2.0, 2.0)

	x := dynamo.State{0, 0, 0.1, 0.2}
	next := d.Propagate(x, nil)

	if math.Abs(next[2]-0.1) > 1e-15 || math.Abs(next[3]-0.2) > 1e-15 {
		t.Errorf("rates changed without control: %v", next)
	}
	if math.Abs(next[0]-0.001) > 1e-15 {
		t.Errorf("angle did not advance by rate*dt: %v", next)
	}
}

func TestMatricesNotRecomputed(t *testing.T) {
	d := NewTwoAxis(0.001, 2.0, 2.0)
	a := d.A

	x := dynamo.State{0, 0, 0.15, -0.15}
	for i := 0; i < 10; i++ {
		x = d.Propagate(x, dynamo.Control{0.5, 0.5})
	}

	if d.A != a {
		t.Error("state matrix replaced during propagation")
	}
}
