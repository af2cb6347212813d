// Package linear provides the discrete-time linear model of the
// two-axis rotational system, the form consumed by linear control such
// as MPC.
package linear

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rotodyn/internal/dynamo"
)

// Discrete is a linear discrete-time model based on the control theory
// equation
//
//	x[k+1] = A*x[k] + B*u[k]
//
// A and B are built once and reused on every step. Propagate applies a
// single first-order (Euler) step per call; accuracy is first order in
// the dt baked into the matrices, so a small drift against an RK4
// trajectory of the same system is expected.
type Discrete struct {
	A *mat.Dense
	B *mat.Dense
}

// NewDiscrete wraps prebuilt system matrices. The state matrix must be
// square and the input matrix, if present, must have matching row count.
func NewDiscrete(a, b *mat.Dense) (*Discrete, error) {
	if a == nil {
		return nil, fmt.Errorf("linear: state matrix must be defined")
	}
	ar, ac := a.Dims()
	if ar != ac {
		return nil, fmt.Errorf("linear: state matrix must be square, got %dx%d", ar, ac)
	}
	if b != nil {
		br, _ := b.Dims()
		if br != ar {
			return nil, fmt.Errorf("linear: input matrix has %d rows, state matrix has %d", br, ar)
		}
	}
	return &Discrete{A: a, B: b}, nil
}

// NewTwoAxis builds the Euler discretization of the two-axis Newtonian
// dynamics for step size dt and axis inertias ix, iy:
//
//	A = | 1 0 dt 0 |    B = |   0     0   |
//	    | 0 1 0 dt |        |   0     0   |
//	    | 0 0 1  0 |        | dt/ix   0   |
//	    | 0 0 0  1 |        |   0   dt/iy |
func NewTwoAxis(dt, ix, iy float64) *Discrete {
	a := mat.NewDense(4, 4, []float64{
		1, 0, dt, 0,
		0, 1, 0, dt,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
	b := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 0,
		dt / ix, 0,
		0, dt / iy,
	})
	return &Discrete{A: a, B: b}
}

// Dims returns the state and input dimensions.
func (d *Discrete) Dims() (nx, nu int) {
	nx, _ = d.A.Dims()
	if d.B != nil {
		_, nu = d.B.Dims()
	}
	return nx, nu
}

// Propagate returns the next state A*x + B*u. Mismatched vector sizes
// surface as panics from the underlying matrix operations.
func (d *Discrete) Propagate(x dynamo.State, u dynamo.Control) dynamo.State {
	nx, _ := d.A.Dims()

	out := mat.NewVecDense(nx, nil)
	out.MulVec(d.A, mat.NewVecDense(len(x), x))

	if d.B != nil && len(u) > 0 {
		bu := mat.NewVecDense(nx, nil)
		bu.MulVec(d.B, mat.NewVecDense(len(u), u))
		out.AddVec(out, bu)
	}

	return dynamo.State(out.RawVector().Data)
}
