package control

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rotodyn/internal/dynamo"
	"github.com/san-kum/rotodyn/internal/linear"
)

// MPC is an unconstrained receding-horizon controller over the discrete
// linear model. Each step it predicts the state over the horizon,
// solves the quadratic horizon problem and applies the first input.
//
// The prediction matrices and the Hessian depend only on the model and
// weights, so they are built once at construction.
type MPC struct {
	model   *linear.Discrete
	horizon int
	q, r    float64
	target  dynamo.State

	phi   *mat.Dense // stacked A, A², … A^H
	gamma *mat.Dense // block lower-triangular impulse response
	hess  *mat.Dense // q·ΓᵀΓ + r·I
}

func NewMPC(model *linear.Discrete, horizon int, q, r float64, target dynamo.State) *MPC {
	nx, nu := model.Dims()

	phi := mat.NewDense(horizon*nx, nx, nil)
	gamma := mat.NewDense(horizon*nx, horizon*nu, nil)

	aPow := mat.DenseCopyOf(model.A)
	for i := 0; i < horizon; i++ {
		phi.Slice(i*nx, (i+1)*nx, 0, nx).(*mat.Dense).Copy(aPow)
		if i+1 < horizon {
			next := mat.NewDense(nx, nx, nil)
			next.Mul(model.A, aPow)
			aPow = next
		}
	}

	// Block (i, i-d) of Gamma is A^d·B.
	akb := mat.DenseCopyOf(model.B)
	for d := 0; d < horizon; d++ {
		for i := d; i < horizon; i++ {
			gamma.Slice(i*nx, (i+1)*nx, (i-d)*nu, (i-d+1)*nu).(*mat.Dense).Copy(akb)
		}
		if d+1 < horizon {
			next := mat.NewDense(nx, nu, nil)
			next.Mul(model.A, akb)
			akb = next
		}
	}

	hess := mat.NewDense(horizon*nu, horizon*nu, nil)
	hess.Mul(gamma.T(), gamma)
	hess.Scale(q, hess)
	for i := 0; i < horizon*nu; i++ {
		hess.Set(i, i, hess.At(i, i)+r)
	}

	return &MPC{
		model:   model,
		horizon: horizon,
		q:       q,
		r:       r,
		target:  target,
		phi:     phi,
		gamma:   gamma,
		hess:    hess,
	}
}

func (m *MPC) Compute(x dynamo.State, t float64) dynamo.Control {
	nx, nu := m.model.Dims()

	pred := mat.NewVecDense(m.horizon*nx, nil)
	pred.MulVec(m.phi, mat.NewVecDense(len(x), x))

	for i := 0; i < m.horizon; i++ {
		for j := 0; j < nx; j++ {
			tj := 0.0
			if j < len(m.target) {
				tj = m.target[j]
			}
			pred.SetVec(i*nx+j, pred.AtVec(i*nx+j)-tj)
		}
	}

	g := mat.NewVecDense(m.horizon*nu, nil)
	g.MulVec(m.gamma.T(), pred)
	g.ScaleVec(-m.q, g)

	var u mat.VecDense
	if err := u.SolveVec(m.hess, g); err != nil {
		return make(dynamo.Control, nu)
	}

	out := make(dynamo.Control, nu)
	for i := 0; i < nu; i++ {
		out[i] = u.AtVec(i)
	}
	return out
}
