package control

import "github.com/san-kum/rotodyn/internal/dynamo"

type None struct {
	dim int
}

func NewNone(dim int) *None {
	return &None{dim: dim}
}

func (n *None) Compute(x dynamo.State, t float64) dynamo.Control {
	return make(dynamo.Control, n.dim)
}

// Constant applies the same torque every step, the input profile used
// by the equivalence check.
type Constant struct {
	u dynamo.Control
}

func NewConstant(u dynamo.Control) *Constant {
	return &Constant{u: u}
}

func (c *Constant) Compute(x dynamo.State, t float64) dynamo.Control {
	return append(dynamo.Control(nil), c.u...)
}
