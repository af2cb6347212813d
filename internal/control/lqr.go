package control

import "github.com/san-kum/rotodyn/internal/dynamo"

type LQR struct {
	K      [][]float64
	Target dynamo.State
}

func NewLQR(k [][]float64, target dynamo.State) *LQR {
	return &LQR{K: k, Target: target}
}

func (l *LQR) Compute(x dynamo.State, t float64) dynamo.Control {
	u := make(dynamo.Control, len(l.K))
	for i := range u {
		for j := range x {
			target := 0.0
			if j < len(l.Target) {
				target = l.Target[j]
			}
			if j < len(l.K[i]) {
				u[i] -= l.K[i][j] * (x[j] - target)
			}
		}
	}
	return u
}

// Gains for the two-axis system with the default inertias. Each axis is
// a decoupled double integrator, so the gain rows only touch their own
// angle and rate.
var twoAxisGains = [][]float64{
	{3.16, 0, 3.56, 0},
	{0, 3.16, 0, 3.56},
}

func NewTwoAxisLQR() *LQR {
	return NewLQR(twoAxisGains, dynamo.State{0, 0, 0, 0})
}
