package control

import "github.com/san-kum/rotodyn/internal/dynamo"

type axisPID struct {
	kp, ki, kd float64
	target     float64
	integral   float64
	prevErr    float64
	prevT      float64
	first      bool
}

func (a *axisPID) update(angle, t float64) float64 {
	err := a.target - angle

	if a.first {
		a.prevErr = err
		a.prevT = t
		a.first = false
		return a.kp * err
	}

	dt := t - a.prevT
	if dt <= 0 {
		return a.kp * err
	}

	a.integral += err * dt
	derivative := (err - a.prevErr) / dt

	a.prevErr = err
	a.prevT = t

	return a.kp*err + a.ki*a.integral + a.kd*derivative
}

func (a *axisPID) reset() {
	a.integral = 0
	a.prevErr = 0
	a.first = true
}

// PID drives both axis angles to their targets with an independent loop
// per axis.
type PID struct {
	axis1, axis2 axisPID
}

func NewPID(kp, ki, kd, target1, target2 float64) *PID {
	return &PID{
		axis1: axisPID{kp: kp, ki: ki, kd: kd, target: target1, first: true},
		axis2: axisPID{kp: kp, ki: ki, kd: kd, target: target2, first: true},
	}
}

func (p *PID) Compute(x dynamo.State, t float64) dynamo.Control {
	if len(x) < 2 {
		return dynamo.Control{0, 0}
	}
	return dynamo.Control{p.axis1.update(x[0], t), p.axis2.update(x[1], t)}
}

// Reset clears integral and derivative state on both axes.
func (p *PID) Reset() {
	p.axis1.reset()
	p.axis2.reset()
}
