package check_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rotodyn/internal/check"
	"github.com/san-kum/rotodyn/internal/dynamo"
)

// Golden values for the reference scenario (Ix=Iy=2, dt=0.001,
// torque (0.5, 0.5), rates (0.15, -0.15), 5 steps). The true solution
// is quadratic in t, which RK4 reproduces to roundoff, so these are
// exact up to float64 arithmetic.
var (
	goldenNewtonian   = dynamo.State{0.000753125, -0.000746875, 0.15125, -0.14875}
	goldenHamiltonian = dynamo.State{0.000753125, -0.000746875, 0.3025, -0.2975}
	goldenLinear      = dynamo.State{0.0007525, -0.0007475, 0.15125, -0.14875}
)

var _ = Describe("Run", func() {
	var report check.Report

	BeforeEach(func() {
		report = check.Run(check.DefaultOptions())
	})

	It("reports the matched initial linear state", func() {
		Expect([]float64(report.Initial)).To(Equal([]float64{0, 0, 0.15, -0.15}))
	})

	It("reproduces the golden Newtonian state", func() {
		for i := range goldenNewtonian {
			Expect(report.Newtonian[i]).To(BeNumerically("~", goldenNewtonian[i], 1e-12))
		}
	})

	It("reproduces the golden Hamiltonian state", func() {
		for i := range goldenHamiltonian {
			Expect(report.Hamiltonian[i]).To(BeNumerically("~", goldenHamiltonian[i], 1e-12))
		}
	})

	It("reproduces the golden linear state", func() {
		for i := range goldenLinear {
			Expect(report.Linear[i]).To(BeNumerically("~", goldenLinear[i], 1e-12))
		}
	})

	It("keeps momenta equal to inertia-scaled rates", func() {
		Expect(report.ScalingResidual).To(BeNumerically("<=", 1e-12))
	})

	It("keeps the linear drift small but nonzero", func() {
		// Euler lags RK4 by ½·(T/I)·dt² per step on the angles.
		Expect(report.LinearDrift).To(BeNumerically("~", 6.25e-7, 1e-12))
	})

	It("is consistent under both tolerances", func() {
		Expect(report.Consistent()).To(BeTrue())
	})

	It("prints the four states in order", func() {
		var b strings.Builder
		report.Fprint(&b)
		out := b.String()

		Expect(out).To(ContainSubstring("Initial Linear State"))
		Expect(strings.Index(out, "Final Ham. State")).To(BeNumerically("<", strings.Index(out, "Final Newt State:")))
		Expect(strings.Index(out, "Final Newt State:")).To(BeNumerically("<", strings.Index(out, "Final Linear Newt State:")))
	})
})

var _ = Describe("Run with varied scenarios", func() {
	It("is deterministic across invocations", func() {
		a := check.Run(check.DefaultOptions())
		b := check.Run(check.DefaultOptions())

		Expect([]float64(a.Newtonian)).To(Equal([]float64(b.Newtonian)))
		Expect([]float64(a.Hamiltonian)).To(Equal([]float64(b.Hamiltonian)))
		Expect([]float64(a.Linear)).To(Equal([]float64(b.Linear)))
	})

	It("preserves the scaling invariant under asymmetric torque", func() {
		opts := check.DefaultOptions()
		opts.Torque = dynamo.Control{0.8, -0.2}
		opts.Steps = 50

		report := check.Run(opts)
		Expect(report.ScalingResidual).To(BeNumerically("<=", check.TolCanonical))
	})

	It("preserves the scaling invariant with unequal inertias", func() {
		opts := check.DefaultOptions()
		opts.Ix = 1.5
		opts.Iy = 3.0

		report := check.Run(opts)
		Expect(report.ScalingResidual).To(BeNumerically("<=", check.TolCanonical))
	})

	It("shrinks the linear drift as dt shrinks", func() {
		coarse := check.DefaultOptions()
		coarse.Dt = 0.01

		fine := check.DefaultOptions()
		fine.Dt = 0.001

		driftCoarse := check.Run(coarse).LinearDrift
		driftFine := check.Run(fine).LinearDrift

		Expect(driftFine).To(BeNumerically("<", driftCoarse))
		// First-order method over a fixed step count: per-step angle lag
		// is ½·(T/I)·dt², so a 10x smaller dt shrinks the drift ~100x.
		Expect(driftCoarse / driftFine).To(BeNumerically("~", 100.0, 1.0))
	})
})
