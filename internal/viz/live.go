// Package viz provides a live terminal view of the three formulations
// evolving side by side.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rotodyn/internal/dynamo"
	"github.com/san-kum/rotodyn/internal/integrators"
	"github.com/san-kum/rotodyn/internal/linear"
	"github.com/san-kum/rotodyn/internal/models"
)

const (
	stepsPerFrame   = 10
	historyCapacity = 600
)

type TickMsg time.Time

// Model steps the Newtonian and Hamiltonian RK4 trajectories and the
// Euler-stepped linear model together, tracking how far apart they are.
type Model struct {
	newt *models.Newtonian
	ham  *models.Hamiltonian
	lin  *linear.Discrete

	integ  dynamo.Integrator
	torque dynamo.Control
	dt     float64

	t      float64
	nState dynamo.State
	hState dynamo.State
	lState dynamo.State
	init   dynamo.State

	driftHistory []float64
	running      bool
}

func NewModel(ix, iy, dt, rate1, rate2 float64, torque dynamo.Control) Model {
	newt := &models.Newtonian{Ix: ix, Iy: iy}
	ham := &models.Hamiltonian{Ix: ix, Iy: iy}

	x0 := dynamo.State{0, 0, rate1, rate2}

	return Model{
		newt:         newt,
		ham:          ham,
		lin:          linear.NewTwoAxis(dt, ix, iy),
		integ:        integrators.NewRK4(),
		torque:       torque,
		dt:           dt,
		nState:       x0.Clone(),
		hState:       ham.MomentaFromRates(x0),
		lState:       x0.Clone(),
		init:         x0.Clone(),
		driftHistory: make([]float64, 0, historyCapacity),
		running:      true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running {
			for i := 0; i < stepsPerFrame; i++ {
				m.step()
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	m.nState = m.integ.Step(m.newt, m.nState, m.torque, m.t, m.dt)
	m.hState = m.integ.Step(m.ham, m.hState, m.torque, m.t, m.dt)
	m.lState = m.lin.Propagate(m.lState, m.torque)
	m.t += m.dt

	drift := 0.0
	for i := range m.nState {
		drift = math.Max(drift, math.Abs(m.lState[i]-m.nState[i]))
	}
	m.driftHistory = append(m.driftHistory, drift)
	if len(m.driftHistory) > historyCapacity {
		m.driftHistory = m.driftHistory[1:]
	}
}

func (m *Model) reset() {
	m.t = 0
	m.nState = m.init.Clone()
	m.hState = m.ham.MomentaFromRates(m.init)
	m.lState = m.init.Clone()
	m.driftHistory = m.driftHistory[:0]
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("rotodyn live — two-axis formulation watch"))
	b.WriteString("\n")

	rates := m.ham.RatesFromMomenta(m.hState)
	residual := math.Max(math.Abs(rates[2]-m.nState[2]), math.Abs(rates[3]-m.nState[3]))

	rows := []struct {
		name  string
		state dynamo.State
	}{
		{"newtonian", m.nState},
		{"hamiltonian", m.hState},
		{"linear", m.lState},
	}

	var panel strings.Builder
	panel.WriteString(labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%.3f s", m.t)) + "\n")
	for _, row := range rows {
		panel.WriteString(labelStyle.Render(row.name) +
			valueStyle.Render(fmt.Sprintf("[%9.6f %9.6f %9.6f %9.6f]",
				row.state[0], row.state[1], row.state[2], row.state[3])) + "\n")
	}

	resStyle := okStyle
	if residual > 1e-9 {
		resStyle = badStyle
	}
	panel.WriteString(labelStyle.Render("scaling resid") + resStyle.Render(fmt.Sprintf("%.3e", residual)) + "\n")
	if n := len(m.driftHistory); n > 0 {
		panel.WriteString(labelStyle.Render("linear drift") +
			valueStyle.Render(fmt.Sprintf("%.3e", m.driftHistory[n-1])) + "\n")
	}
	b.WriteString(panelStyle.Render(panel.String()))
	b.WriteString("\n")

	if len(m.driftHistory) > 2 {
		graph := asciigraph.Plot(m.driftHistory,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("linear model drift vs RK4"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · r reset · q quit"))
	b.WriteString("\n")

	return b.String()
}
