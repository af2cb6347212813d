package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rotodyn/internal/check"
	"github.com/san-kum/rotodyn/internal/config"
	"github.com/san-kum/rotodyn/internal/control"
	"github.com/san-kum/rotodyn/internal/dynamo"
	"github.com/san-kum/rotodyn/internal/integrators"
	"github.com/san-kum/rotodyn/internal/linear"
	"github.com/san-kum/rotodyn/internal/metrics"
	"github.com/san-kum/rotodyn/internal/models"
	"github.com/san-kum/rotodyn/internal/storage"
	"github.com/san-kum/rotodyn/internal/viz"
)

var (
	dataDir    string
	dt         float64
	steps      int
	ix         float64
	iy         float64
	rate1      float64
	rate2      float64
	torque1    float64
	torque2    float64
	seed       int64
	integrator string
	controller string
	kp         float64
	ki         float64
	kd         float64
	horizon    int
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rotodyn",
		Short: "two-axis rotational dynamics lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the equivalence check when no command given.
			return runCheck(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rotodyn", "data directory")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "compare newtonian, hamiltonian and linear formulations",
		RunE:  runCheck,
	}
	addScenarioFlags(checkCmd)

	runCmd := &cobra.Command{
		Use:   "run [formulation]",
		Short: "run one formulation and persist the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (rk4, euler)")
	runCmd.Flags().StringVar(&controller, "controller", "constant", "controller (constant, none, pid, lqr, mpc)")
	runCmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "pid kp")
	runCmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "pid ki")
	runCmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "pid kd")
	runCmd.Flags().IntVar(&horizon, "horizon", 10, "mpc horizon")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the three formulations drift apart in real time",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(checkCmd, runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&ix, "ix", models.DefaultInertia, "x-axis inertia")
	cmd.Flags().Float64Var(&iy, "iy", models.DefaultInertia, "y-axis inertia")
	cmd.Flags().Float64Var(&rate1, "rate1", config.DefaultRate1, "initial rate, axis 1")
	cmd.Flags().Float64Var(&rate2, "rate2", config.DefaultRate2, "initial rate, axis 2")
	cmd.Flags().Float64Var(&torque1, "torque1", config.DefaultTorque, "constant torque, axis 1")
	cmd.Flags().Float64Var(&torque2, "torque2", config.DefaultTorque, "constant torque, axis 2")
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts := check.Options{
		Dt:     dt,
		Steps:  steps,
		Ix:     ix,
		Iy:     iy,
		Torque: dynamo.Control{torque1, torque2},
		Rate1:  rate1,
		Rate2:  rate2,
	}
	// Bare `rotodyn` invocations never parsed the scenario flags.
	if opts.Dt == 0 {
		opts = check.DefaultOptions()
	}

	report := check.Run(opts)
	report.Fprint(os.Stdout)

	if !report.Consistent() {
		return fmt.Errorf("formulations disagree beyond tolerance")
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	formulation := args[0]

	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	applyFlags(cmd, cfg)
	cfg.Formulation = formulation

	dyn, err := getFormulation(cfg)
	if err != nil {
		return err
	}
	integ, err := getIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}
	ctrl, err := getController(cfg)
	if err != nil {
		return err
	}

	sim := dynamo.New(dyn, integ, ctrl)
	sim.AddMetric(metrics.NewRotationalEnergy(cfg.Inertia.Ix, cfg.Inertia.Iy))
	sim.AddMetric(metrics.NewControlEffort())
	sim.AddMetric(metrics.NewStability(10.0))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s formulation...\n", formulation)
	start := time.Now()

	result, err := sim.Run(context.Background(), dynamo.State(cfg.GetInitState()), dynamo.Config{
		Dt:            cfg.Dt,
		Steps:         cfg.Steps,
		Seed:          cfg.Seed,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(formulation, cfg.Dt, cfg.Steps, cfg.Seed, cfg.Integrator, cfg.Controller, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("final state: %v\n", result.Final())
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("ix") {
		cfg.Inertia.Ix = ix
	}
	if cmd.Flags().Changed("iy") {
		cfg.Inertia.Iy = iy
	}
	if cmd.Flags().Changed("rate1") {
		cfg.InitState.Rate1 = rate1
	}
	if cmd.Flags().Changed("rate2") {
		cfg.InitState.Rate2 = rate2
	}
	if cmd.Flags().Changed("torque1") {
		cfg.Control.Torque1 = torque1
	}
	if cmd.Flags().Changed("torque2") {
		cfg.Control.Torque2 = torque2
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("controller") {
		cfg.Controller = controller
	}
	if cmd.Flags().Changed("kp") {
		cfg.Control.Kp = kp
	}
	if cmd.Flags().Changed("ki") {
		cfg.Control.Ki = ki
	}
	if cmd.Flags().Changed("kd") {
		cfg.Control.Kd = kd
	}
	if cmd.Flags().Changed("horizon") {
		cfg.Control.Horizon = horizon
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
}

func getFormulation(cfg *config.Config) (dynamo.System, error) {
	switch cfg.Formulation {
	case "newtonian":
		return &models.Newtonian{Ix: cfg.Inertia.Ix, Iy: cfg.Inertia.Iy}, nil
	case "hamiltonian":
		return &models.Hamiltonian{Ix: cfg.Inertia.Ix, Iy: cfg.Inertia.Iy}, nil
	default:
		return nil, fmt.Errorf("unknown formulation: %s", cfg.Formulation)
	}
}

func getIntegrator(name string) (dynamo.Integrator, error) {
	switch name {
	case "rk4":
		return integrators.NewRK4(), nil
	case "euler":
		return integrators.NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func getController(cfg *config.Config) (dynamo.Controller, error) {
	switch cfg.Controller {
	case "none":
		return control.NewNone(2), nil
	case "constant":
		return control.NewConstant(dynamo.Control(cfg.GetTorque())), nil
	case "pid":
		return control.NewPID(cfg.Control.Kp, cfg.Control.Ki, cfg.Control.Kd, 0, 0), nil
	case "lqr":
		return control.NewTwoAxisLQR(), nil
	case "mpc":
		model := linear.NewTwoAxis(cfg.Dt, cfg.Inertia.Ix, cfg.Inertia.Iy)
		return control.NewMPC(model, cfg.Control.Horizon, cfg.Control.Q, cfg.Control.R, dynamo.State{0, 0, 0, 0}), nil
	default:
		return nil, fmt.Errorf("unknown controller: %s", cfg.Controller)
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFORMULATION\tTIME\tSTEPS\tDT\tINTEG\tCTRL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Formulation,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Integrator,
			run.Controller,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("formulation: %s\n", meta.Formulation)
	fmt.Printf("samples: %d\n\n", len(states))

	captions := []string{"theta1 (angle)", "theta2 (angle)", "rate1", "rate2"}
	if meta.Formulation == "hamiltonian" {
		captions = []string{"q1 (coordinate)", "q2 (coordinate)", "p1 (momentum)", "p2 (momentum)"}
	}

	numVars := len(states[0])
	if numVars > len(captions) {
		numVars = len(captions)
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(captions[varIdx]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	result := &dynamo.Result{
		States:  make([]dynamo.State, len(states)),
		Times:   times,
		Metrics: meta.Metrics,
	}
	for i, s := range states {
		result.States[i] = s
	}

	return storage.ExportJSONStdout(meta.ID, meta.Formulation, meta.Integrator, meta.Controller, meta.Dt, meta.Steps, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 9, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	m := viz.NewModel(ix, iy, dt, rate1, rate2, dynamo.Control{torque1, torque2})

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
