package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/oscilab/oscilab/internal/compare"
	"github.com/oscilab/oscilab/internal/config"
	"github.com/oscilab/oscilab/internal/energy"
	"github.com/oscilab/oscilab/internal/integrator"
	"github.com/oscilab/oscilab/internal/model"
	"github.com/oscilab/oscilab/internal/osc"
	"github.com/oscilab/oscilab/internal/reference"
	"github.com/oscilab/oscilab/internal/viz"
)

var (
	configFile     string
	integratorName string
	tStart         float64
	tEnd           float64
	samples        int
	x0Flag         float64
	v0Flag         float64
	mass           float64
	omega          float64
	gamma          float64
	f0             float64
	omegaD         float64
	bound          float64
	refTol         float64
	showPlot       bool
)

func main() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		}),
	))

	rootCmd := &cobra.Command{
		Use:           "oscilab",
		Short:         "harmonic oscillator integration lab",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate one model with one method",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&integratorName, "integrator", "rk4", "integrator (euler|rk4)")

	compareCmd := &cobra.Command{
		Use:   "compare [model]",
		Short: "run euler, rk4 and the reference solver on one grid",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCompare,
	}
	addRunFlags(compareCmd)
	compareCmd.Flags().Float64Var(&refTol, "ref-tol", config.DefaultRefTol, "reference solver tolerance")

	energyCmd := &cobra.Command{
		Use:   "energy [model]",
		Short: "kinetic/potential/total energy of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnergy,
	}
	addRunFlags(energyCmd)
	energyCmd.Flags().StringVar(&integratorName, "integrator", "rk4", "integrator (euler|rk4)")
	energyCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "oscillator mass")

	exportCmd := &cobra.Command{
		Use:   "export-json [model]",
		Short: "write a run's times, states and energies as JSON to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExport,
	}
	addRunFlags(exportCmd)
	exportCmd.Flags().StringVar(&integratorName, "integrator", "rk4", "integrator (euler|rk4)")
	exportCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "oscillator mass")

	rootCmd.AddCommand(runCmd, compareCmd, energyCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&tStart, "t-start", 0, "span start")
	cmd.Flags().Float64Var(&tEnd, "t-end", config.DefaultDuration, "span end")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of grid points")
	cmd.Flags().Float64Var(&x0Flag, "x0", 1.0, "initial displacement")
	cmd.Flags().Float64Var(&v0Flag, "v0", 0.0, "initial velocity")
	cmd.Flags().Float64Var(&omega, "omega", 0, "natural angular frequency (0 = config default)")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "damping coefficient (damped_driven)")
	cmd.Flags().Float64Var(&f0, "f0", config.DefaultF0, "forcing amplitude (damped_driven)")
	cmd.Flags().Float64Var(&omegaD, "omega-d", 0, "driving angular frequency (0 = 1.5*omega)")
	cmd.Flags().Float64Var(&bound, "bound", config.DefaultStateBound, "instability state bound")
	cmd.Flags().BoolVar(&showPlot, "plot", false, "render ascii plot")
}

// buildConfig merges defaults, an optional config file and explicit
// flags, in that order: flags override the file, the file overrides
// the defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Model = args[0]
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integratorName
	}
	if cmd.Flags().Changed("t-start") {
		cfg.Start = tStart
	}
	if cmd.Flags().Changed("t-end") {
		cfg.End = tEnd
	}
	if cmd.Flags().Changed("samples") {
		cfg.Samples = samples
	}
	if cmd.Flags().Changed("x0") {
		cfg.X0 = x0Flag
	}
	if cmd.Flags().Changed("v0") {
		cfg.V0 = v0Flag
	}
	if cmd.Flags().Changed("omega") {
		cfg.Omega = omega
		if !cmd.Flags().Changed("omega-d") {
			cfg.OmegaD = 1.5 * omega
		}
	}
	if cmd.Flags().Changed("gamma") {
		cfg.Gamma = gamma
	}
	if cmd.Flags().Changed("f0") {
		cfg.F0 = f0
	}
	if cmd.Flags().Changed("omega-d") {
		cfg.OmegaD = omegaD
	}
	if cmd.Flags().Changed("bound") {
		cfg.StateBound = bound
	}
	if cmd.Flags().Changed("ref-tol") {
		cfg.RefTol = refTol
	}
	if cmd.Flags().Changed("mass") {
		cfg.Mass = mass
	}
	return cfg, nil
}

func assemble(cfg *config.Config) (model.Model, osc.Grid, osc.State, error) {
	m, err := cfg.BuildModel()
	if err != nil {
		return nil, osc.Grid{}, nil, err
	}
	g, err := cfg.BuildGrid()
	if err != nil {
		return nil, osc.Grid{}, nil, err
	}
	return m, g, cfg.InitState(), nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	m, g, x0, err := assemble(cfg)
	if err != nil {
		return err
	}
	st, err := integrator.New(cfg.Integrator)
	if err != nil {
		return err
	}

	slog.Info("integrating", "model", m.Name(), "integrator", st.Name(),
		"samples", g.Len(), "dt", g.Dt())

	tr, err := integrator.Integrate(st, m, g, x0, integrator.Config{StateBound: cfg.StateBound})
	if err != nil {
		return err
	}

	last := tr.States[tr.Len()-1]
	fmt.Println(viz.Title.Render(fmt.Sprintf("%s / %s", m.Name(), st.Name())))
	fmt.Printf("%s %d\n", viz.Label.Render("steps:"), tr.Len()-1)
	fmt.Printf("%s x=%.6f v=%.6f\n", viz.Label.Render("final state:"), last[0], last[1])

	if h, ok := m.(*model.Harmonic); ok {
		series, err := energy.Analyze(tr, cfg.Mass, h.Omega)
		if err != nil {
			return err
		}
		fmt.Printf("%s %.3e\n", viz.Label.Render("energy drift:"), energy.Drift(series))
	}
	if notice := viz.UnstableNotice(tr); notice != "" {
		fmt.Println(notice)
	}
	if showPlot {
		fmt.Println()
		fmt.Println(viz.Displacement(tr, fmt.Sprintf("displacement (%s)", st.Name())))
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	m, g, x0, err := assemble(cfg)
	if err != nil {
		return err
	}

	ref := reference.NewDormandPrince()
	ref.Tol = cfg.RefTol
	ref.StateBound = cfg.StateBound

	slog.Info("comparing methods", "model", m.Name(), "samples", g.Len(), "dt", g.Dt())

	res, err := compare.Compare(m, cfg.Start, cfg.End, cfg.Samples, x0,
		integrator.Config{StateBound: cfg.StateBound}, ref)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render("method comparison: " + m.Name()))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "method\tx(t_end)\tmax |Δx| vs ref\tenergy drift\tunstable")
	for _, row := range []struct {
		name string
		tr   *osc.Trajectory
	}{
		{"euler", res.Euler},
		{"rk4", res.RK4},
		{"reference", res.Reference},
	} {
		last := row.tr.States[row.tr.Len()-1]
		drift := "-"
		if h, ok := m.(*model.Harmonic); ok {
			if s, err := energy.Analyze(row.tr, cfg.Mass, h.Omega); err == nil {
				drift = fmt.Sprintf("%.3e", energy.Drift(s))
			}
		}
		fmt.Fprintf(w, "%s\t%.6f\t%.3e\t%s\t%v\n",
			row.name, last[0],
			compare.MaxAbsDiff(row.tr, res.Reference, compare.Displacement),
			drift, row.tr.Unstable)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if h, ok := m.(*model.Harmonic); ok {
		analytic := func(t float64) float64 { return h.Analytic(cfg.X0, cfg.V0, t) }
		fmt.Printf("%s euler %.3e, rk4 %.3e, reference %.3e\n",
			viz.Label.Render("endpoint error vs analytic:"),
			compare.EndpointError(res.Euler, analytic),
			compare.EndpointError(res.RK4, analytic),
			compare.EndpointError(res.Reference, analytic))
	}

	for _, row := range []*osc.Trajectory{res.Euler, res.RK4, res.Reference} {
		if notice := viz.UnstableNotice(row); notice != "" {
			fmt.Println(notice)
		}
	}

	if showPlot {
		fmt.Println()
		fmt.Println(viz.Displacement(res.Euler, "euler"))
		fmt.Println()
		fmt.Println(viz.Displacement(res.RK4, "rk4"))
		fmt.Println()
		fmt.Println(viz.Displacement(res.Reference, "reference"))
	}
	return nil
}

func runEnergy(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	m, g, x0, err := assemble(cfg)
	if err != nil {
		return err
	}
	st, err := integrator.New(cfg.Integrator)
	if err != nil {
		return err
	}

	tr, err := integrator.Integrate(st, m, g, x0, integrator.Config{StateBound: cfg.StateBound})
	if err != nil {
		return err
	}
	series, err := energy.Analyze(tr, cfg.Mass, cfg.Omega)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("energy: %s / %s", m.Name(), st.Name())))
	fmt.Printf("%s %.6f\n", viz.Label.Render("initial total:"), series.Total[0])
	fmt.Printf("%s %.6f\n", viz.Label.Render("final total:"), series.Total[series.Len()-1])
	fmt.Printf("%s %.3e\n", viz.Label.Render("max drift:"), energy.Drift(series))
	if m.Name() == "damped_driven" {
		fmt.Println(viz.Subtle.Render("note: damping and drive exchange energy; no conservation expected"))
	}
	if notice := viz.UnstableNotice(tr); notice != "" {
		fmt.Println(notice)
	}
	if showPlot {
		fmt.Println()
		fmt.Println(viz.Energies(series))
	}
	return nil
}

type exportData struct {
	Model      string      `json:"model"`
	Integrator string      `json:"integrator"`
	Dt         float64     `json:"dt"`
	Times      []float64   `json:"times"`
	States     [][]float64 `json:"states"`
	Kinetic    []float64   `json:"kinetic"`
	Potential  []float64   `json:"potential"`
	Total      []float64   `json:"total"`
	Unstable   bool        `json:"unstable"`
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	m, g, x0, err := assemble(cfg)
	if err != nil {
		return err
	}
	st, err := integrator.New(cfg.Integrator)
	if err != nil {
		return err
	}

	tr, err := integrator.Integrate(st, m, g, x0, integrator.Config{StateBound: cfg.StateBound})
	if err != nil {
		return err
	}
	series, err := energy.Analyze(tr, cfg.Mass, cfg.Omega)
	if err != nil {
		return err
	}

	data := exportData{
		Model:      m.Name(),
		Integrator: st.Name(),
		Dt:         g.Dt(),
		Times:      g.Times(),
		States:     make([][]float64, tr.Len()),
		Kinetic:    series.Kinetic,
		Potential:  series.Potential,
		Total:      series.Total,
		Unstable:   tr.Unstable,
	}
	for i, s := range tr.States {
		data.States[i] = s
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
