package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/verlet/internal/config"
	"github.com/san-kum/verlet/internal/export"
	"github.com/san-kum/verlet/internal/geom"
	"github.com/san-kum/verlet/internal/metrics"
	"github.com/san-kum/verlet/internal/store"
	"github.com/san-kum/verlet/internal/viz"
	"github.com/san-kum/verlet/internal/world"
)

var (
	dataDir    string
	configFile string
	duration   float64
	timeStep   float64
	frameRate  int
	plotBody   string
	outFile    string
	trailBody  string
	svgWidth   int
	svgHeight  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "verlet",
		Short: "2d verlet particle physics lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".verlet", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scene headless and store the frames",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scene file path (yaml)")
	runCmd.Flags().Float64Var(&duration, "time", 0, "override duration (seconds)")
	runCmd.Flags().Float64Var(&timeStep, "dt", 0, "override timestep (seconds)")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scene with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scene file path (yaml)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's body tracks",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotBody, "body", "", "body name to plot (default: first)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [preset]",
		Short: "run a scene and export an SVG snapshot or trail",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&configFile, "config", "", "scene file path (yaml)")
	exportSVGCmd.Flags().Float64Var(&duration, "time", 0, "override duration (seconds)")
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output path (default: <scene>.svg)")
	exportSVGCmd.Flags().StringVar(&trailBody, "trail", "", "export this body's trajectory instead of a snapshot")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				s := config.Presets[name]
				fmt.Printf("%-10s %d bodies, %d constraints, %.0fs\n",
					name, len(s.Bodies), len(s.Constraints), s.Duration)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveScene picks the scene from the preset argument or --config, with
// flag overrides applied on top.
func resolveScene(args []string) (*config.Scene, error) {
	var scene *config.Scene
	switch {
	case configFile != "":
		s, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		scene = s
	case len(args) == 1:
		p := config.GetPreset(args[0])
		if p == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], names)
		}
		// Copy so flag overrides never touch the preset table.
		clone := *p
		scene = &clone
	default:
		return nil, fmt.Errorf("need a preset name or --config")
	}

	if duration > 0 {
		scene.Duration = duration
	}
	if timeStep > 0 {
		scene.TimeStep = timeStep
	}
	return scene, nil
}

func defaultMetrics() []metrics.Metric {
	return []metrics.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewMaxPenetration(),
		metrics.NewSettled(0.1),
	}
}

func runScene(cmd *cobra.Command, args []string) error {
	scene, err := resolveScene(args)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	w, bodies, err := scene.Build()
	if err != nil {
		return err
	}
	names := scene.BodyNames()
	ms := defaultMetrics()

	fmt.Printf("running %s...\n", scene.Name)

	steps := int(scene.Duration / scene.TimeStep)
	frames := make([][]float64, 0, steps)
	for i := 0; i < steps; i++ {
		w.Step()
		for _, m := range ms {
			m.Observe(w, float64(i+1)*scene.TimeStep)
		}
		frame := make([]float64, 0, len(names)*2)
		for _, name := range names {
			b := bodies[name]
			frame = append(frame, b.Pos.X, b.Pos.Y)
		}
		frames = append(frames, frame)
	}

	runID, err := st.Save(store.Run{
		Scene:     scene.Name,
		TimeStep:  scene.TimeStep,
		Duration:  scene.Duration,
		BodyNames: names,
		Metrics:   metrics.Collect(ms),
	}, frames)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", steps)
	fmt.Println("\nmetrics:")
	for _, m := range ms {
		fmt.Printf("  %s: %.6f\n", m.Name(), m.Value())
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	scene, err := resolveScene(args)
	if err != nil {
		return err
	}

	w, _, err := scene.Build()
	if err != nil {
		return err
	}

	factory := func() (*world.World, error) {
		fresh, _, err := scene.Build()
		return fresh, err
	}

	m := viz.NewModel(w, factory, scene.Name, frameRate)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tSTEPS\tBODIES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.TimeStep,
			run.Steps,
			len(run.BodyNames),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	bodyIdx := 0
	if plotBody != "" {
		bodyIdx = -1
		for i, name := range meta.BodyNames {
			if name == plotBody {
				bodyIdx = i
				break
			}
		}
		if bodyIdx == -1 {
			return fmt.Errorf("unknown body %q (have: %v)", plotBody, meta.BodyNames)
		}
	}
	if len(meta.BodyNames) == 0 {
		return fmt.Errorf("run has no bodies")
	}
	name := meta.BodyNames[bodyIdx]

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("body: %s\n\n", name)

	for axis, label := range []string{"x", "y"} {
		data := make([]float64, len(frames))
		col := bodyIdx*2 + axis
		for i, frame := range frames {
			if col < len(frame) {
				data[i] = frame[col]
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s %s vs time", name, label)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Println("metrics:")
	for mName, val := range meta.Metrics {
		fmt.Printf("  %s: %.6f\n", mName, val)
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	scene, err := resolveScene(args)
	if err != nil {
		return err
	}

	w, bodies, err := scene.Build()
	if err != nil {
		return err
	}

	var trail []geom.Vec2
	var tracked *world.Body
	if trailBody != "" {
		tracked = bodies[trailBody]
		if tracked == nil {
			return fmt.Errorf("unknown body %q (have: %v)", trailBody, scene.BodyNames())
		}
	}

	steps := int(scene.Duration / scene.TimeStep)
	for i := 0; i < steps; i++ {
		w.Step()
		if tracked != nil {
			trail = append(trail, tracked.Pos)
		}
	}

	var svg string
	if tracked != nil {
		svg = export.TrajectoryToSVG(trail, svgWidth, svgHeight, "#00ccff")
	} else {
		svg = export.WorldToSVG(w, viz.ViewFor(w), svgWidth, svgHeight)
	}
	if svg == "" {
		return fmt.Errorf("nothing to export")
	}

	path := outFile
	if path == "" {
		path = scene.Name + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
