package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TFMV/tetherlayout/physics"
	"github.com/TFMV/tetherlayout/render"
	"github.com/spf13/cobra"
)

var defaultOutputs = map[string]string{
	"svg":   "layout.svg",
	"ascii": "layout.txt",
	"json":  "layout.json",
	"dot":   "layout.dot",
}

func runCmd() *cobra.Command {
	var (
		format  string
		output  string
		ticks   int
		noise   float64
		width   float64
		height  float64
		labels  bool
		noStamp bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate headless for a number of ticks and write the layout",
		Long: `Generate a layout graph, advance it a fixed number of ticks and
render the final state.

  tetherlayout run                          # 600 ticks to layout.svg
  tetherlayout run --format json -o a.json  # save positions
  tetherlayout run --seed-file a.json       # continue from saved positions
  tetherlayout run --format dot --nodes 90`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				bad.Printf("  %v\n", err)
				return err
			}

			rc := cfg.Render
			flags := cmd.Flags()
			if flags.Changed("format") {
				rc.Format = format
			}
			if flags.Changed("output") {
				rc.Output = output
			}
			if flags.Changed("ticks") {
				rc.Ticks = ticks
			}
			if flags.Changed("noise") {
				rc.NoiseIntensity = noise
			}
			if flags.Changed("width") {
				rc.Width = width
			}
			if flags.Changed("height") {
				rc.Height = height
			}
			if flags.Changed("labels") {
				rc.Labels = labels
			}
			if noStamp {
				rc.Timestamp = false
			}
			if _, err := render.GetRenderer(rc.Format); err != nil {
				bad.Printf("  %v\n", err)
				return err
			}
			if rc.Output == "" {
				rc.Output = defaultOutputs[rc.Format]
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			driver, err := buildDriver(cfg.Simulation)
			if err != nil {
				bad.Printf("  %v\n", err)
				return err
			}

			start := time.Now()
			if err := simulate(ctx, driver, rc.Ticks); err != nil {
				warn.Printf("  Interrupted after %d ticks, rendering partial layout\n", driver.Stats().Ticks)
			}
			elapsed := time.Since(start)

			options := render.NewDefaultOptions(rc.Format)
			options.Width = rc.Width
			options.Height = rc.Height
			options.NoiseIntensity = rc.NoiseIntensity
			options.NoiseSeed = cfg.Simulation.Seed
			options.Timestamp = rc.Timestamp
			options.ShowLabels = rc.Labels

			out, err := render.Generate(driver, options)
			if err != nil {
				bad.Printf("  Rendering failed: %v\n", err)
				return fmt.Errorf("rendering failed: %w", err)
			}
			if err := os.WriteFile(rc.Output, out, 0644); err != nil {
				bad.Printf("  Failed to write %s: %v\n", rc.Output, err)
				return fmt.Errorf("failed to write output file: %w", err)
			}

			printSummary(driver, elapsed, rc.Output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "svg", "Output format: svg, ascii, json, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to layout.<ext>)")
	cmd.Flags().IntVar(&ticks, "ticks", 600, "Number of simulation ticks")
	cmd.Flags().Float64Var(&noise, "noise", 0, "Noise distortion intensity applied to the rendered copy (0-1)")
	cmd.Flags().Float64Var(&width, "width", 800, "Width of the visualization")
	cmd.Flags().Float64Var(&height, "height", 600, "Height of the visualization")
	cmd.Flags().BoolVar(&labels, "labels", false, "Draw node labels")
	cmd.Flags().BoolVar(&noStamp, "no-timestamp", false, "Leave the timestamp out of the SVG")

	return cmd
}

// simulate ticks driver n times, stopping early when ctx is cancelled
func simulate(ctx context.Context, driver *physics.Driver, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		driver.Tick()
		if debugMode && (i+1)%100 == 0 {
			st := driver.Stats()
			log.Printf("tick %d: %d contacts, %d impulses", st.Ticks, st.Contacts, st.Impulses)
		}
	}
	return nil
}

func printSummary(driver *physics.Driver, elapsed time.Duration, output string) {
	st := driver.Stats()
	diag := physics.Diagnose(driver.Snapshot())

	fmt.Println()
	row("Layout", "%s", driver.GetName())
	row("Ticks", "%d %s", st.Ticks, subtle.Sprintf("(%s)", elapsed.Round(time.Millisecond)))
	row("Kinetic energy", "%.2f", diag.KineticEnergy)
	row("Edge length", "%.2f %s", diag.MeanEdgeLength, subtle.Sprintf("± %.2f", diag.EdgeLengthStdDev))
	row("Output", "%s", output)
	fmt.Println()
}
