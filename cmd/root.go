package cmd

import (
	"fmt"
	"log"

	"github.com/TFMV/tetherlayout/config"
	"github.com/TFMV/tetherlayout/graph"
	"github.com/TFMV/tetherlayout/ingest"
	"github.com/TFMV/tetherlayout/models"
	"github.com/TFMV/tetherlayout/physics"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

var (
	configPath string
	debugMode  bool
	seedFile   string
	overrides  = models.DefaultParams()
)

var rootCmd = &cobra.Command{
	Use:           "tetherlayout",
	Short:         "tetherlayout: force-directed layout with springs and contact repulsion",
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode {
			log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds)
			log.Println("Debug mode enabled")
		} else {
			log.SetFlags(log.LstdFlags)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to a YAML or TOML config file")
	pf.BoolVar(&debugMode, "debug", false, "Enable debug logging")
	pf.StringVar(&seedFile, "seed-file", "", "Start from node positions saved by the json renderer")

	pf.Float64Var(&overrides.IdealLength, "ideal-length", models.DefaultIdealLength, "Spring rest length and repulsion scale")
	pf.Float64Var(&overrides.CoolingFactor, "cooling", models.DefaultCoolingFactor, "Cooling factor (damping is 1/cooling)")
	pf.Float64Var(&overrides.NodeMass, "mass", models.DefaultNodeMass, "Node mass")
	pf.Float64Var(&overrides.Compliance, "compliance", models.DefaultCompliance, "Spring compliance (0 is rigid)")
	pf.IntVar(&overrides.NodeTotal, "nodes", models.DefaultNodeTotal, "Number of nodes")
	pf.Float64Var(&overrides.InteractionRadius, "radius", models.DefaultInteractionRadius, "Node interaction radius")
	pf.Int64Var(&overrides.Seed, "seed", 0, "Random seed (0 picks one from the clock)")

	rootCmd.AddCommand(runCmd(), viewCmd(), serveCmd())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file and applies any flags set on cmd
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	sim := &cfg.Simulation
	if flags.Changed("ideal-length") {
		sim.IdealLength = overrides.IdealLength
	}
	if flags.Changed("cooling") {
		sim.CoolingFactor = overrides.CoolingFactor
	}
	if flags.Changed("mass") {
		sim.NodeMass = overrides.NodeMass
	}
	if flags.Changed("compliance") {
		sim.Compliance = overrides.Compliance
	}
	if flags.Changed("nodes") {
		sim.NodeTotal = overrides.NodeTotal
	}
	if flags.Changed("radius") {
		sim.InteractionRadius = overrides.InteractionRadius
	}
	if flags.Changed("seed") {
		sim.Seed = overrides.Seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// buildDriver generates the topology, from the seed file when one is given
func buildDriver(params models.Params) (*physics.Driver, error) {
	var g *models.Graph
	if seedFile != "" {
		seed, err := ingest.LoadFile(seedFile)
		if err != nil {
			return nil, err
		}
		params.NodeTotal = len(seed.Positions)
		g = graph.GenerateAt(params, seed.Positions)
		log.Printf("Loaded %d node positions from %s", len(seed.Positions), seedFile)
	} else {
		g = graph.Generate(params, physics.NewRand(params.Seed))
	}

	log.Printf("Generated %d nodes and %d springs", len(g.Nodes), len(g.Edges))
	return physics.NewDriver(g, params, physics.WithDebug(debugMode)), nil
}
