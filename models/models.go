// Package models provides data structures for the tetherlayout application.
// It defines the node/edge arena the simulation mutates and the parameters
// every component reads.
package models

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// Handle is a stable index into a Graph's node arena
type Handle int

// Node is a simulated body in the layout
type Node struct {
	Handle   Handle  `json:"handle"`
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Position r2.Vec  `json:"position"`
	Velocity r2.Vec  `json:"velocity"`
	Mass     float64 `json:"mass"`
	Radius   float64 `json:"radius"`  // interaction radius used for contact detection
	Size     float64 `json:"size"`    // visual radius
	Damping  float64 `json:"damping"` // linear damping coefficient, 1/cooling_factor
	// Pinned marks a node whose position was written by an override since
	// the last tick. Integration leaves its position alone.
	Pinned bool `json:"pinned"`
}

// Edge is a spring constraint between two nodes
type Edge struct {
	A          Handle  `json:"a"`
	B          Handle  `json:"b"`
	RestLength float64 `json:"rest_length"`
	Compliance float64 `json:"compliance"` // inverse stiffness, 0 is rigid
}

// Graph is the node/edge arena. Nodes are addressed by Handle, which is
// the node's index in Nodes.
type Graph struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nodes     []Node    `json:"nodes"`
	Edges     []Edge    `json:"edges"`
	CreatedAt time.Time `json:"created_at"`
}

// Params holds the simulation parameters. They are immutable for a run.
type Params struct {
	IdealLength       float64 `json:"ideal_length" yaml:"ideal_length" toml:"ideal_length"`
	CoolingFactor     float64 `json:"cooling_factor" yaml:"cooling_factor" toml:"cooling_factor"`
	NodeMass          float64 `json:"node_mass" yaml:"node_mass" toml:"node_mass"`
	Compliance        float64 `json:"compliance" yaml:"compliance" toml:"compliance"`
	NodeTotal         int     `json:"node_total" yaml:"node_total" toml:"node_total"`
	InteractionRadius float64 `json:"interaction_radius" yaml:"interaction_radius" toml:"interaction_radius"`

	PlacementRadius float64 `json:"placement_radius" yaml:"placement_radius" toml:"placement_radius"`
	NodeSize        float64 `json:"node_size" yaml:"node_size" toml:"node_size"`
	TimeStep        float64 `json:"time_step" yaml:"time_step" toml:"time_step"`
	Substeps        int     `json:"substeps" yaml:"substeps" toml:"substeps"`
	Seed            int64   `json:"seed" yaml:"seed" toml:"seed"` // 0 picks a time based seed
}
