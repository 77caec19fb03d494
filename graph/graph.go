// Package graph generates the layout topology: node placement and the
// triple pairing that wires nodes into springs.
package graph

import (
	"math"
	"math/rand"

	"github.com/TFMV/tetherlayout/models"
	"gonum.org/v1/gonum/spatial/r2"
)

// Generate places params.NodeTotal nodes at random inside a disc of
// params.PlacementRadius and connects them by triples.
func Generate(params models.Params, rng *rand.Rand) *models.Graph {
	positions := make([]r2.Vec, params.NodeTotal)
	for i := range positions {
		positions[i] = RandomInDisc(rng, params.PlacementRadius)
	}
	return GenerateAt(params, positions)
}

// GenerateAt builds the graph with one node per position, in order.
// params.NodeTotal is ignored in favour of len(positions).
func GenerateAt(params models.Params, positions []r2.Vec) *models.Graph {
	g := models.NewGraph("Tether Layout")
	for _, pos := range positions {
		g.AddNode(models.NewNode(pos, params))
	}
	PairTriples(g, params)
	return g
}

// RandomInDisc returns a point at a uniform angle in [-π, π] and a uniform
// distance in [0, radius) from the origin.
func RandomInDisc(rng *rand.Rand, radius float64) r2.Vec {
	angle := -math.Pi + rng.Float64()*2*math.Pi
	distance := rng.Float64() * radius
	return r2.Scale(distance, r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)})
}

// PairTriples walks the nodes in handle order in groups of three (x, n1, n2)
// and adds the edges (x, n1) and (x, n2). A trailing group of fewer than
// three nodes adds nothing, so a graph of N nodes gets 2*floor(N/3) edges.
func PairTriples(g *models.Graph, params models.Params) {
	for i := 0; i+2 < len(g.Nodes); i += 3 {
		x := g.Nodes[i].Handle
		n1 := g.Nodes[i+1].Handle
		n2 := g.Nodes[i+2].Handle
		// Handles come straight from the arena and are distinct, so these
		// cannot fail.
		_ = g.AddEdge(x, n1, params.IdealLength, params.Compliance)
		_ = g.AddEdge(x, n2, params.IdealLength, params.Compliance)
	}
}
