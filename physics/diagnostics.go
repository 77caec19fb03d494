package physics

import (
	"github.com/TFMV/tetherlayout/models"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// Diagnostics summarises how settled a layout is
type Diagnostics struct {
	KineticEnergy    float64 `json:"kinetic_energy"`
	MeanEdgeLength   float64 `json:"mean_edge_length"`
	EdgeLengthStdDev float64 `json:"edge_length_stddev"`
}

// Diagnose computes diagnostics for g
func Diagnose(g *models.Graph) Diagnostics {
	var diag Diagnostics
	for _, n := range g.Nodes {
		diag.KineticEnergy += 0.5 * n.Mass * r2.Norm2(n.Velocity)
	}
	if len(g.Edges) == 0 {
		return diag
	}
	lengths := make([]float64, len(g.Edges))
	for i, e := range g.Edges {
		lengths[i] = r2.Norm(r2.Sub(g.Nodes[e.A].Position, g.Nodes[e.B].Position))
	}
	if len(lengths) == 1 {
		diag.MeanEdgeLength = lengths[0]
		return diag
	}
	diag.MeanEdgeLength, diag.EdgeLengthStdDev = stat.MeanStdDev(lengths, nil)
	return diag
}
