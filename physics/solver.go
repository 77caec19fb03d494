package physics

import (
	"github.com/TFMV/tetherlayout/models"
	"gonum.org/v1/gonum/spatial/r2"
)

// Solver integrates motion with substepped XPBD. Each edge is a distance
// constraint whose compliance sets how far a single solve moves it toward
// its rest length. Linear damping is applied once per step.
type Solver struct {
	substeps int
	prev     []r2.Vec
}

// NewSolver creates a solver splitting every step into substeps
func NewSolver(substeps int) *Solver {
	return &Solver{substeps: max(substeps, 1)}
}

// Integrate advances g by dt
func (s *Solver) Integrate(g *models.Graph, dt float64) {
	if len(g.Nodes) == 0 {
		return
	}
	if cap(s.prev) < len(g.Nodes) {
		s.prev = make([]r2.Vec, len(g.Nodes))
	}
	s.prev = s.prev[:len(g.Nodes)]

	h := dt / float64(s.substeps)
	for k := 0; k < s.substeps; k++ {
		for i := range g.Nodes {
			n := &g.Nodes[i]
			s.prev[i] = n.Position
			if !n.Pinned {
				n.Position = r2.Add(n.Position, r2.Scale(h, n.Velocity))
			}
		}
		for _, e := range g.Edges {
			solveDistance(g, e, h)
		}
		for i := range g.Nodes {
			n := &g.Nodes[i]
			if !n.Pinned {
				n.Velocity = r2.Scale(1/h, r2.Sub(n.Position, s.prev[i]))
			}
		}
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Pinned {
			n.Velocity = r2.Vec{}
			continue
		}
		n.Velocity = r2.Scale(1/(1+dt*n.Damping), n.Velocity)
	}
}

// solveDistance moves the endpoints of e toward its rest length
func solveDistance(g *models.Graph, e models.Edge, h float64) {
	a, b := &g.Nodes[e.A], &g.Nodes[e.B]
	wa, wb := inverseMass(a), inverseMass(b)
	alpha := e.Compliance / (h * h)
	if wa+wb+alpha == 0 {
		return
	}

	diff := r2.Sub(a.Position, b.Position)
	dist := r2.Norm(diff)
	if dist == 0 {
		return
	}
	n := r2.Scale(1/dist, diff)
	lambda := -(dist - e.RestLength) / (wa + wb + alpha)

	a.Position = r2.Add(a.Position, r2.Scale(wa*lambda, n))
	b.Position = r2.Sub(b.Position, r2.Scale(wb*lambda, n))
}

func inverseMass(n *models.Node) float64 {
	if n.Pinned || n.Mass <= 0 {
		return 0
	}
	return 1 / n.Mass
}
