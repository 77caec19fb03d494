package physics

import (
	"testing"

	"github.com/TFMV/tetherlayout/models"
	"gonum.org/v1/gonum/spatial/r2"
)

func springPair(compliance float64) (*models.Graph, models.Params) {
	params := models.DefaultParams()
	params.Compliance = compliance
	g := testGraph(params, r2.Vec{}, r2.Vec{X: 80})
	_ = g.AddEdge(0, 1, params.IdealLength, compliance)
	return g, params
}

func edgeLength(g *models.Graph, e models.Edge) float64 {
	return r2.Norm(r2.Sub(g.Nodes[e.A].Position, g.Nodes[e.B].Position))
}

func TestSolverRigidSpring(t *testing.T) {
	g, params := springPair(0)
	NewSolver(params.Substeps).Integrate(g, params.TimeStep)

	if got := edgeLength(g, g.Edges[0]); !almostEqual(got, 50, 1e-6) {
		t.Errorf("rigid spring should reach rest length in one step, got %f", got)
	}
	for _, n := range g.Nodes {
		if !almostEqual(r2.Norm(n.Velocity), 0, 1e-6) {
			t.Errorf("node %d should be at rest, velocity %v", n.Handle, n.Velocity)
		}
	}
	// Equal masses meet in the middle.
	if !almostEqual(g.Nodes[0].Position.X+g.Nodes[1].Position.X, 80, 1e-6) {
		t.Errorf("centre of mass moved: %v %v", g.Nodes[0].Position, g.Nodes[1].Position)
	}
}

func TestSolverComplianceSoftens(t *testing.T) {
	stiff, params := springPair(0.0001)
	soft, _ := springPair(0.01)

	NewSolver(params.Substeps).Integrate(stiff, params.TimeStep)
	NewSolver(params.Substeps).Integrate(soft, params.TimeStep)

	ls, lf := edgeLength(stiff, stiff.Edges[0]), edgeLength(soft, soft.Edges[0])
	if !(ls < lf && lf < 80) {
		t.Errorf("expected 50 <= stiff (%f) < soft (%f) < 80", ls, lf)
	}
}

func TestSolverSpringConverges(t *testing.T) {
	g, params := springPair(models.DefaultCompliance)
	s := NewSolver(params.Substeps)
	for k := 0; k < 600; k++ {
		s.Integrate(g, params.TimeStep)
	}
	if got := edgeLength(g, g.Edges[0]); !almostEqual(got, 50, 0.5) {
		t.Errorf("spring should settle near its rest length, got %f", got)
	}
}

func TestSolverDamping(t *testing.T) {
	params := models.DefaultParams()
	g := testGraph(params, r2.Vec{})
	g.Nodes[0].Velocity = r2.Vec{X: 100}

	s := NewSolver(params.Substeps)
	prev := 100.0
	for i := 0; i < 10; i++ {
		s.Integrate(g, params.TimeStep)
		speed := r2.Norm(g.Nodes[0].Velocity)
		if speed >= prev {
			t.Fatalf("step %d: speed %f did not decrease from %f", i, speed, prev)
		}
		prev = speed
	}
}

func TestSolverPinnedNode(t *testing.T) {
	g, params := springPair(0)
	g.Nodes[0].Pinned = true
	g.Nodes[0].Velocity = r2.Vec{X: 30}

	NewSolver(params.Substeps).Integrate(g, params.TimeStep)

	if g.Nodes[0].Position != (r2.Vec{}) {
		t.Errorf("pinned node moved to %v", g.Nodes[0].Position)
	}
	if g.Nodes[0].Velocity != (r2.Vec{}) {
		t.Errorf("pinned node kept velocity %v", g.Nodes[0].Velocity)
	}
	// The free end takes the whole correction.
	if !almostEqual(g.Nodes[1].Position.X, 50, 1e-6) {
		t.Errorf("free node should be pulled to 50, got %v", g.Nodes[1].Position)
	}
}

func TestSolverCoincidentEndpoints(t *testing.T) {
	params := models.DefaultParams()
	g := testGraph(params, r2.Vec{X: 1, Y: 1}, r2.Vec{X: 1, Y: 1})
	_ = g.AddEdge(0, 1, params.IdealLength, params.Compliance)

	NewSolver(params.Substeps).Integrate(g, params.TimeStep)
	for _, n := range g.Nodes {
		if n.Position != (r2.Vec{X: 1, Y: 1}) {
			t.Errorf("coincident node %d moved to %v", n.Handle, n.Position)
		}
	}
}
