package physics

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/TFMV/tetherlayout/models"
	"gonum.org/v1/gonum/spatial/r2"
)

const epsilon = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func testGraph(params models.Params, positions ...r2.Vec) *models.Graph {
	g := models.NewGraph("test")
	for _, p := range positions {
		g.AddNode(models.NewNode(p, params))
	}
	return g
}

// staticContacts always reports the same events
type staticContacts []ContactEvent

func (s staticContacts) Detect(*models.Graph) []ContactEvent { return s }

func expectPanic(t *testing.T, contains string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", contains)
		}
		msg, _ := r.(string)
		if !strings.Contains(msg, contains) {
			t.Errorf("expected panic containing %q, got %v", contains, r)
		}
	}()
	fn()
}

func TestRepulsiveImpulse(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("separated nodes", func(t *testing.T) {
		onA, onB := RepulsiveImpulse(r2.Vec{}, r2.Vec{X: 10}, 50, rng)
		if onA != (r2.Vec{X: -250}) {
			t.Errorf("expected (-250, 0) on A, got %v", onA)
		}
		if onB != (r2.Vec{X: 250}) {
			t.Errorf("expected (250, 0) on B, got %v", onB)
		}
	})

	t.Run("opposite and inverse distance", func(t *testing.T) {
		a, b := r2.Vec{X: 3, Y: -7}, r2.Vec{X: -12, Y: 4}
		onA, onB := RepulsiveImpulse(a, b, 50, rng)
		if r2.Add(onA, onB) != (r2.Vec{}) {
			t.Errorf("impulses do not cancel: %v + %v", onA, onB)
		}
		dist := r2.Norm(r2.Sub(a, b))
		if !almostEqual(r2.Norm(onA), 2500/dist, 1e-9) {
			t.Errorf("expected magnitude %f, got %f", 2500/dist, r2.Norm(onA))
		}
		// A is pushed away from B.
		if r2.Dot(onA, r2.Sub(a, b)) <= 0 {
			t.Errorf("impulse %v does not point away from B", onA)
		}
	})

	t.Run("coincident nodes", func(t *testing.T) {
		p := r2.Vec{X: 5, Y: 5}
		onA, onB := RepulsiveImpulse(p, p, 50, rng)
		if !almostEqual(r2.Norm(onA), 2500, 1e-9) {
			t.Errorf("expected magnitude 2500, got %f", r2.Norm(onA))
		}
		if r2.Add(onA, onB) != (r2.Vec{}) {
			t.Errorf("impulses do not cancel: %v + %v", onA, onB)
		}
		for _, c := range []float64{onA.X, onA.Y} {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				t.Fatalf("non-finite impulse %v", onA)
			}
		}
	})
}

func TestRepulsionComputeUnknownNode(t *testing.T) {
	params := models.DefaultParams()
	g := testGraph(params, r2.Vec{}, r2.Vec{X: 1})
	r := NewRepulsion(params.IdealLength, rand.New(rand.NewSource(1)))
	var q ImpulseQueue

	expectPanic(t, "unknown node 7", func() {
		r.Compute(g, []ContactEvent{{A: 0, B: 7}}, &q)
	})
}

func TestImpulseQueueAccumulates(t *testing.T) {
	params := models.DefaultParams()
	g := testGraph(params, r2.Vec{}, r2.Vec{X: 100})
	g.Nodes[0].Velocity = r2.Vec{X: 1}

	var q ImpulseQueue
	q.Push(
		VelocityDelta{Node: 0, Delta: r2.Vec{X: 2, Y: 3}},
		VelocityDelta{Node: 0, Delta: r2.Vec{X: -1, Y: 1}},
		VelocityDelta{Node: 1, Delta: r2.Vec{Y: -4}},
	)
	if q.Len() != 3 {
		t.Fatalf("expected 3 queued deltas, got %d", q.Len())
	}
	q.ApplyTo(g)

	if g.Nodes[0].Velocity != (r2.Vec{X: 2, Y: 4}) {
		t.Errorf("expected accumulated velocity (2, 4), got %v", g.Nodes[0].Velocity)
	}
	if g.Nodes[1].Velocity != (r2.Vec{Y: -4}) {
		t.Errorf("expected velocity (0, -4), got %v", g.Nodes[1].Velocity)
	}
	if q.Len() != 0 {
		t.Errorf("queue should be empty after apply, has %d", q.Len())
	}
}
