package models

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func newTestGraph(positions ...r2.Vec) *Graph {
	g := NewGraph("test")
	for _, p := range positions {
		g.AddNode(NewNode(p, DefaultParams()))
	}
	return g
}

func TestNewNode(t *testing.T) {
	params := DefaultParams()
	n := NewNode(r2.Vec{X: 1, Y: 2}, params)

	if n.ID == "" || n.Label != n.ID[:8] {
		t.Errorf("expected label to be the id prefix, got id=%q label=%q", n.ID, n.Label)
	}
	if n.Mass != params.NodeMass || n.Radius != params.InteractionRadius {
		t.Errorf("unexpected physical properties: %+v", n)
	}
	if n.Damping != 5 {
		t.Errorf("expected damping 1/0.2 = 5, got %f", n.Damping)
	}
	if n.Velocity != (r2.Vec{}) {
		t.Errorf("expected zero velocity, got %v", n.Velocity)
	}
}

func TestAddNodeAssignsHandles(t *testing.T) {
	g := newTestGraph(r2.Vec{}, r2.Vec{X: 1}, r2.Vec{X: 2})
	for i, n := range g.Nodes {
		if n.Handle != Handle(i) {
			t.Errorf("node %d has handle %d", i, n.Handle)
		}
	}
}

func TestAddEdge(t *testing.T) {
	g := newTestGraph(r2.Vec{}, r2.Vec{X: 1})

	tests := []struct {
		name    string
		a, b    Handle
		wantErr string
	}{
		{"valid", 0, 1, ""},
		{"self loop", 1, 1, "itself"},
		{"missing source", 5, 1, "source 5"},
		{"missing target", 0, -1, "target -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.AddEdge(tt.a, tt.b, 50, 0)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	if len(g.Edges) != 1 {
		t.Errorf("expected only the valid edge to be added, got %d edges", len(g.Edges))
	}
}

func TestMustNodePanics(t *testing.T) {
	g := newTestGraph(r2.Vec{})
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unknown handle")
		}
		if !strings.Contains(r.(string), "node 3 does not exist") {
			t.Errorf("unexpected panic message: %v", r)
		}
	}()
	g.MustNode(3)
}

func TestClone(t *testing.T) {
	g := newTestGraph(r2.Vec{}, r2.Vec{X: 10})
	if err := g.AddEdge(0, 1, 50, 0); err != nil {
		t.Fatal(err)
	}

	c := g.Clone()
	c.Nodes[0].Position = r2.Vec{X: 99}
	c.Edges[0].RestLength = 1

	if g.Nodes[0].Position.X != 0 {
		t.Error("clone shares node storage with the original")
	}
	if g.Edges[0].RestLength != 50 {
		t.Error("clone shares edge storage with the original")
	}
	if c.ID != g.ID {
		t.Error("clone should keep the graph id")
	}
}

func TestNeighborsAndEdgesOf(t *testing.T) {
	g := newTestGraph(r2.Vec{}, r2.Vec{X: 1}, r2.Vec{X: 2})
	_ = g.AddEdge(0, 1, 50, 0)
	_ = g.AddEdge(0, 2, 50, 0)

	if got := g.Neighbors(0); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("unexpected neighbors of 0: %v", got)
	}
	if got := g.Neighbors(2); len(got) != 1 || got[0] != 0 {
		t.Errorf("unexpected neighbors of 2: %v", got)
	}
	if got := g.EdgesOf(1); len(got) != 1 {
		t.Errorf("expected 1 edge touching node 1, got %d", len(got))
	}

	far := g.FilterNodes(func(n *Node) bool { return n.Position.X > 0 })
	if len(far) != 2 {
		t.Errorf("expected 2 filtered nodes, got %v", far)
	}
}

func TestNodeAt(t *testing.T) {
	g := newTestGraph(r2.Vec{}, r2.Vec{X: 8}, r2.Vec{X: 100})

	t.Run("nearest within radius", func(t *testing.T) {
		h, ok := g.NodeAt(r2.Vec{X: 5}, 5)
		if !ok || h != 1 {
			t.Errorf("expected node 1, got %d (%v)", h, ok)
		}
	})

	t.Run("nothing in range", func(t *testing.T) {
		if h, ok := g.NodeAt(r2.Vec{X: 50}, 5); ok {
			t.Errorf("expected no node, got %d", h)
		}
	})
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	rigid := DefaultParams()
	rigid.Compliance = 0
	if err := rigid.Validate(); err != nil {
		t.Errorf("zero compliance should be allowed: %v", err)
	}

	bad := DefaultParams()
	bad.IdealLength = 0
	bad.CoolingFactor = -1
	bad.Substeps = 0
	err := bad.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"ideal_length", "cooling_factor", "substeps"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected error to mention %s, got %v", field, err)
		}
	}
}
