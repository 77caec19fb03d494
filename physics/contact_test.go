package physics

import (
	"math/rand"
	"testing"

	"github.com/TFMV/tetherlayout/models"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestGridDetectorEdgeTriggered(t *testing.T) {
	params := models.DefaultParams()
	g := testGraph(params, r2.Vec{}, r2.Vec{X: 10})
	d := NewGridDetector()

	events := d.Detect(g)
	if len(events) != 1 || events[0] != (ContactEvent{A: 0, B: 1}) {
		t.Fatalf("expected one new contact (0,1), got %v", events)
	}

	if events := d.Detect(g); len(events) != 0 {
		t.Errorf("sustained contact was reported again: %v", events)
	}
	if d.Active() != 1 {
		t.Errorf("expected 1 active pair, got %d", d.Active())
	}

	g.Nodes[1].Position = r2.Vec{X: 500}
	if events := d.Detect(g); len(events) != 0 {
		t.Errorf("separated pair reported: %v", events)
	}
	if d.Active() != 0 {
		t.Errorf("expected no active pairs, got %d", d.Active())
	}

	g.Nodes[1].Position = r2.Vec{X: 20}
	if events := d.Detect(g); len(events) != 1 {
		t.Errorf("expected contact to be reported again after separating, got %v", events)
	}
}

func TestGridDetectorThreshold(t *testing.T) {
	params := models.DefaultParams()
	reach := 2 * params.InteractionRadius

	tests := []struct {
		name string
		gap  float64
		want int
	}{
		{"inside reach", reach - 0.01, 1},
		{"exactly touching", reach, 0},
		{"outside reach", reach + 0.01, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGraph(params, r2.Vec{}, r2.Vec{Y: tt.gap})
			if got := len(NewGridDetector().Detect(g)); got != tt.want {
				t.Errorf("expected %d events, got %d", tt.want, got)
			}
		})
	}
}

// Brute force comparison over a dense random cloud
func TestGridDetectorMatchesBruteForce(t *testing.T) {
	params := models.DefaultParams()
	rng := rand.New(rand.NewSource(11))
	g := models.NewGraph("cloud")
	for i := 0; i < 300; i++ {
		p := r2.Vec{X: rng.Float64()*1000 - 500, Y: rng.Float64()*1000 - 500}
		g.AddNode(models.NewNode(p, params))
	}

	want := make(map[ContactEvent]bool)
	for i := range g.Nodes {
		for j := i + 1; j < len(g.Nodes); j++ {
			if touching(g, models.Handle(i), models.Handle(j)) {
				want[ContactEvent{A: models.Handle(i), B: models.Handle(j)}] = true
			}
		}
	}

	events := NewGridDetector().Detect(g)
	if len(events) != len(want) {
		t.Fatalf("expected %d contacts, got %d", len(want), len(events))
	}
	for i, ev := range events {
		if !want[ev] {
			t.Errorf("unexpected contact %v", ev)
		}
		if ev.A >= ev.B {
			t.Errorf("contact %v is not ordered", ev)
		}
		if i > 0 {
			prev := events[i-1]
			if prev.A > ev.A || (prev.A == ev.A && prev.B >= ev.B) {
				t.Errorf("events not sorted or duplicated at %d: %v then %v", i, prev, ev)
			}
		}
	}
}

func TestGridDetectorEmpty(t *testing.T) {
	params := models.DefaultParams()
	d := NewGridDetector()
	if events := d.Detect(models.NewGraph("empty")); len(events) != 0 {
		t.Errorf("expected no events, got %v", events)
	}
	if events := d.Detect(testGraph(params, r2.Vec{})); len(events) != 0 {
		t.Errorf("expected no events for a single node, got %v", events)
	}
}
