package physics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/TFMV/tetherlayout/models"
	"gonum.org/v1/gonum/spatial/r2"
)

// RepulsiveImpulse returns the velocity impulses pushing a and b apart.
//
// The magnitude is idealLength²/|a-b|: inverse distance rather than
// inverse square, so the far field pushes harder than a Coulomb law would.
// When a and b coincide the direction is drawn uniformly from [-π, π] and
// the magnitude is idealLength². The impulse on b is always the exact
// negation of the impulse on a.
func RepulsiveImpulse(a, b r2.Vec, idealLength float64, rng *rand.Rand) (r2.Vec, r2.Vec) {
	k2 := idealLength * idealLength
	if a == b {
		angle := -math.Pi + rng.Float64()*2*math.Pi
		onA := r2.Scale(k2, r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)})
		return onA, r2.Scale(-1, onA)
	}
	diff := r2.Sub(a, b)
	dist := r2.Norm(diff)
	force := k2 / dist
	// diff/dist is (cos θ, sin θ) for θ = atan2(diff).
	onA := r2.Scale(force/dist, diff)
	return onA, r2.Scale(-1, onA)
}

// Repulsion turns contact events into queued velocity impulses
type Repulsion struct {
	IdealLength float64
	rng         *rand.Rand
}

// NewRepulsion creates a repulsion stage. rng picks directions for
// coincident nodes.
func NewRepulsion(idealLength float64, rng *rand.Rand) *Repulsion {
	return &Repulsion{IdealLength: idealLength, rng: rng}
}

// Compute queues one impulse per endpoint of every event. Positions are
// only read, so the order of events does not matter.
func (r *Repulsion) Compute(g *models.Graph, events []ContactEvent, queue *ImpulseQueue) {
	for _, ev := range events {
		a, ok := g.Node(ev.A)
		if !ok {
			panic(unknownNode("contact", ev.A, g))
		}
		b, ok := g.Node(ev.B)
		if !ok {
			panic(unknownNode("contact", ev.B, g))
		}
		onA, onB := RepulsiveImpulse(a.Position, b.Position, r.IdealLength, r.rng)
		queue.Push(VelocityDelta{Node: ev.A, Delta: onA}, VelocityDelta{Node: ev.B, Delta: onB})
	}
}

func unknownNode(source string, h models.Handle, g *models.Graph) string {
	return fmt.Sprintf("physics: %s references unknown node %d (graph has %d nodes)", source, h, len(g.Nodes))
}
