// Package physics runs the layout relaxation: contact-triggered repulsion,
// spring constraints and velocity damping, stepped one tick at a time.
package physics

import (
	"github.com/TFMV/tetherlayout/models"
	"gonum.org/v1/gonum/spatial/r2"
)

// ContactEvent reports that the interaction discs of A and B began
// overlapping since the previous detection. A < B.
type ContactEvent struct {
	A, B models.Handle
}

// VelocityDelta is a pending additive change to a node's velocity
type VelocityDelta struct {
	Node  models.Handle
	Delta r2.Vec
}

// ContactSource reports newly overlapping node pairs once per tick
type ContactSource interface {
	Detect(g *models.Graph) []ContactEvent
}

// Integrator advances positions and velocities by one step of dt,
// solving the graph's spring constraints and applying damping.
type Integrator interface {
	Integrate(g *models.Graph, dt float64)
}

// ImpulseQueue collects velocity deltas between the compute and apply
// phases of a tick.
type ImpulseQueue struct {
	deltas []VelocityDelta
}

// Push queues deltas
func (q *ImpulseQueue) Push(deltas ...VelocityDelta) {
	q.deltas = append(q.deltas, deltas...)
}

// Len returns the number of queued deltas
func (q *ImpulseQueue) Len() int {
	return len(q.deltas)
}

// Drain hands every queued delta to fn in order and empties the queue
func (q *ImpulseQueue) Drain(fn func(VelocityDelta)) {
	for _, d := range q.deltas {
		fn(d)
	}
	q.deltas = q.deltas[:0]
}

// ApplyTo adds every queued delta to its node's velocity and empties the
// queue. Deltas for the same node accumulate.
func (q *ImpulseQueue) ApplyTo(g *models.Graph) {
	q.Drain(func(d VelocityDelta) {
		n, ok := g.Node(d.Node)
		if !ok {
			panic(unknownNode("impulse", d.Node, g))
		}
		n.Velocity = r2.Add(n.Velocity, d.Delta)
	})
}
