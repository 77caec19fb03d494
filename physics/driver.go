package physics

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/TFMV/tetherlayout/models"
)

// Stats counts driver activity for diagnostics
type Stats struct {
	Ticks    uint64 // completed ticks
	Phases   uint64 // incremented once by detect/compute and once by apply
	Contacts int    // contact events in the last tick
	Impulses int    // velocity deltas applied in the last tick
}

// Driver owns a graph and steps it: detect contacts, compute repulsion,
// apply impulses, then integrate. It runs until the caller stops calling
// Tick; there is no convergence test.
type Driver struct {
	mu         sync.Mutex
	graph      *models.Graph
	params     models.Params
	contacts   ContactSource
	repulsion  *Repulsion
	integrator Integrator
	queue      ImpulseQueue
	stats      Stats
	debug      bool
}

// Option customises a Driver
type Option func(*Driver)

// WithContactSource replaces the grid detector
func WithContactSource(src ContactSource) Option {
	return func(d *Driver) { d.contacts = src }
}

// WithIntegrator replaces the XPBD solver
func WithIntegrator(in Integrator) Option {
	return func(d *Driver) { d.integrator = in }
}

// WithRand sets the random source used for coincident contacts
func WithRand(rng *rand.Rand) Option {
	return func(d *Driver) { d.repulsion.rng = rng }
}

// WithDebug logs every contact pair
func WithDebug(debug bool) Option {
	return func(d *Driver) { d.debug = debug }
}

// NewDriver creates a driver for g
func NewDriver(g *models.Graph, params models.Params, opts ...Option) *Driver {
	d := &Driver{
		graph:      g,
		params:     params,
		contacts:   NewGridDetector(),
		repulsion:  NewRepulsion(params.IdealLength, NewRand(params.Seed)),
		integrator: NewSolver(params.Substeps),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewRand returns a random source for seed, or a time based one when seed is 0
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// GetName returns the name of the layout algorithm
func (d *Driver) GetName() string {
	return "Contact Spring Layout"
}

// Tick runs one simulation step
func (d *Driver) Tick() {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Detect and compute
	d.stats.Phases++
	events := d.contacts.Detect(d.graph)
	if d.debug {
		for _, ev := range events {
			log.Printf("contact started: %d <-> %d", ev.A, ev.B)
		}
	}
	d.repulsion.Compute(d.graph, events, &d.queue)

	// Apply
	d.stats.Phases++
	impulses := d.queue.Len()
	d.queue.ApplyTo(d.graph)

	// Integrate
	d.integrator.Integrate(d.graph, d.params.TimeStep)
	for i := range d.graph.Nodes {
		d.graph.Nodes[i].Pinned = false
	}

	d.stats.Ticks++
	d.stats.Contacts = len(events)
	d.stats.Impulses = impulses
}

// Run ticks n times
func (d *Driver) Run(n int) {
	for i := 0; i < n; i++ {
		d.Tick()
	}
}

// Stats returns the current counters
func (d *Driver) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// Params returns the parameters the driver was built with
func (d *Driver) Params() models.Params {
	return d.params
}

// Snapshot returns a copy of the graph safe to read while the driver runs
func (d *Driver) Snapshot() *models.Graph {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.graph.Clone()
}
