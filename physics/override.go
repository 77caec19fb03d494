package physics

import (
	"github.com/TFMV/tetherlayout/models"
	"gonum.org/v1/gonum/spatial/r2"
)

// Override moves node h to pos, bypassing the simulation. When ok is false
// there is no target (the pointer left the surface) and nothing changes.
// The node's velocity is zeroed so it does not fly off when released, and
// the next tick leaves its position alone.
func (d *Driver) Override(h models.Handle, pos r2.Vec, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, exists := d.graph.Node(h)
	if !exists {
		panic(unknownNode("override", h, d.graph))
	}
	if !ok {
		return
	}
	n.Position = pos
	n.Velocity = r2.Vec{}
	n.Pinned = true
}

// Has reports whether h names a node of the driven graph
func (d *Driver) Has(h models.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.graph.Has(h)
}

// NodeAt returns the node drawn under pos, if any
func (d *Driver) NodeAt(pos r2.Vec) (models.Handle, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.graph.NodeAt(pos, d.params.NodeSize)
}

// Drag tracks the single node held by a pointer gesture
type Drag struct {
	driver *Driver
	node   models.Handle
	held   bool
}

// NewDrag creates a gesture tracker for d
func NewDrag(d *Driver) *Drag {
	return &Drag{driver: d}
}

// Begin grabs the node under pos. It reports whether a node was grabbed.
func (g *Drag) Begin(pos r2.Vec) bool {
	h, ok := g.driver.NodeAt(pos)
	g.node, g.held = h, ok
	return ok
}

// Move drags the held node to pos. ok is false when no world position is
// available for the pointer.
func (g *Drag) Move(pos r2.Vec, ok bool) {
	if !g.held {
		return
	}
	g.driver.Override(g.node, pos, ok)
}

// End releases the held node
func (g *Drag) End() {
	g.held = false
}

// Held returns the node being dragged
func (g *Drag) Held() (models.Handle, bool) {
	return g.node, g.held
}
