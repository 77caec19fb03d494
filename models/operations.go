package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// NewGraph creates an empty graph with a unique ID
func NewGraph(name string) *Graph {
	return &Graph{
		ID:        uuid.New().String(),
		Name:      name,
		Nodes:     []Node{},
		Edges:     []Edge{},
		CreatedAt: time.Now(),
	}
}

// NewNode creates a node at pos with its physical properties taken from params
func NewNode(pos r2.Vec, params Params) Node {
	id := uuid.New().String()
	return Node{
		ID:       id,
		Label:    id[:8],
		Position: pos,
		Mass:     params.NodeMass,
		Radius:   params.InteractionRadius,
		Size:     params.NodeSize,
		Damping:  params.Damping(),
	}
}

// AddNode appends a node to the arena and returns its handle
func (g *Graph) AddNode(node Node) Handle {
	h := Handle(len(g.Nodes))
	node.Handle = h
	g.Nodes = append(g.Nodes, node)
	return h
}

// AddEdge adds a spring constraint between a and b
func (g *Graph) AddEdge(a, b Handle, restLength, compliance float64) error {
	if a == b {
		return fmt.Errorf("edge would connect node %d to itself", a)
	}
	if !g.Has(a) {
		return fmt.Errorf("edge source %d does not exist in the graph", a)
	}
	if !g.Has(b) {
		return fmt.Errorf("edge target %d does not exist in the graph", b)
	}
	g.Edges = append(g.Edges, Edge{A: a, B: b, RestLength: restLength, Compliance: compliance})
	return nil
}

// Has reports whether h resolves to a node
func (g *Graph) Has(h Handle) bool {
	return h >= 0 && int(h) < len(g.Nodes)
}

// Node returns the node for h
func (g *Graph) Node(h Handle) (*Node, bool) {
	if !g.Has(h) {
		return nil, false
	}
	return &g.Nodes[h], true
}

// MustNode returns the node for h and panics if it does not exist.
// Handles reaching the simulation come from the arena itself, so a miss
// is a programming error.
func (g *Graph) MustNode(h Handle) *Node {
	n, ok := g.Node(h)
	if !ok {
		panic(fmt.Sprintf("models: node %d does not exist (graph has %d nodes)", h, len(g.Nodes)))
	}
	return n
}

// SetPosition moves a node
func (n *Node) SetPosition(pos r2.Vec) {
	n.Position = pos
}

// Clone returns a deep copy of the graph
func (g *Graph) Clone() *Graph {
	c := *g
	c.Nodes = append([]Node(nil), g.Nodes...)
	c.Edges = append([]Edge(nil), g.Edges...)
	return &c
}
