package graph

import (
	"fmt"
	"strconv"

	"github.com/TFMV/tetherlayout/models"
	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/simple"
)

// Node is a gonum view of a layout node carrying its DOT attributes
type Node struct {
	Handle models.Handle
	Label  string
	X, Y   float64
}

// ID implements gonum's graph.Node
func (n Node) ID() int64 { return int64(n.Handle) }

// DOTID names the node in DOT output
func (n Node) DOTID() string { return "n" + strconv.Itoa(int(n.Handle)) }

// Attributes implements encoding.Attributer
func (n Node) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "label", Value: strconv.Quote(n.Label)},
		{Key: "pos", Value: fmt.Sprintf("\"%.2f,%.2f!\"", n.X, n.Y)},
	}
}

// Edge is a gonum view of a spring constraint
type Edge struct {
	F, T       Node
	RestLength float64
}

// From implements gonum's graph.Edge
func (e Edge) From() gonum.Node { return e.F }

// To implements gonum's graph.Edge
func (e Edge) To() gonum.Node { return e.T }

// ReversedEdge implements gonum's graph.Edge
func (e Edge) ReversedEdge() gonum.Edge { return Edge{F: e.T, T: e.F, RestLength: e.RestLength} }

// Attributes implements encoding.Attributer
func (e Edge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "len", Value: strconv.FormatFloat(e.RestLength, 'f', -1, 64)}}
}

// ToGonum exposes the layout topology as an undirected gonum graph
func ToGonum(g *models.Graph) *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	nodes := make([]Node, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = Node{Handle: n.Handle, Label: n.Label, X: n.Position.X, Y: n.Position.Y}
		ug.AddNode(nodes[i])
	}
	for _, e := range g.Edges {
		ug.SetEdge(Edge{F: nodes[e.A], T: nodes[e.B], RestLength: e.RestLength})
	}
	return ug
}
