package models

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// NodeFilter is a predicate over nodes
type NodeFilter func(node *Node) bool

// EdgesOf returns every edge touching h
func (g *Graph) EdgesOf(h Handle) []Edge {
	var result []Edge
	for _, e := range g.Edges {
		if e.A == h || e.B == h {
			result = append(result, e)
		}
	}
	return result
}

// Neighbors returns the handles connected to h by an edge
func (g *Graph) Neighbors(h Handle) []Handle {
	var result []Handle
	for _, e := range g.Edges {
		switch h {
		case e.A:
			result = append(result, e.B)
		case e.B:
			result = append(result, e.A)
		}
	}
	return result
}

// FilterNodes returns the handles of nodes matching filter
func (g *Graph) FilterNodes(filter NodeFilter) []Handle {
	var result []Handle
	for i := range g.Nodes {
		if filter(&g.Nodes[i]) {
			result = append(result, g.Nodes[i].Handle)
		}
	}
	return result
}

// NodeAt returns the node closest to pos whose centre lies within radius of it
func (g *Graph) NodeAt(pos r2.Vec, radius float64) (Handle, bool) {
	best, bestDist := Handle(-1), math.Inf(1)
	for i := range g.Nodes {
		d := r2.Norm(r2.Sub(g.Nodes[i].Position, pos))
		if d <= radius && d < bestDist {
			best, bestDist = g.Nodes[i].Handle, d
		}
	}
	return best, best >= 0
}
