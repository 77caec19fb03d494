package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/TFMV/tetherlayout/graph"
	"github.com/TFMV/tetherlayout/models"
	"gonum.org/v1/gonum/graph/encoding/dot"
)

// JSONNode is a node as written by the JSON renderer
type JSONNode struct {
	Handle int     `json:"handle"`
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Size   float64 `json:"size"`
}

// JSONEdge is an edge as written by the JSON renderer
type JSONEdge struct {
	Source     int     `json:"source"`
	Target     int     `json:"target"`
	RestLength float64 `json:"rest_length"`
	Compliance float64 `json:"compliance"`
}

// JSONGraph is the document written by the JSON renderer
type JSONGraph struct {
	ID       string         `json:"id"`
	Nodes    []JSONNode     `json:"nodes"`
	Edges    []JSONEdge     `json:"edges"`
	Metadata map[string]any `json:"metadata"`
}

// JSONRenderer outputs raw JSON format
type JSONRenderer struct{}

// Name returns the name of the renderer
func (r *JSONRenderer) Name() string {
	return "JSON Renderer"
}

// Description returns a description of the renderer
func (r *JSONRenderer) Description() string {
	return "Renders the layout as JSON for machine consumption or later resumption"
}

// Render creates a JSON representation of the graph
func (r *JSONRenderer) Render(g *models.Graph, options *OutputOptions) ([]byte, error) {
	return json.MarshalIndent(ToJSON(g, options), "", "  ")
}

// ToJSON converts a graph into its JSON document form
func ToJSON(g *models.Graph, options *OutputOptions) JSONGraph {
	doc := JSONGraph{
		ID:    g.ID,
		Nodes: make([]JSONNode, 0, len(g.Nodes)),
		Edges: make([]JSONEdge, 0, len(g.Edges)),
		Metadata: map[string]any{
			"nodeCount": len(g.Nodes),
			"edgeCount": len(g.Edges),
		},
	}
	if options != nil && options.Timestamp {
		doc.Metadata["timestamp"] = time.Now().Format(time.RFC3339)
	}
	for _, n := range g.Nodes {
		doc.Nodes = append(doc.Nodes, JSONNode{
			Handle: int(n.Handle),
			ID:     n.ID,
			Label:  n.Label,
			X:      n.Position.X,
			Y:      n.Position.Y,
			VX:     n.Velocity.X,
			VY:     n.Velocity.Y,
			Size:   n.Size,
		})
	}
	for _, e := range g.Edges {
		doc.Edges = append(doc.Edges, JSONEdge{
			Source:     int(e.A),
			Target:     int(e.B),
			RestLength: e.RestLength,
			Compliance: e.Compliance,
		})
	}
	return doc
}

// DOTRenderer outputs Graphviz DOT format
type DOTRenderer struct{}

// Name returns the name of the renderer
func (r *DOTRenderer) Name() string {
	return "DOT Renderer"
}

// Description returns a description of the renderer
func (r *DOTRenderer) Description() string {
	return "Renders the layout in Graphviz DOT format with pinned node positions"
}

// Render creates a DOT representation of the graph
func (r *DOTRenderer) Render(g *models.Graph, options *OutputOptions) ([]byte, error) {
	out, err := dot.Marshal(graph.ToGonum(g), "layout", "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal dot: %w", err)
	}
	return append(out, '\n'), nil
}
