// Package ingest reads saved layouts so a run can start from known node
// positions instead of a random scatter.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TFMV/tetherlayout/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// Seed is a set of starting positions, one per node, in handle order
type Seed struct {
	Name      string
	Positions []r2.Vec
}

// DataProcessor turns raw bytes into a seed
type DataProcessor interface {
	ProcessData(data []byte) (*Seed, error)
	GetName() string
}

// JSONProcessor reads documents written by the JSON renderer. Only node
// positions are used; edges are always regenerated from the node order.
type JSONProcessor struct{}

// NewJSONProcessor creates a JSON processor
func NewJSONProcessor() *JSONProcessor {
	return &JSONProcessor{}
}

// GetName returns the name of the processor
func (p *JSONProcessor) GetName() string {
	return "JSON Processor"
}

// ProcessData parses a JSON layout document
func (p *JSONProcessor) ProcessData(data []byte) (*Seed, error) {
	var doc render.JSONGraph
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}
	if doc.Nodes == nil {
		return nil, fmt.Errorf("document has no nodes array")
	}

	seed := &Seed{Name: doc.ID, Positions: make([]r2.Vec, len(doc.Nodes))}
	for i, n := range doc.Nodes {
		if n.Handle != i {
			return nil, fmt.Errorf("node %d has handle %d, nodes must be listed in handle order", i, n.Handle)
		}
		seed.Positions[i] = r2.Vec{X: n.X, Y: n.Y}
	}
	return seed, nil
}

// GetProcessor returns a processor for the given format
func GetProcessor(format string) (DataProcessor, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONProcessor(), nil
	default:
		return nil, fmt.Errorf("unsupported seed format: %s", format)
	}
}

// LoadFile reads a seed file, picking the processor from its extension
func LoadFile(path string) (*Seed, error) {
	processor, err := GetProcessor(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	seed, err := processor.ProcessData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to process %s: %w", path, err)
	}
	return seed, nil
}
