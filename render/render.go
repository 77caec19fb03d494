package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/TFMV/tetherlayout/models"
	"github.com/TFMV/tetherlayout/physics"
)

// OutputOptions defines rendering configuration options
type OutputOptions struct {
	Format         string   // Output format (svg, ascii, json, dot)
	Width          float64  // Width of the output
	Height         float64  // Height of the output
	Padding        float64  // Margin kept free around the layout
	NoiseIntensity float64  // Strength of the noise distortion (0 disables it)
	NoiseSeed      int64    // Seed for the noise distortion
	Timestamp      bool     // Include timestamp in visualization
	ShowLabels     bool     // Show node labels
	FontSize       float64  // Font size for labels
	Palette        *Palette // Colors, DefaultPalette when nil
}

// Renderer interface defines methods that all rendering backends must implement
type Renderer interface {
	// Render creates a visualization of the graph using the provided options
	Render(graph *models.Graph, options *OutputOptions) ([]byte, error)

	// Name returns the name of the renderer
	Name() string

	// Description returns a description of the renderer
	Description() string
}

// NewDefaultOptions creates a default set of output options
func NewDefaultOptions(format string) *OutputOptions {
	return &OutputOptions{
		Format:     format,
		Width:      800,
		Height:     600,
		Padding:    40,
		Timestamp:  true,
		ShowLabels: false,
		FontSize:   10,
		Palette:    DefaultPalette(),
	}
}

// GetRenderer returns the appropriate renderer based on format
func GetRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "svg":
		return &SVGRenderer{}, nil
	case "ascii":
		return &ASCIIRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "dot":
		return &DOTRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Generate renders a snapshot of the driver's graph
func Generate(driver *physics.Driver, options *OutputOptions) ([]byte, error) {
	renderer, err := GetRenderer(options.Format)
	if err != nil {
		return nil, err
	}

	snapshot := driver.Snapshot()
	if options.NoiseIntensity > 0 {
		physics.NewNoiseDistortion(options.NoiseSeed, options.NoiseIntensity).Apply(snapshot)
	}

	output, err := renderer.Render(snapshot, options)
	if err != nil {
		return nil, fmt.Errorf("rendering failed: %w", err)
	}
	return output, nil
}

// Transform maps world coordinates onto a canvas
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Fit computes the transform that centres the graph's bounding box on a
// width x height canvas, preserving aspect ratio.
func Fit(graph *models.Graph, width, height, padding float64) Transform {
	if len(graph.Nodes) == 0 {
		return Transform{Scale: 1, OffsetX: width / 2, OffsetY: height / 2}
	}

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, n := range graph.Nodes {
		minX = math.Min(minX, n.Position.X-n.Size)
		maxX = math.Max(maxX, n.Position.X+n.Size)
		minY = math.Min(minY, n.Position.Y-n.Size)
		maxY = math.Max(maxY, n.Position.Y+n.Size)
	}

	worldWidth := math.Max(maxX-minX, 1)
	worldHeight := math.Max(maxY-minY, 1)
	scale := math.Min((width-2*padding)/worldWidth, (height-2*padding)/worldHeight)
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}

	centerX := (minX + maxX) / 2
	centerY := (minY + maxY) / 2
	return Transform{
		Scale:   scale,
		OffsetX: width/2 - centerX*scale,
		OffsetY: height/2 - centerY*scale,
	}
}

// Apply converts a world point to canvas coordinates
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.Scale + t.OffsetX, y*t.Scale + t.OffsetY
}

func palette(options *OutputOptions) *Palette {
	if options.Palette == nil {
		return DefaultPalette()
	}
	return options.Palette
}

// SVGRenderer outputs SVG format
type SVGRenderer struct{}

// Name returns the name of the renderer
func (r *SVGRenderer) Name() string {
	return "SVG Renderer"
}

// Description returns a description of the renderer
func (r *SVGRenderer) Description() string {
	return "Renders the layout as Scalable Vector Graphics"
}

// Render creates an SVG representation of the graph
func (r *SVGRenderer) Render(graph *models.Graph, options *OutputOptions) ([]byte, error) {
	var buf bytes.Buffer
	pal := palette(options)
	t := Fit(graph, options.Width, options.Height, options.Padding)

	fmt.Fprintf(&buf, `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%f" height="%f" viewBox="0 0 %f %f" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
`, options.Width, options.Height, options.Width, options.Height, pal.Background)

	for i, edge := range graph.Edges {
		a, okA := graph.Node(edge.A)
		b, okB := graph.Node(edge.B)
		if !okA || !okB {
			return nil, fmt.Errorf("edge %d references a missing node", i)
		}
		x1, y1 := t.Apply(a.Position.X, a.Position.Y)
		x2, y2 := t.Apply(b.Position.X, b.Position.Y)
		fmt.Fprintf(&buf, `<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="%s" stroke-width="1" />
`, x1, y1, x2, y2, pal.EdgeColor(i))
	}

	for _, node := range graph.Nodes {
		cx, cy := t.Apply(node.Position.X, node.Position.Y)
		radius := math.Max(node.Size*t.Scale, 1)
		fmt.Fprintf(&buf, `<circle cx="%f" cy="%f" r="%f" fill="%s" stroke="rgba(0,0,0,0.3)" stroke-width="0.5" />
`, cx, cy, radius, pal.NodeColor(int(node.Handle)))

		if options.ShowLabels && node.Label != "" {
			fmt.Fprintf(&buf, `<text x="%f" y="%f" font-family="sans-serif" font-size="%f" fill="#333333" text-anchor="middle">%s</text>
`, cx, cy+radius+options.FontSize+2, options.FontSize, node.Label)
		}
	}

	if options.Timestamp {
		fmt.Fprintf(&buf, `<text x="5" y="%f" font-family="sans-serif" font-size="8" fill="#808080">%s</text>
`, options.Height-5, time.Now().Format("2006-01-02 15:04:05"))
	}

	buf.WriteString(`</svg>`)
	return buf.Bytes(), nil
}

// ASCIIRenderer outputs ASCII art format
type ASCIIRenderer struct{}

// Name returns the name of the renderer
func (r *ASCIIRenderer) Name() string {
	return "ASCII Renderer"
}

// Description returns a description of the renderer
func (r *ASCIIRenderer) Description() string {
	return "Renders the layout as ASCII art for terminal output"
}

const (
	nodeSymbol = 'O'
	edgeSymbol = '.'
)

// Render creates an ASCII representation of the graph
func (r *ASCIIRenderer) Render(graph *models.Graph, options *OutputOptions) ([]byte, error) {
	width := max(int(options.Width/10), 40)
	height := max(int(options.Height/20), 20)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	for i := 0; i < width; i++ {
		grid[0][i] = '-'
		grid[height-1][i] = '-'
	}
	for i := 0; i < height; i++ {
		grid[i][0] = '|'
		grid[i][width-1] = '|'
	}
	grid[0][0], grid[0][width-1] = '+', '+'
	grid[height-1][0], grid[height-1][width-1] = '+', '+'

	t := Fit(graph, float64(width-2), float64(height-2), 0)
	cellOf := func(n *models.Node) (int, int) {
		x, y := t.Apply(n.Position.X, n.Position.Y)
		return clamp(int(x)+1, 1, width-2), clamp(int(y)+1, 1, height-2)
	}

	for _, edge := range graph.Edges {
		a, okA := graph.Node(edge.A)
		b, okB := graph.Node(edge.B)
		if !okA || !okB {
			continue
		}
		x1, y1 := cellOf(a)
		x2, y2 := cellOf(b)
		drawLine(grid, x1, y1, x2, y2)
	}

	for i := range graph.Nodes {
		x, y := cellOf(&graph.Nodes[i])
		grid[y][x] = nodeSymbol
	}

	var result strings.Builder
	for _, row := range grid {
		result.WriteString(string(row))
		result.WriteRune('\n')
	}
	if options.Timestamp {
		result.WriteString(time.Now().Format("2006-01-02 15:04"))
		result.WriteRune('\n')
	}
	return []byte(result.String()), nil
}

// Clamp a value between lo and hi
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Draw a line on the ASCII grid using Bresenham's algorithm
func drawLine(grid [][]rune, x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 >= x2 {
		sx = -1
	}
	if y1 >= y2 {
		sy = -1
	}
	err := dx + dy

	for {
		if y1 >= 0 && y1 < len(grid) && x1 >= 0 && x1 < len(grid[y1]) && grid[y1][x1] != nodeSymbol {
			grid[y1][x1] = edgeSymbol
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
