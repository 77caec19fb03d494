package physics

import (
	"math"
	"runtime"
	"slices"

	"github.com/TFMV/tetherlayout/models"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
)

type cell struct {
	x, y int
}

// neighbours of a cell that are scanned from it. Together with the cell
// itself they cover every adjacent pair exactly once.
var forwardCells = [...]cell{{1, -1}, {1, 0}, {1, 1}, {0, 1}}

// GridDetector finds overlapping interaction discs with a uniform grid
// broad phase and reports only pairs that were not overlapping at the
// previous call.
type GridDetector struct {
	workers int
	active  map[ContactEvent]struct{}
}

// NewGridDetector creates a detector whose narrow phase runs on up to
// GOMAXPROCS goroutines
func NewGridDetector() *GridDetector {
	return &GridDetector{
		workers: runtime.GOMAXPROCS(0),
		active:  make(map[ContactEvent]struct{}),
	}
}

// Detect returns the pairs that started overlapping since the last call,
// sorted by (A, B). Pairs that stay in contact are not reported again
// until they separate.
func (d *GridDetector) Detect(g *models.Graph) []ContactEvent {
	current := d.overlapping(g)

	var started []ContactEvent
	next := make(map[ContactEvent]struct{}, len(current))
	for _, pair := range current {
		if _, seen := next[pair]; seen {
			continue
		}
		next[pair] = struct{}{}
		if _, was := d.active[pair]; !was {
			started = append(started, pair)
		}
	}
	d.active = next

	slices.SortFunc(started, func(a, b ContactEvent) int {
		if a.A != b.A {
			return int(a.A - b.A)
		}
		return int(a.B - b.B)
	})
	return started
}

// Active returns the number of pairs currently in contact
func (d *GridDetector) Active() int {
	return len(d.active)
}

func (d *GridDetector) overlapping(g *models.Graph) []ContactEvent {
	maxRadius := 0.0
	for i := range g.Nodes {
		maxRadius = math.Max(maxRadius, g.Nodes[i].Radius)
	}
	if maxRadius <= 0 || len(g.Nodes) < 2 {
		return nil
	}

	size := 2 * maxRadius
	grid := make(map[cell][]models.Handle)
	for i := range g.Nodes {
		p := g.Nodes[i].Position
		c := cell{int(math.Floor(p.X / size)), int(math.Floor(p.Y / size))}
		grid[c] = append(grid[c], g.Nodes[i].Handle)
	}

	cells := make([]cell, 0, len(grid))
	for c := range grid {
		cells = append(cells, c)
	}

	// Each goroutine owns one slot of results, so no locking is needed.
	results := make([][]ContactEvent, len(cells))
	var eg errgroup.Group
	eg.SetLimit(max(d.workers, 1))
	for i, c := range cells {
		i, c := i, c
		eg.Go(func() error {
			results[i] = d.scanCell(g, grid, c)
			return nil
		})
	}
	_ = eg.Wait()

	var pairs []ContactEvent
	for _, r := range results {
		pairs = append(pairs, r...)
	}
	return pairs
}

func (d *GridDetector) scanCell(g *models.Graph, grid map[cell][]models.Handle, c cell) []ContactEvent {
	var pairs []ContactEvent
	members := grid[c]
	for i, a := range members {
		for _, b := range members[i+1:] {
			if touching(g, a, b) {
				pairs = append(pairs, newContact(a, b))
			}
		}
		for _, off := range forwardCells {
			for _, b := range grid[cell{c.x + off.x, c.y + off.y}] {
				if touching(g, a, b) {
					pairs = append(pairs, newContact(a, b))
				}
			}
		}
	}
	return pairs
}

func touching(g *models.Graph, a, b models.Handle) bool {
	na, nb := &g.Nodes[a], &g.Nodes[b]
	reach := na.Radius + nb.Radius
	return r2.Norm2(r2.Sub(na.Position, nb.Position)) < reach*reach
}

func newContact(a, b models.Handle) ContactEvent {
	if a > b {
		a, b = b, a
	}
	return ContactEvent{A: a, B: b}
}
