// Package viewer shows a running layout in an ebiten window and lets the
// user drag nodes with the mouse.
package viewer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/TFMV/tetherlayout/physics"
	"github.com/TFMV/tetherlayout/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r2"
)

var colliderColor = color.RGBA{120, 120, 120, 80}

// Viewer implements ebiten.Game. Every Update applies pending drag input
// and then ticks the driver once, so the simulation runs at the game's TPS.
type Viewer struct {
	driver *physics.Driver
	drag   *physics.Drag

	background color.RGBA
	nodeColor  color.RGBA
	edgeColor  color.RGBA

	screenWidth  int
	screenHeight int
	showDebug    bool
}

// New creates a viewer for driver
func New(driver *physics.Driver) *Viewer {
	pal := render.DarkPalette()
	return &Viewer{
		driver:     driver,
		drag:       physics.NewDrag(driver),
		background: render.ParseHexColor(pal.Background),
		nodeColor:  render.ParseHexColor(pal.NodeColor(0)),
		edgeColor:  render.ParseHexColor(pal.EdgeColor(0)),
	}
}

// Run opens a window and blocks until it is closed
func Run(v *Viewer, width, height int, title string) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(math.Round(1 / v.driver.Params().TimeStep)))
	return ebiten.RunGame(v)
}

// Update is called every tick
func (v *Viewer) Update() error {
	v.handleInput()
	v.driver.Tick()
	return nil
}

func (v *Viewer) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.showDebug = !v.showDebug
	}

	mx, my := ebiten.CursorPosition()
	inside := mx >= 0 && my >= 0 && mx < v.screenWidth && my < v.screenHeight
	world := v.screenToWorld(mx, my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inside {
		v.drag.Begin(world)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		v.drag.Move(world, inside)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		v.drag.End()
	}
}

// Draw is called every frame to render the layout
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.background)
	g := v.driver.Snapshot()

	for _, e := range g.Edges {
		ax, ay := v.worldToScreen(g.Nodes[e.A].Position)
		bx, by := v.worldToScreen(g.Nodes[e.B].Position)
		vector.StrokeLine(screen, ax, ay, bx, by, 1, v.edgeColor, true)
	}

	for _, n := range g.Nodes {
		x, y := v.worldToScreen(n.Position)
		if v.showDebug {
			vector.StrokeCircle(screen, x, y, float32(n.Radius), 1, colliderColor, true)
		}
		vector.DrawFilledCircle(screen, x, y, float32(n.Size), v.nodeColor, true)
	}

	if v.showDebug {
		st := v.driver.Stats()
		diag := physics.Diagnose(g)
		msg := fmt.Sprintf("TPS: %.1f  FPS: %.1f\n", ebiten.ActualTPS(), ebiten.ActualFPS())
		msg += fmt.Sprintf("ticks: %d  contacts: %d  impulses: %d\n", st.Ticks, st.Contacts, st.Impulses)
		msg += fmt.Sprintf("kinetic energy: %.1f\n", diag.KineticEnergy)
		msg += fmt.Sprintf("edge length: %.1f +/- %.1f\n", diag.MeanEdgeLength, diag.EdgeLengthStdDev)
		if h, ok := v.drag.Held(); ok {
			msg += fmt.Sprintf("dragging node %d\n", h)
		}
		ebitenutil.DebugPrint(screen, msg)
	}
}

// Layout is called when the window size changes
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.screenWidth = outsideWidth
	v.screenHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// The world origin sits at the centre of the window with y pointing up.
func (v *Viewer) worldToScreen(p r2.Vec) (float32, float32) {
	return float32(p.X + float64(v.screenWidth)/2), float32(float64(v.screenHeight)/2 - p.Y)
}

func (v *Viewer) screenToWorld(x, y int) r2.Vec {
	return r2.Vec{X: float64(x) - float64(v.screenWidth)/2, Y: float64(v.screenHeight)/2 - float64(y)}
}
