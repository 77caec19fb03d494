package physics

import (
	"math"

	"github.com/TFMV/tetherlayout/models"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseDistortion displaces rendered node positions with simplex noise.
// It only ever touches snapshots; the simulation state is not affected.
type NoiseDistortion struct {
	noise       opensimplex.Noise
	noiseScale  float64
	amount      float64
	pulseFactor float64
	timeStep    float64
}

// NewNoiseDistortion creates a distortion with displacement up to
// intensity*20 world units
func NewNoiseDistortion(seed int64, intensity float64) *NoiseDistortion {
	return &NoiseDistortion{
		noise:       opensimplex.New(seed),
		noiseScale:  0.03,
		amount:      20.0 * intensity,
		pulseFactor: 0.1,
	}
}

// Apply displaces every node of g in place and advances the noise time
func (nd *NoiseDistortion) Apply(g *models.Graph) {
	for i := range g.Nodes {
		node := &g.Nodes[i]
		phase := float64(node.Handle) * 0.1
		x, y := node.Position.X, node.Position.Y

		dx := nd.noise.Eval3(x*nd.noiseScale, y*nd.noiseScale, nd.timeStep)
		dy := nd.noise.Eval3(x*nd.noiseScale+100, y*nd.noiseScale+100, nd.timeStep)
		pulse := 1.0 + math.Sin(nd.timeStep*2+phase)*nd.pulseFactor

		node.Position.X += dx * nd.amount * pulse
		node.Position.Y += dy * nd.amount * pulse
	}
	nd.timeStep += 0.01
}
