package sim

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/paulmach/orb"
)

// Jitter produces the per-frame random offset applied to an agent before
// anything else happens in a step. Offsets lie in [-1,1]² and are not scaled
// by the frame's delta time.
type Jitter interface {
	Offset(agent int, frame uint64) orb.Point
}

// UniformJitter draws each component uniformly from [-1,1).
type UniformJitter struct {
	rng *rand.Rand
}

func NewUniformJitter(rng *rand.Rand) *UniformJitter {
	return &UniformJitter{rng: rng}
}

func (j *UniformJitter) Offset(int, uint64) orb.Point {
	return orb.Point{j.rng.Float64()*2 - 1, j.rng.Float64()*2 - 1}
}

// Noise parameters for NoiseJitter.
const (
	noiseAlpha     = 2.0
	noiseBeta      = 2.0
	noiseOctaves   = 3
	noiseFrameStep = 0.02
	noiseAgentStep = 7.31
)

// NoiseJitter samples 2D perlin noise along a per-agent track, so each agent
// drifts smoothly instead of shaking.
type NoiseJitter struct {
	x, y *perlin.Perlin
}

func NewNoiseJitter(seed int64) *NoiseJitter {
	return &NoiseJitter{
		x: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
		y: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed+1),
	}
}

func (j *NoiseJitter) Offset(agent int, frame uint64) orb.Point {
	u := float64(agent) * noiseAgentStep
	t := float64(frame) * noiseFrameStep
	// Noise is close to zero for small inputs; scale it up before clamping.
	return orb.Point{
		clampUnit(2 * j.x.Noise2D(u, t)),
		clampUnit(2 * j.y.Noise2D(t, u)),
	}
}

// NoJitter leaves positions untouched.
type NoJitter struct{}

func (NoJitter) Offset(int, uint64) orb.Point { return orb.Point{} }

// NewJitter builds the jitter source named by kind.
func NewJitter(kind string, rng *rand.Rand) (Jitter, error) {
	switch strings.ToLower(kind) {
	case "", "uniform":
		return NewUniformJitter(rng), nil
	case "noise":
		return NewNoiseJitter(rng.Int63()), nil
	case "none":
		return NoJitter{}, nil
	}
	return nil, fmt.Errorf("unknown jitter %q", kind)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
