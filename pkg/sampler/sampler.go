package sampler

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// stream selector of the PCG generator, fixed so a seed alone determines a run
const pcgStream uint64 = 0x9e3779b97f4a7c15

// largest uniform value fed to the inverse CDF
var MaxUniform = math.Nextafter(1, 0)

// Source of uniform samples in [0, 1)
type UniformSource interface {
	Float64() float64
}

// NewSource returns a deterministic generator for the given seed.
// A generator must not be shared between concurrent runs.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, pcgStream))
}

// ClampUniform maps a uniform draw into [0, MaxUniform] so that -log(1-u) stays finite
func ClampUniform(u float64) float64 {
	switch {
	case u >= 1 || math.IsNaN(u):
		return MaxUniform
	case u < 0:
		return 0
	default:
		return u
	}
}

// Exponential sampler using inverse-CDF transformation of uniform draws
type Exponential struct {
	dist distuv.Exponential
	src  UniformSource
}

func NewExponential(rate float64, src UniformSource) *Exponential {
	return &Exponential{
		dist: distuv.Exponential{Rate: rate},
		src:  src,
	}
}

// Rate returns the rate parameter of the distribution
func (e *Exponential) Rate() float64 {
	return e.dist.Rate
}

// Transform maps a uniform value to an exponential sample
func (e *Exponential) Transform(u float64) float64 {
	return e.dist.Quantile(ClampUniform(u))
}

// Sample draws the next exponential sample from the source
func (e *Exponential) Sample() float64 {
	return e.Transform(e.src.Float64())
}
