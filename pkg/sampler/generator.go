package sampler

import (
	"fmt"
	"math"

	"github.com/llm-d-incubation/mms-simulator/internal/logger"
	"github.com/llm-d-incubation/mms-simulator/pkg/config"
)

// Arrival instants and service demands of a run, indexed by unit
type Arrivals struct {
	Gaps      []float64 // interarrival gaps
	Times     []float64 // absolute arrival instants (running sum of gaps)
	Durations []float64 // service durations
}

func (a *Arrivals) Len() int {
	return len(a.Times)
}

// Generator of Poisson arrivals and exponential service durations
type Generator struct {
	interarrival *Exponential
	service      *Exponential
}

// NewGenerator creates a generator drawing both streams from one source
func NewGenerator(lambda, mu float64, src UniformSource) (*Generator, error) {
	if err := checkRate("lambda", lambda); err != nil {
		return nil, err
	}
	if err := checkRate("mu", mu); err != nil {
		return nil, err
	}
	return &Generator{
		interarrival: NewExponential(lambda, src),
		service:      NewExponential(mu, src),
	}, nil
}

// rates must be finite and at least config.MinRate so every sample stays finite
func checkRate(field string, rate float64) error {
	if !(rate >= config.MinRate) || math.IsInf(rate, 1) {
		return &config.ConfigurationError{Field: field, Value: rate, Reason: fmt.Sprintf("must be finite and at least %g", config.MinRate)}
	}
	return nil
}

// Generate draws n units; for each unit the interarrival gap is drawn before the service duration
func (g *Generator) Generate(n int) *Arrivals {
	if n < 0 {
		n = 0
	}
	a := &Arrivals{
		Gaps:      make([]float64, n),
		Times:     make([]float64, n),
		Durations: make([]float64, n),
	}
	clock := 0.0
	for i := range n {
		gap := g.interarrival.Sample()
		clock += gap
		a.Gaps[i] = gap
		a.Times[i] = clock
		a.Durations[i] = g.service.Sample()
	}
	logger.Log.Debugw("generated arrivals", "units", n, "lastArrival", clock,
		"lambda", g.interarrival.Rate(), "mu", g.service.Rate())
	return a
}
