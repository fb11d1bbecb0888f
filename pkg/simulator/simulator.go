package simulator

import (
	"context"

	"github.com/google/uuid"

	"github.com/llm-d-incubation/mms-simulator/internal/logger"
	"github.com/llm-d-incubation/mms-simulator/internal/metrics"
	"github.com/llm-d-incubation/mms-simulator/pkg/aggregator"
	"github.com/llm-d-incubation/mms-simulator/pkg/config"
	"github.com/llm-d-incubation/mms-simulator/pkg/core"
	"github.com/llm-d-incubation/mms-simulator/pkg/dispatch"
	"github.com/llm-d-incubation/mms-simulator/pkg/sampler"
)

// Outcome of one simulation run
type Result struct {
	RunID       string                `json:"runId" yaml:"runId"`
	Spec        config.SimulationSpec `json:"spec" yaml:"spec"`
	ArrivalRate float64               `json:"effectiveArrivalRate" yaml:"effectiveArrivalRate"` // lambda actually simulated
	ServiceRate float64               `json:"effectiveServiceRate" yaml:"effectiveServiceRate"` // mu actually simulated
	Metrics     *core.RunMetrics      `json:"metrics" yaml:"metrics"`
	Units       []core.Unit           `json:"units" yaml:"units"`
	Servers     []core.ServerState    `json:"servers" yaml:"servers"`
	Trace       *core.StepTrace       `json:"trace" yaml:"trace"`
}

type Option func(*Simulator)

// WithSource replaces the seeded generator, e.g. with a scripted sequence
func WithSource(src sampler.UniformSource) Option {
	return func(s *Simulator) {
		s.source = src
	}
}

// WithPool overrides the configured server pool implementation
func WithPool(kind string) Option {
	return func(s *Simulator) {
		s.spec.Pool = kind
	}
}

// WithEmitter publishes run metrics after every run
func WithEmitter(emitter *metrics.MetricsEmitter) Option {
	return func(s *Simulator) {
		s.emitter = emitter
	}
}

// A simulation bound to a validated spec
type Simulator struct {
	spec    config.SimulationSpec
	source  sampler.UniformSource
	emitter *metrics.MetricsEmitter
}

// NewSimulator validates the parameters; no sampling happens on error
func NewSimulator(spec config.SimulationSpec, opts ...Option) (*Simulator, error) {
	s := &Simulator{spec: spec}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.spec.Validate(); err != nil {
		return nil, err
	}
	if s.source == nil {
		s.source = sampler.NewSource(s.spec.Seed)
	}
	return s, nil
}

func (s *Simulator) Spec() config.SimulationSpec {
	return s.spec
}

// Run generates, dispatches and aggregates one trace.
// A Simulator consumes its source, so a second Run continues the random sequence.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lambda, mu := s.spec.EffectiveRates()
	result, err := Execute(lambda, mu, s.spec.Servers, s.spec.Units, s.source, s.spec.PoolKind())
	if err != nil {
		return nil, err
	}
	result.Spec = s.spec

	logger.Log.Infow("simulation finished",
		"runId", result.RunID,
		"servers", s.spec.Servers,
		"units", s.spec.Units,
		"lambda", lambda,
		"mu", mu,
		"wq", result.Metrics.MeanWait,
		"ws", result.Metrics.MeanSystemTime,
		"lq", result.Metrics.AvgInQueue,
		"ls", result.Metrics.AvgInSystem,
		"rho", result.Metrics.MeanUtilization,
		"saturated", result.Metrics.Saturated())
	s.emitter.EmitRunMetrics(ctx, s.spec.PoolKind(), s.spec.Units, result.Metrics)
	return result, nil
}

// Execute runs the engine with effective rates and no further unit conversion.
// Unlike a validated spec it accepts zero units, producing an empty report.
func Execute(lambda, mu float64, servers, units int, src sampler.UniformSource, poolKind string) (*Result, error) {
	if units < 0 {
		return nil, &config.ConfigurationError{Field: "units", Value: units, Reason: "must not be negative"}
	}
	pool, err := dispatch.NewPool(poolKind, servers)
	if err != nil {
		return nil, err
	}
	generator, err := sampler.NewGenerator(lambda, mu, src)
	if err != nil {
		return nil, err
	}

	arrivals := generator.Generate(units)
	outcome := dispatch.NewDispatcher(pool).Dispatch(arrivals)
	runMetrics, trace := aggregator.Aggregate(outcome.Units, outcome.Servers, outcome.Events)

	return &Result{
		RunID: uuid.NewString(),
		Spec: config.SimulationSpec{
			ArrivalRate: lambda,
			ServiceRate: mu,
			Servers:     servers,
			Units:       units,
			Pool:        poolKind,
		},
		ArrivalRate: lambda,
		ServiceRate: mu,
		Metrics:     runMetrics,
		Units:       outcome.Units,
		Servers:     outcome.Servers,
		Trace:       trace,
	}, nil
}
