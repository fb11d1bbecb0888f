package simulator

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/llm-d-incubation/mms-simulator/internal/logger"
	"github.com/llm-d-incubation/mms-simulator/pkg/config"
	"github.com/llm-d-incubation/mms-simulator/pkg/core"
	"github.com/llm-d-incubation/mms-simulator/pkg/sampler"
)

// Metrics of one replication
type Replication struct {
	Index   int              `json:"index" yaml:"index"`
	Seed    uint64           `json:"seed" yaml:"seed"`
	RunID   string           `json:"runId" yaml:"runId"`
	Metrics *core.RunMetrics `json:"metrics" yaml:"metrics"`
}

// Sample mean and standard deviation of a metric across replications
type Statistic struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stdDev" yaml:"stdDev"`
}

type ReplicationSummary struct {
	MeanWait        Statistic `json:"meanWait" yaml:"meanWait"`
	MeanSystemTime  Statistic `json:"meanSystemTime" yaml:"meanSystemTime"`
	AvgInSystem     Statistic `json:"avgInSystem" yaml:"avgInSystem"`
	AvgInQueue      Statistic `json:"avgInQueue" yaml:"avgInQueue"`
	MeanUtilization Statistic `json:"meanUtilization" yaml:"meanUtilization"`
	MaxWait         Statistic `json:"maxWait" yaml:"maxWait"`
}

type ReplicationReport struct {
	Spec         config.ReplicationSpec `json:"spec" yaml:"spec"`
	Replications []Replication          `json:"replications" yaml:"replications"`
	Summary      ReplicationSummary     `json:"summary" yaml:"summary"`
}

// Replicate runs independent replications concurrently. Replication i uses its
// own generator seeded with seed+i, so results do not depend on scheduling.
// A WithSource option is ignored. An emitter set by WithEmitter receives the
// replications in index order once all of them have finished.
func Replicate(ctx context.Context, spec config.ReplicationSpec, opts ...Option) (*ReplicationReport, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	shared := &Simulator{spec: spec.Simulation}
	for _, opt := range opts {
		opt(shared)
	}

	replications := make([]Replication, spec.Replications)
	g, gctx := errgroup.WithContext(ctx)
	if spec.Parallelism > 0 {
		g.SetLimit(spec.Parallelism)
	}
	for i := range spec.Replications {
		g.Go(func() error {
			runSpec := spec.Simulation
			runSpec.Seed = spec.Simulation.Seed + uint64(i)
			runOpts := append(slices.Clone(opts), WithEmitter(nil), WithSource(sampler.NewSource(runSpec.Seed)))
			sim, err := NewSimulator(runSpec, runOpts...)
			if err != nil {
				return err
			}
			result, err := sim.Run(gctx)
			if err != nil {
				return fmt.Errorf("replication %d: %w", i, err)
			}
			replications[i] = Replication{
				Index:   i,
				Seed:    runSpec.Seed,
				RunID:   result.RunID,
				Metrics: result.Metrics,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i := range replications {
		shared.emitter.EmitRunMetrics(ctx, shared.spec.PoolKind(), spec.Simulation.Units, replications[i].Metrics)
	}

	report := &ReplicationReport{
		Spec:         spec,
		Replications: replications,
		Summary:      summarize(replications),
	}
	logger.Log.Infow("replications finished",
		"replications", spec.Replications,
		"wq", report.Summary.MeanWait.Mean,
		"lq", report.Summary.AvgInQueue.Mean)
	return report, nil
}

func summarize(replications []Replication) ReplicationSummary {
	pick := func(f func(m *core.RunMetrics) float64) Statistic {
		xs := make([]float64, len(replications))
		for i := range replications {
			xs[i] = f(replications[i].Metrics)
		}
		return statisticOf(xs)
	}
	return ReplicationSummary{
		MeanWait:        pick(func(m *core.RunMetrics) float64 { return m.MeanWait }),
		MeanSystemTime:  pick(func(m *core.RunMetrics) float64 { return m.MeanSystemTime }),
		AvgInSystem:     pick(func(m *core.RunMetrics) float64 { return m.AvgInSystem }),
		AvgInQueue:      pick(func(m *core.RunMetrics) float64 { return m.AvgInQueue }),
		MeanUtilization: pick(func(m *core.RunMetrics) float64 { return m.MeanUtilization }),
		MaxWait:         pick(func(m *core.RunMetrics) float64 { return m.MaxWait }),
	}
}

// the standard deviation of a single sample is reported as zero
func statisticOf(xs []float64) Statistic {
	switch len(xs) {
	case 0:
		return Statistic{}
	case 1:
		return Statistic{Mean: xs[0]}
	}
	mean, std := stat.MeanStdDev(xs, nil)
	return Statistic{Mean: mean, StdDev: std}
}
