package simulator

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/llm-d-incubation/mms-simulator/internal/constants"
	"github.com/llm-d-incubation/mms-simulator/internal/metrics"
	"github.com/llm-d-incubation/mms-simulator/pkg/config"
	"github.com/llm-d-incubation/mms-simulator/pkg/core"
	"github.com/llm-d-incubation/mms-simulator/pkg/utils"
)

// returns the same uniform value forever and counts draws
type constantSource struct {
	value float64
	draws int
}

func (c *constantSource) Float64() float64 {
	c.draws++
	return c.value
}

// samples of a gathered metric family, keyed by the value of their first label
func sampleValues(registry *prometheus.Registry, name string) map[string]float64 {
	families, err := registry.Gather()
	Expect(err).NotTo(HaveOccurred())
	values := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			key := ""
			if labels := m.GetLabel(); len(labels) > 0 {
				key = labels[0].GetValue()
			}
			if m.GetCounter() != nil {
				values[key] = m.GetCounter().GetValue()
			} else {
				values[key] = m.GetGauge().GetValue()
			}
		}
	}
	return values
}

var _ = Describe("Simulator", func() {
	var (
		ctx  context.Context
		spec config.SimulationSpec
	)

	BeforeEach(func() {
		ctx = context.Background()
		spec = config.SimulationSpec{
			ArrivalRate: 45,
			ServiceRate: 60,
			Servers:     2,
			Units:       500,
			PerHour:     true,
			Seed:        2024,
		}
	})

	Context("with a single unit and median draws", func() {
		It("should produce the deterministic single-unit record", func() {
			spec = config.SimulationSpec{ArrivalRate: 60, ServiceRate: 60, Servers: 1, Units: 1, PerHour: true}
			src := &constantSource{value: 0.5}
			sim, err := NewSimulator(spec, WithSource(src))
			Expect(err).NotTo(HaveOccurred())

			result, err := sim.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(src.draws).To(Equal(2))
			Expect(result.ArrivalRate).To(Equal(1.0))
			Expect(result.ServiceRate).To(Equal(1.0))

			Expect(result.Units).To(HaveLen(1))
			unit := result.Units[0]
			Expect(unit.ID).To(Equal(1))
			Expect(unit.ServerID).To(Equal(1))
			Expect(unit.Arrival).To(BeNumerically("~", math.Ln2, 1e-12))
			Expect(unit.ServiceDuration).To(BeNumerically("~", math.Ln2, 1e-12))
			Expect(unit.Wait).To(Equal(0.0))
			Expect(unit.SystemTime).To(Equal(unit.ServiceDuration))

			Expect(result.Metrics.MeanWait).To(Equal(0.0))
			Expect(result.Metrics.AvgInQueue).To(Equal(0.0))
			Expect(result.Metrics.TotalTime).To(BeNumerically("~", 2*math.Ln2, 1e-12))
			Expect(result.Metrics.AvgInSystem).To(BeNumerically("~", 0.5, 1e-12))
			Expect(result.Metrics.ServerUtilization).To(HaveLen(1))
			Expect(result.Metrics.ServerUtilization[0]).To(BeNumerically("~", 50, 1e-9))
		})
	})

	Context("with an empty run", func() {
		It("should report zeros without dividing by zero", func() {
			result, err := Execute(1, 1, 3, 0, &constantSource{value: 0.5}, config.PoolLinear)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Units).To(BeEmpty())
			Expect(result.Servers).To(HaveLen(3))

			m := result.Metrics
			Expect(m.TotalTime).To(Equal(1.0))
			for _, v := range []float64{m.MeanWait, m.MeanSystemTime, m.AvgInSystem, m.AvgInQueue, m.MaxWait, m.MeanUtilization} {
				Expect(v).To(Equal(0.0))
			}
			Expect(m.ServerUtilization).To(Equal([]float64{0, 0, 0}))
		})

		It("should still reject zero servers or negative units", func() {
			_, err := Execute(1, 1, 0, 0, &constantSource{}, config.PoolLinear)
			Expect(config.IsConfigurationError(err)).To(BeTrue())
			_, err = Execute(1, 1, 1, -1, &constantSource{}, config.PoolLinear)
			Expect(config.IsConfigurationError(err)).To(BeTrue())
		})
	})

	Context("with an invalid configuration", func() {
		DescribeTable("should be rejected before any sampling",
			func(mutate func(s *config.SimulationSpec), field string) {
				mutate(&spec)
				src := &constantSource{value: 0.5}
				sim, err := NewSimulator(spec, WithSource(src))
				Expect(sim).To(BeNil())
				Expect(err).To(MatchError(config.ErrInvalidConfiguration))
				var cfgErr *config.ConfigurationError
				Expect(err).To(BeAssignableToTypeOf(cfgErr))
				Expect(err.(*config.ConfigurationError).Field).To(Equal(field))
				Expect(src.draws).To(BeZero())
			},
			Entry("zero lambda", func(s *config.SimulationSpec) { s.ArrivalRate = 0 }, "arrivalRate"),
			Entry("negative mu", func(s *config.SimulationSpec) { s.ServiceRate = -2 }, "serviceRate"),
			Entry("no servers", func(s *config.SimulationSpec) { s.Servers = 0 }, "servers"),
			Entry("no units", func(s *config.SimulationSpec) { s.Units = 0 }, "units"),
			Entry("unknown pool", func(s *config.SimulationSpec) { s.Pool = "lifo" }, "pool"),
		)
	})

	Context("with a fixed seed", func() {
		It("should reproduce identical metrics, units and traces", func() {
			first, err := NewSimulator(spec)
			Expect(err).NotTo(HaveOccurred())
			second, err := NewSimulator(spec)
			Expect(err).NotTo(HaveOccurred())

			a, err := first.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			b, err := second.Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.RunID).NotTo(Equal(b.RunID))
			Expect(b.Metrics).To(Equal(a.Metrics))
			Expect(b.Units).To(Equal(a.Units))
			Expect(b.Trace).To(Equal(a.Trace))
		})

		It("should give the same results with either server pool", func() {
			spec.Servers = 4
			spec.ArrivalRate = 200
			linear, err := NewSimulator(spec, WithPool(config.PoolLinear))
			Expect(err).NotTo(HaveOccurred())
			heap, err := NewSimulator(spec, WithPool(config.PoolHeap))
			Expect(err).NotTo(HaveOccurred())
			Expect(heap.Spec().Pool).To(Equal(config.PoolHeap))

			a, err := linear.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			b, err := heap.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Metrics).To(Equal(a.Metrics))
			Expect(b.Units).To(Equal(a.Units))
		})
	})

	It("should keep queue occupancy within system occupancy", func() {
		for seed := uint64(1); seed <= 10; seed++ {
			spec.Seed = seed
			spec.Servers = int(seed%3) + 1
			sim, err := NewSimulator(spec)
			Expect(err).NotTo(HaveOccurred())
			result, err := sim.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Metrics.AvgInQueue).To(BeNumerically("<=", result.Metrics.AvgInSystem))
			Expect(result.Units).To(HaveLen(spec.Units))
			Expect(result.Trace.Len()).To(Equal(4*spec.Units + 1))
		}
	})

	It("should integrate occupancy to the sum of unit times", func() {
		spec.Servers = 2
		spec.Units = 200
		sim, err := NewSimulator(spec)
		Expect(err).NotTo(HaveOccurred())
		result, err := sim.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		var systemTime, wait float64
		for _, u := range result.Units {
			systemTime += u.SystemTime
			wait += u.Wait
		}
		T := result.Metrics.TotalTime
		Expect(utils.WithinTolerance(result.Metrics.AvgInSystem*T, systemTime, 1e-9)).To(BeTrue())
		if wait > 0 {
			Expect(utils.WithinTolerance(result.Metrics.AvgInQueue*T, wait, 1e-9)).To(BeTrue())
		} else {
			Expect(result.Metrics.AvgInQueue).To(BeZero())
		}
	})

	It("should not run with a cancelled context", func() {
		sim, err := NewSimulator(spec)
		Expect(err).NotTo(HaveOccurred())
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = sim.Run(cancelled)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("should publish run metrics through the emitter", func() {
		registry := prometheus.NewRegistry()
		emitter := metrics.InitMetricsAndEmitter(registry)
		sim, err := NewSimulator(spec, WithEmitter(emitter))
		Expect(err).NotTo(HaveOccurred())
		result, err := sim.Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Spec).To(Equal(spec))

		count, err := testutil.GatherAndCount(registry, constants.MMSServerUtilization)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(spec.Servers))
		count, err = testutil.GatherAndCount(registry, constants.MMSRunsTotal)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(1))
	})
})

var _ = Describe("Replicate", func() {
	var (
		ctx  context.Context
		spec config.ReplicationSpec
	)

	BeforeEach(func() {
		ctx = context.Background()
		spec = config.ReplicationSpec{
			Simulation: config.SimulationSpec{
				ArrivalRate: 1.6,
				ServiceRate: 1,
				Servers:     2,
				Units:       300,
				Seed:        10,
			},
			Replications: 6,
			Parallelism:  3,
		}
	})

	It("should run every replication with its own seed", func() {
		report, err := Replicate(ctx, spec)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Replications).To(HaveLen(6))
		for i, r := range report.Replications {
			Expect(r.Index).To(Equal(i))
			Expect(r.Seed).To(Equal(uint64(10 + i)))
			Expect(r.Metrics).NotTo(BeNil())
		}
		Expect(report.Replications[0].Metrics).NotTo(Equal(report.Replications[1].Metrics))
	})

	It("should match sequential single runs regardless of parallelism", func() {
		parallel, err := Replicate(ctx, spec)
		Expect(err).NotTo(HaveOccurred())
		spec.Parallelism = 1
		sequential, err := Replicate(ctx, spec)
		Expect(err).NotTo(HaveOccurred())

		for i := range parallel.Replications {
			Expect(parallel.Replications[i].Metrics).To(Equal(sequential.Replications[i].Metrics))

			runSpec := spec.Simulation
			runSpec.Seed = spec.Simulation.Seed + uint64(i)
			sim, err := NewSimulator(runSpec)
			Expect(err).NotTo(HaveOccurred())
			single, err := sim.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(single.Metrics).To(Equal(parallel.Replications[i].Metrics))
		}
		Expect(parallel.Summary).To(Equal(sequential.Summary))
	})

	It("should summarize means across replications", func() {
		report, err := Replicate(ctx, spec)
		Expect(err).NotTo(HaveOccurred())

		sum := 0.0
		for _, r := range report.Replications {
			sum += r.Metrics.MeanWait
		}
		Expect(report.Summary.MeanWait.Mean).To(BeNumerically("~", sum/6, 1e-12))
		Expect(report.Summary.MeanWait.StdDev).To(BeNumerically(">", 0))
		Expect(report.Summary.AvgInQueue.Mean).To(BeNumerically("<=", report.Summary.AvgInSystem.Mean))
	})

	It("should report a zero deviation for a single replication", func() {
		spec.Replications = 1
		report, err := Replicate(ctx, spec)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Summary.MeanWait.StdDev).To(BeZero())
		Expect(report.Summary.MeanWait.Mean).To(Equal(report.Replications[0].Metrics.MeanWait))
	})

	It("should publish every replication once all have finished", func() {
		registry := prometheus.NewRegistry()
		emitter := metrics.InitMetricsAndEmitter(registry)
		report, err := Replicate(ctx, spec, WithEmitter(emitter))
		Expect(err).NotTo(HaveOccurred())

		last := report.Replications[len(report.Replications)-1].Metrics
		Expect(sampleValues(registry, constants.MMSRunsTotal)).To(Equal(map[string]float64{"linear": 6}))
		Expect(sampleValues(registry, constants.MMSUnitsTotal)).To(Equal(map[string]float64{"": 6 * 300}))
		Expect(sampleValues(registry, constants.MMSMeanWaitTime)).To(Equal(map[string]float64{"": last.MeanWait}))
		Expect(sampleValues(registry, constants.MMSServerUtilization)).To(Equal(map[string]float64{
			"1": last.ServerUtilization[0],
			"2": last.ServerUtilization[1],
		}))
	})

	It("should reject invalid replication settings", func() {
		spec.Replications = 0
		_, err := Replicate(ctx, spec)
		Expect(config.IsConfigurationError(err)).To(BeTrue())
	})

	It("should stop on a cancelled context", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Replicate(cancelled, spec)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Result", func() {
	It("should expose per-unit records with a stable field order", func() {
		result, err := Execute(2, 1, 2, 3, &constantSource{value: 0.25}, config.PoolLinear)
		Expect(err).NotTo(HaveOccurred())
		for _, u := range result.Units {
			record := u.Record()
			Expect(record).To(HaveLen(len(core.UnitFieldNames)))
			for i, name := range core.UnitFieldNames {
				Expect(record).To(HaveKeyWithValue(name, u.Values()[i]))
			}
		}
	})
})
