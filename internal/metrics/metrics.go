package metrics

import (
	"context"
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/llm-d-incubation/mms-simulator/internal/constants"
	"github.com/llm-d-incubation/mms-simulator/pkg/config"
	"github.com/llm-d-incubation/mms-simulator/pkg/core"
)

// MetricsEmitter handles emission of simulation metrics
type MetricsEmitter struct {
	meanWait          prometheus.Gauge
	meanSystemTime    prometheus.Gauge
	avgInSystem       prometheus.Gauge
	avgQueueLength    prometheus.Gauge
	maxWait           prometheus.Gauge
	simulatedTime     prometheus.Gauge
	serverUtilization *prometheus.GaugeVec
	runsTotal         *prometheus.CounterVec
	unitsTotal        prometheus.Counter
	configErrors      *prometheus.CounterVec
}

// InitMetricsAndEmitter registers all simulation metrics with the provided registry
// and returns an emitter writing to them
func InitMetricsAndEmitter(registry prometheus.Registerer) *MetricsEmitter {
	m := &MetricsEmitter{
		meanWait: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: constants.MMSMeanWaitTime,
			Help: "Mean waiting time of the last simulation run",
		}),
		meanSystemTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: constants.MMSMeanSystemTime,
			Help: "Mean time in system of the last simulation run",
		}),
		avgInSystem: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: constants.MMSAvgNumInSystem,
			Help: "Time-weighted mean number of units in system of the last simulation run",
		}),
		avgQueueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: constants.MMSAvgQueueLength,
			Help: "Time-weighted mean number of waiting units of the last simulation run",
		}),
		maxWait: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: constants.MMSMaxWaitTime,
			Help: "Longest waiting time of the last simulation run",
		}),
		simulatedTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: constants.MMSSimulatedTime,
			Help: "Simulated time covered by the last simulation run",
		}),
		serverUtilization: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: constants.MMSServerUtilization,
				Help: "Busy percentage of each server in the last simulation run",
			},
			[]string{constants.LabelServer},
		),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: constants.MMSRunsTotal,
				Help: "Total number of completed simulation runs",
			},
			[]string{constants.LabelPool},
		),
		unitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: constants.MMSUnitsTotal,
			Help: "Total number of simulated units",
		}),
		configErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: constants.MMSConfigurationErrorsTotal,
				Help: "Total number of rejected simulation configurations",
			},
			[]string{constants.LabelField},
		),
	}

	registry.MustRegister(
		m.meanWait,
		m.meanSystemTime,
		m.avgInSystem,
		m.avgQueueLength,
		m.maxWait,
		m.simulatedTime,
		m.serverUtilization,
		m.runsTotal,
		m.unitsTotal,
		m.configErrors,
	)
	return m
}

// EmitRunMetrics publishes the outcome of a completed run
func (m *MetricsEmitter) EmitRunMetrics(ctx context.Context, pool string, units int, metrics *core.RunMetrics) {
	if m == nil || metrics == nil {
		return
	}

	m.meanWait.Set(metrics.MeanWait)
	m.meanSystemTime.Set(metrics.MeanSystemTime)
	m.avgInSystem.Set(metrics.AvgInSystem)
	m.avgQueueLength.Set(metrics.AvgInQueue)
	m.maxWait.Set(metrics.MaxWait)
	m.simulatedTime.Set(metrics.TotalTime)

	m.serverUtilization.Reset()
	for i, u := range metrics.ServerUtilization {
		m.serverUtilization.With(prometheus.Labels{constants.LabelServer: strconv.Itoa(i + 1)}).Set(u)
	}

	m.runsTotal.With(prometheus.Labels{constants.LabelPool: pool}).Inc()
	m.unitsTotal.Add(float64(units))
}

// EmitErrorMetrics counts a rejected configuration; other errors are ignored
func (m *MetricsEmitter) EmitErrorMetrics(ctx context.Context, err error) {
	if m == nil {
		return
	}
	var cfgErr *config.ConfigurationError
	if !errors.As(err, &cfgErr) {
		return
	}
	m.configErrors.With(prometheus.Labels{constants.LabelField: cfgErr.Field}).Inc()
}
