package aggregator

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/llm-d-incubation/mms-simulator/internal/logger"
	"github.com/llm-d-incubation/mms-simulator/pkg/core"
)

// elapsed time used when a run has no events or no duration
const degenerateElapsed = 1.0

// Time integrals of the occupancy signal
type Areas struct {
	System float64 // integral of number in system
	Queue  float64 // integral of number waiting
	End    float64 // last event instant
}

// Sweep integrates the occupancy signal over sorted events and builds the step trace.
// Each interval is weighted by the occupancy held before the event closing it.
func Sweep(sorted []core.Event, servers int) (*Areas, *core.StepTrace) {
	areas := &Areas{}
	trace := &core.StepTrace{
		Times:  make([]float64, 0, 2*len(sorted)+1),
		Counts: make([]int, 0, 2*len(sorted)+1),
	}
	trace.AddPoint(0, 0)

	count := 0
	last := 0.0
	for _, e := range sorted {
		if e.Time < last {
			panic(fmt.Sprintf("events out of order: %v after %v", e.Time, last))
		}
		if dt := e.Time - last; dt > 0 {
			areas.System += float64(count) * dt
			areas.Queue += float64(max(0, count-servers)) * dt
		}
		before := count
		count += e.Delta
		if count < 0 {
			panic(fmt.Sprintf("occupancy went negative at %v (unit %d)", e.Time, e.Unit))
		}
		trace.AddStep(e.Time, before, count)
		last = e.Time
	}
	if count != 0 {
		panic(fmt.Sprintf("%d units still in system after the last event", count))
	}
	areas.End = last
	return areas, trace
}

// Aggregate computes the run metrics and step trace from the dispatch outcome.
// The events slice is not modified.
func Aggregate(units []core.Unit, servers []core.ServerState, events []core.Event) (*core.RunMetrics, *core.StepTrace) {
	sorted := slices.Clone(events)
	SortEvents(sorted, units)
	areas, trace := Sweep(sorted, len(servers))

	elapsed := areas.End
	if elapsed <= 0 {
		elapsed = degenerateElapsed
	}

	metrics := &core.RunMetrics{
		AvgInSystem:       areas.System / elapsed,
		AvgInQueue:        areas.Queue / elapsed,
		TotalTime:         elapsed,
		ServerUtilization: make([]float64, len(servers)),
	}

	if len(units) > 0 {
		waits := make([]float64, len(units))
		systemTimes := make([]float64, len(units))
		for i := range units {
			waits[i] = units[i].Wait
			systemTimes[i] = units[i].SystemTime
		}
		metrics.MeanWait = stat.Mean(waits, nil)
		metrics.MeanSystemTime = stat.Mean(systemTimes, nil)
		metrics.MaxWait = floats.Max(waits)
	}

	for i, s := range servers {
		metrics.ServerUtilization[i] = 100 * s.BusyDuration / elapsed
	}
	if len(servers) > 0 {
		metrics.MeanUtilization = stat.Mean(metrics.ServerUtilization, nil)
	}

	logger.Log.Debugw("aggregated run", "events", len(sorted), "areaSystem", areas.System,
		"areaQueue", areas.Queue, "elapsed", elapsed)
	return metrics, trace
}
