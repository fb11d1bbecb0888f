package core

import (
	"bytes"
	"fmt"
)

// mean utilization (percent) at or above which a run is reported as saturated
const SaturationThreshold = 99.0

// Aggregate results of one simulation run
type RunMetrics struct {
	MeanWait          float64   `json:"meanWait" yaml:"meanWait"`                   // Wq
	MeanSystemTime    float64   `json:"meanSystemTime" yaml:"meanSystemTime"`       // Ws
	AvgInSystem       float64   `json:"avgInSystem" yaml:"avgInSystem"`             // Ls, time-weighted
	AvgInQueue        float64   `json:"avgInQueue" yaml:"avgInQueue"`               // Lq, time-weighted
	ServerUtilization []float64 `json:"serverUtilization" yaml:"serverUtilization"` // percent, indexed by server
	MeanUtilization   float64   `json:"meanUtilization" yaml:"meanUtilization"`     // rho, percent
	TotalTime         float64   `json:"totalTime" yaml:"totalTime"`                 // last event instant
	MaxWait           float64   `json:"maxWait" yaml:"maxWait"`
}

// Saturated reports whether the servers were busy for (almost) the whole run
func (m *RunMetrics) Saturated() bool {
	return m.MeanUtilization >= SaturationThreshold
}

func (m *RunMetrics) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Wq=%v; Ws=%v; ", m.MeanWait, m.MeanSystemTime)
	fmt.Fprintf(&b, "Lq=%v; Ls=%v; ", m.AvgInQueue, m.AvgInSystem)
	fmt.Fprintf(&b, "rho=%v; util=%v; ", m.MeanUtilization, m.ServerUtilization)
	fmt.Fprintf(&b, "T=%v; maxWait=%v; ", m.TotalTime, m.MaxWait)
	return b.String()
}

// Piecewise-constant number of units in the system over time.
// Times and Counts are parallel; each event instant contributes two points
// (count before, count after) so a step plot shows vertical jumps there.
type StepTrace struct {
	Times  []float64 `json:"times" yaml:"times"`
	Counts []int     `json:"counts" yaml:"counts"`
}

func (t *StepTrace) Len() int {
	return len(t.Times)
}

func (t *StepTrace) append(time float64, count int) {
	t.Times = append(t.Times, time)
	t.Counts = append(t.Counts, count)
}

// AddStep records the occupancy just before and just after an event at the given time
func (t *StepTrace) AddStep(time float64, before, after int) {
	t.append(time, before)
	t.append(time, after)
}

// AddPoint records a single occupancy sample
func (t *StepTrace) AddPoint(time float64, count int) {
	t.append(time, count)
}
