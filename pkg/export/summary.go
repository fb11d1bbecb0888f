package export

import (
	"fmt"
	"strconv"

	"github.com/llm-d-incubation/mms-simulator/pkg/simulator"
)

func timeUnit(perHour bool) string {
	if perHour {
		return "min"
	}
	return "time units"
}

// ResultSummary lists the headline metrics of a run
func ResultSummary(result *simulator.Result) []SummaryLine {
	m := result.Metrics
	unit := timeUnit(result.Spec.PerHour)
	status := "stable"
	if m.Saturated() {
		status = "saturated"
	}

	lines := []SummaryLine{
		{Label: "run", Value: result.RunID},
		{Label: "servers", Value: strconv.Itoa(result.Spec.Servers)},
		{Label: "units", Value: strconv.Itoa(len(result.Units))},
		{Label: "mean wait (Wq)", Value: fmt.Sprintf("%.4f %s", m.MeanWait, unit)},
		{Label: "mean time in system (Ws)", Value: fmt.Sprintf("%.4f %s", m.MeanSystemTime, unit)},
		{Label: "mean queue length (Lq)", Value: fmt.Sprintf("%.4f", m.AvgInQueue)},
		{Label: "mean number in system (Ls)", Value: fmt.Sprintf("%.4f", m.AvgInSystem)},
		{Label: "utilization (rho)", Value: fmt.Sprintf("%.2f%% (%s)", m.MeanUtilization, status)},
		{Label: "max wait", Value: fmt.Sprintf("%.4f %s", m.MaxWait, unit)},
		{Label: "simulated time", Value: fmt.Sprintf("%.4f %s", m.TotalTime, unit)},
	}
	for i, u := range m.ServerUtilization {
		lines = append(lines, SummaryLine{Label: fmt.Sprintf("server %d utilization", i+1), Value: fmt.Sprintf("%.2f%%", u)})
	}
	return lines
}

// ReplicationSummary lists mean and standard deviation of each metric across replications
func ReplicationSummary(report *simulator.ReplicationReport) []SummaryLine {
	s := report.Summary
	format := func(st simulator.Statistic) string {
		return fmt.Sprintf("%.4f ± %.4f", st.Mean, st.StdDev)
	}
	return []SummaryLine{
		{Label: "replications", Value: strconv.Itoa(len(report.Replications))},
		{Label: "mean wait (Wq)", Value: format(s.MeanWait)},
		{Label: "mean time in system (Ws)", Value: format(s.MeanSystemTime)},
		{Label: "mean queue length (Lq)", Value: format(s.AvgInQueue)},
		{Label: "mean number in system (Ls)", Value: format(s.AvgInSystem)},
		{Label: "utilization (rho) %", Value: format(s.MeanUtilization)},
		{Label: "max wait", Value: format(s.MaxWait)},
	}
}
