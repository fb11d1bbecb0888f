package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/llm-d-incubation/mms-simulator/pkg/core"
)

// header of the step trace CSV
var TraceFieldNames = []string{"time", "count"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteUnitsCSV writes one row per unit with a core.UnitFieldNames header
func WriteUnitsCSV(w io.Writer, units []core.Unit) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(core.UnitFieldNames); err != nil {
		return fmt.Errorf("writing units header: %w", err)
	}
	row := make([]string, len(core.UnitFieldNames))
	for i := range units {
		u := &units[i]
		row[0] = strconv.Itoa(u.ID)
		row[3] = strconv.Itoa(u.ServerID)
		for j, v := range u.Values() {
			if j == 0 || j == 3 {
				continue
			}
			row[j] = formatFloat(v)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing unit %d: %w", u.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTraceCSV writes the step trace as time,count rows
func WriteTraceCSV(w io.Writer, trace *core.StepTrace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TraceFieldNames); err != nil {
		return fmt.Errorf("writing trace header: %w", err)
	}
	for i := range trace.Len() {
		if err := cw.Write([]string{formatFloat(trace.Times[i]), strconv.Itoa(trace.Counts[i])}); err != nil {
			return fmt.Errorf("writing trace point %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
