/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/llm-d-incubation/mms-simulator/internal/metrics"
	"github.com/llm-d-incubation/mms-simulator/pkg/export"
	"github.com/llm-d-incubation/mms-simulator/pkg/simulator"
)

func newRunCmd() *cobra.Command {
	var unitsCSV, traceCSV, metricsFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation and print its metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := simulationSpec(cmd)
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			emitter := metrics.InitMetricsAndEmitter(registry)
			sim, err := simulator.NewSimulator(spec, simulator.WithEmitter(emitter))
			if err != nil {
				return err
			}
			result, err := sim.Run(cmd.Context())
			if err != nil {
				return err
			}

			if err := writeFile(unitsCSV, func(w io.Writer) error { return export.WriteUnitsCSV(w, result.Units) }); err != nil {
				return err
			}
			if err := writeFile(traceCSV, func(w io.Writer) error { return export.WriteTraceCSV(w, result.Trace) }); err != nil {
				return err
			}
			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
					return fmt.Errorf("writing metrics file: %w", err)
				}
			}

			format := viper.GetString(flagFormat)
			if format == export.FormatText {
				return export.WriteSummary(cmd.OutOrStdout(), export.ResultSummary(result))
			}
			return export.WriteReport(cmd.OutOrStdout(), format, result)
		},
	}

	addSimulationFlags(cmd)
	cmd.Flags().StringVar(&unitsCSV, "units-csv", "", "write per-unit records to this CSV file")
	cmd.Flags().StringVar(&traceCSV, "trace-csv", "", "write the occupancy step trace to this CSV file")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics of the run to this textfile")
	return cmd
}

// writeFile creates path and lets write fill it; an empty path is skipped
func writeFile(path string, write func(w io.Writer) error) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
