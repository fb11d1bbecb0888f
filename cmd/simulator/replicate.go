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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/llm-d-incubation/mms-simulator/pkg/config"
	"github.com/llm-d-incubation/mms-simulator/pkg/export"
	"github.com/llm-d-incubation/mms-simulator/pkg/simulator"
)

func newReplicateCmd() *cobra.Command {
	var replications, parallelism int

	cmd := &cobra.Command{
		Use:   "replicate",
		Short: "Run independent replications and summarize their spread",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := simulationSpec(cmd)
			if err != nil {
				return err
			}
			report, err := simulator.Replicate(cmd.Context(), config.ReplicationSpec{
				Simulation:   spec,
				Replications: replications,
				Parallelism:  parallelism,
			})
			if err != nil {
				return err
			}

			format := viper.GetString(flagFormat)
			if format == export.FormatText {
				return export.WriteSummary(cmd.OutOrStdout(), export.ReplicationSummary(report))
			}
			return export.WriteReport(cmd.OutOrStdout(), format, report)
		},
	}

	addSimulationFlags(cmd)
	cmd.Flags().IntVarP(&replications, "replications", "r", config.DefaultReplications, "number of independent replications")
	cmd.Flags().IntVarP(&parallelism, "parallelism", "p", 0, "maximum concurrent replications (0 = unlimited)")
	return cmd
}
