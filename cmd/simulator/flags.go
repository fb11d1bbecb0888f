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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/llm-d-incubation/mms-simulator/pkg/config"
)

// flag names, also the viper keys and (upper-cased, MMS_ prefixed) env names
const (
	flagSpec        = "spec"
	flagArrivalRate = "arrival-rate"
	flagServiceRate = "service-rate"
	flagServers     = "servers"
	flagUnits       = "units"
	flagPerHour     = "per-hour"
	flagSeed        = "seed"
	flagPool        = "pool"
	flagFormat      = "format"
)

// register the simulation parameters on a command
func addSimulationFlags(cmd *cobra.Command) {
	defaults := config.DefaultSimulationSpec()
	flags := cmd.Flags()
	flags.String(flagSpec, "", "simulation spec file (yaml or json); flags set explicitly override it")
	flags.Float64P(flagArrivalRate, "l", defaults.ArrivalRate, "arrival rate lambda")
	flags.Float64P(flagServiceRate, "m", defaults.ServiceRate, "service rate mu per server")
	flags.IntP(flagServers, "s", defaults.Servers, "number of parallel servers")
	flags.IntP(flagUnits, "n", defaults.Units, "number of simulated units")
	flags.Bool(flagPerHour, defaults.PerHour, "rates are per hour and converted to per minute")
	flags.Uint64(flagSeed, defaults.Seed, "random generator seed")
	flags.String(flagPool, defaults.Pool, "server pool implementation (linear or heap)")
	flags.StringP(flagFormat, "o", "text", "output format (text, yaml or json)")
}

// bind the flags of the executing command to viper; run and replicate share the keys
func bindSimulationFlags(cmd *cobra.Command) error {
	for _, name := range []string{flagArrivalRate, flagServiceRate, flagServers, flagUnits, flagPerHour, flagSeed, flagPool, flagFormat} {
		if err := viper.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

// simulationSpec layers a spec file, config file, env and flags
func simulationSpec(cmd *cobra.Command) (config.SimulationSpec, error) {
	if err := bindSimulationFlags(cmd); err != nil {
		return config.SimulationSpec{}, err
	}
	spec := config.SimulationSpec{
		ArrivalRate: viper.GetFloat64(flagArrivalRate),
		ServiceRate: viper.GetFloat64(flagServiceRate),
		Servers:     viper.GetInt(flagServers),
		Units:       viper.GetInt(flagUnits),
		PerHour:     viper.GetBool(flagPerHour),
		Seed:        viper.GetUint64(flagSeed),
		Pool:        viper.GetString(flagPool),
	}

	path, _ := cmd.Flags().GetString(flagSpec)
	if path == "" {
		return spec, nil
	}
	loaded, err := config.LoadSpec(path)
	if err != nil {
		return spec, fmt.Errorf("loading %s: %w", path, err)
	}
	flags := cmd.Flags()
	if flags.Changed(flagArrivalRate) {
		loaded.ArrivalRate = spec.ArrivalRate
	}
	if flags.Changed(flagServiceRate) {
		loaded.ServiceRate = spec.ServiceRate
	}
	if flags.Changed(flagServers) {
		loaded.Servers = spec.Servers
	}
	if flags.Changed(flagUnits) {
		loaded.Units = spec.Units
	}
	if flags.Changed(flagPerHour) {
		loaded.PerHour = spec.PerHour
	}
	if flags.Changed(flagSeed) {
		loaded.Seed = spec.Seed
	}
	if flags.Changed(flagPool) {
		loaded.Pool = spec.Pool
	}
	return *loaded, nil
}
