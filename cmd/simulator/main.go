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
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/llm-d-incubation/mms-simulator/internal/logger"
	"github.com/llm-d-incubation/mms-simulator/pkg/config"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mms-simulator",
		Short: "Discrete-event simulator of M/M/s queueing systems",
		Long: `mms-simulator draws Poisson arrivals and exponential service times, assigns
each unit to the earliest free of s servers and reports waiting times, time-weighted
queue lengths and server utilization of the resulting trace.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := logger.InitLogger()
			return err
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file with flag values (yaml)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newReplicateCmd())
	root.AddCommand(newServeCmd())
	return root
}

func main() {
	err := newRootCmd().Execute()
	logger.SyncLogger()
	if err != nil {
		if config.IsConfigurationError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintln(os.Stderr, "reading config:", err)
			os.Exit(1)
		}
	}
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
