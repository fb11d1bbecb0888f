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

	"github.com/llm-d-incubation/mms-simulator/pkg/rest"
)

func newServeCmd() *cobra.Command {
	var statefull bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve simulations over a REST API",
		Long: `Start a REST API server. The stateless server (default) answers every request
with a fresh run; the statefull server (-F) also keeps recent runs for retrieval.
Listens on $MMS_HOST:$MMS_PORT (default localhost:8080).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var server rest.RESTServer
			if statefull {
				server = rest.NewStateFullServer()
			} else {
				server = rest.NewStateLessServer()
			}
			return server.Run()
		},
	}
	cmd.Flags().BoolVarP(&statefull, "statefull", "F", false, "keep recent runs in memory")
	return cmd
}
