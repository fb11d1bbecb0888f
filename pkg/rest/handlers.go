package rest

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/llm-d-incubation/mms-simulator/internal/logger"
	"github.com/llm-d-incubation/mms-simulator/pkg/config"
	"github.com/llm-d-incubation/mms-simulator/pkg/export"
	"github.com/llm-d-incubation/mms-simulator/pkg/simulator"
)

// Handlers for REST API calls

func healthz(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"status": "ok"})
}

// reply with an error, mapping configuration errors to 400
func (server *BaseServer) fail(c *gin.Context, err error) {
	if config.IsConfigurationError(err) {
		server.emitter.EmitErrorMetrics(c.Request.Context(), err)
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	logger.Log.Errorw("simulation request failed", "error", err)
	c.IndentedJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
}

// bind a simulation spec from the request body, starting from the defaults
func bindSimulationSpec(c *gin.Context) (*config.SimulationSpec, bool) {
	spec := config.DefaultSimulationSpec()
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": "invalid simulation spec: " + err.Error()})
		return nil, false
	}
	return &spec, true
}

func checkSize(units int) error {
	if units > DefaultMaxUnits {
		return &config.ConfigurationError{Field: "units", Value: units, Reason: "exceeds the server limit"}
	}
	return nil
}

// bound units*replications; the factors are checked separately so the product cannot wrap
func checkReplicationSize(units, replications int) error {
	if replications > 0 && units > DefaultMaxUnits/replications {
		return &config.ConfigurationError{
			Field:  "units",
			Value:  units,
			Reason: fmt.Sprintf("times %d replications exceeds the server limit", replications),
		}
	}
	return nil
}

// run one simulation for the spec in the request body
func (server *BaseServer) runSimulation(c *gin.Context) (*simulator.Result, bool) {
	spec, ok := bindSimulationSpec(c)
	if !ok {
		return nil, false
	}
	if err := checkSize(spec.Units); err != nil {
		server.fail(c, err)
		return nil, false
	}
	sim, err := simulator.NewSimulator(*spec, simulator.WithEmitter(server.emitter))
	if err != nil {
		server.fail(c, err)
		return nil, false
	}
	result, err := sim.Run(c.Request.Context())
	if err != nil {
		server.fail(c, err)
		return nil, false
	}
	return result, true
}

func (server *BaseServer) simulate(c *gin.Context) {
	if result, ok := server.runSimulation(c); ok {
		c.IndentedJSON(http.StatusOK, result)
	}
}

func (server *BaseServer) simulateUnits(c *gin.Context) {
	if result, ok := server.runSimulation(c); ok {
		writeUnitsCSV(c, result)
	}
}

func (server *BaseServer) simulateTrace(c *gin.Context) {
	if result, ok := server.runSimulation(c); ok {
		writeTraceCSV(c, result)
	}
}

func (server *BaseServer) replicate(c *gin.Context) {
	spec := config.ReplicationSpec{
		Simulation:   config.DefaultSimulationSpec(),
		Replications: config.DefaultReplications,
	}
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": "invalid replication spec: " + err.Error()})
		return
	}
	if err := checkReplicationSize(spec.Simulation.Units, spec.Replications); err != nil {
		server.fail(c, err)
		return
	}
	report, err := simulator.Replicate(c.Request.Context(), spec, simulator.WithEmitter(server.emitter))
	if err != nil {
		server.fail(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, report)
}

func writeUnitsCSV(c *gin.Context, result *simulator.Result) {
	var buf bytes.Buffer
	if err := export.WriteUnitsCSV(&buf, result.Units); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Header("X-Run-Id", result.RunID)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func writeTraceCSV(c *gin.Context, result *simulator.Result) {
	var buf bytes.Buffer
	if err := export.WriteTraceCSV(&buf, result.Trace); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Header("X-Run-Id", result.RunID)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
