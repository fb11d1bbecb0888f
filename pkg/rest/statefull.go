package rest

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/llm-d-incubation/mms-simulator/pkg/simulator"
)

// A statefull REST server keeping recent runs for later retrieval
type StateFullServer struct {
	BaseServer

	mu    sync.RWMutex
	runs  map[string]*simulator.Result
	order []string // run ids, oldest first
}

// create a statefull REST server
func NewStateFullServer() *StateFullServer {
	server := &StateFullServer{
		BaseServer: *NewBaseServer(),
		runs:       make(map[string]*simulator.Result),
	}

	server.router.POST("/simulate", server.simulateAndStore)
	server.router.POST("/replicate", server.replicate)

	server.router.GET("/runs", server.getRuns)
	server.router.GET("/runs/:id", server.getRun)
	server.router.GET("/runs/:id/metrics", server.getRunMetrics)
	server.router.GET("/runs/:id/units", server.getRunUnits)
	server.router.GET("/runs/:id/trace", server.getRunTrace)
	server.router.DELETE("/runs/:id", server.removeRun)

	return server
}

func (server *StateFullServer) store(result *simulator.Result) {
	server.mu.Lock()
	defer server.mu.Unlock()
	if len(server.order) >= DefaultMaxStoredRuns {
		oldest := server.order[0]
		server.order = server.order[1:]
		delete(server.runs, oldest)
	}
	server.runs[result.RunID] = result
	server.order = append(server.order, result.RunID)
}

func (server *StateFullServer) lookup(c *gin.Context) (*simulator.Result, bool) {
	id := c.Param("id")
	server.mu.RLock()
	result, ok := server.runs[id]
	server.mu.RUnlock()
	if !ok {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "run " + id + " not found"})
	}
	return result, ok
}

func (server *StateFullServer) simulateAndStore(c *gin.Context) {
	result, ok := server.runSimulation(c)
	if !ok {
		return
	}
	server.store(result)
	c.IndentedJSON(http.StatusOK, result)
}

func (server *StateFullServer) getRuns(c *gin.Context) {
	server.mu.RLock()
	ids := append([]string{}, server.order...)
	server.mu.RUnlock()
	c.IndentedJSON(http.StatusOK, ids)
}

func (server *StateFullServer) getRun(c *gin.Context) {
	if result, ok := server.lookup(c); ok {
		c.IndentedJSON(http.StatusOK, result)
	}
}

func (server *StateFullServer) getRunMetrics(c *gin.Context) {
	if result, ok := server.lookup(c); ok {
		c.IndentedJSON(http.StatusOK, result.Metrics)
	}
}

func (server *StateFullServer) getRunUnits(c *gin.Context) {
	if result, ok := server.lookup(c); ok {
		writeUnitsCSV(c, result)
	}
}

func (server *StateFullServer) getRunTrace(c *gin.Context) {
	if result, ok := server.lookup(c); ok {
		writeTraceCSV(c, result)
	}
}

func (server *StateFullServer) removeRun(c *gin.Context) {
	result, ok := server.lookup(c)
	if !ok {
		return
	}
	server.mu.Lock()
	delete(server.runs, result.RunID)
	for i, id := range server.order {
		if id == result.RunID {
			server.order = append(server.order[:i], server.order[i+1:]...)
			break
		}
	}
	server.mu.Unlock()
	c.IndentedJSON(http.StatusOK, gin.H{"message": "run " + result.RunID + " removed"})
}
