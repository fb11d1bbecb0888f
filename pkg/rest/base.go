package rest

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/llm-d-incubation/mms-simulator/internal/logger"
	"github.com/llm-d-incubation/mms-simulator/internal/metrics"
)

type RESTServer interface {
	Run() error
	Handler() *gin.Engine
}

// Base REST server
type BaseServer struct {
	router  *gin.Engine
	emitter *metrics.MetricsEmitter
}

// create a base server exposing health and Prometheus metrics of the runs it serves
func NewBaseServer() *BaseServer {
	registry := prometheus.NewRegistry()
	server := &BaseServer{
		router:  gin.Default(),
		emitter: metrics.InitMetricsAndEmitter(registry),
	}
	server.router.GET("/healthz", healthz)
	server.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	return server
}

// start server
func (server *BaseServer) Run() error {
	var host, port string
	if host = os.Getenv(RestHostEnvName); host == "" {
		host = DefaultRestHost
	}
	if port = os.Getenv(RestPortEnvName); port == "" {
		port = DefaultRestPort
	}
	logger.Log.Infow("starting REST server", "address", host+":"+port)
	return server.router.Run(host + ":" + port)
}

// router, for embedding in another server or testing
func (server *BaseServer) Handler() *gin.Engine {
	return server.router
}
