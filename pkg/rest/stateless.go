package rest

// A stateless REST server: every call runs a fresh simulation
type StateLessServer struct {
	BaseServer
}

// create a stateless REST server
func NewStateLessServer() *StateLessServer {
	server := &StateLessServer{
		BaseServer: *NewBaseServer(),
	}

	server.router.POST("/simulate", server.simulate)
	server.router.POST("/simulate/units", server.simulateUnits)
	server.router.POST("/simulate/trace", server.simulateTrace)
	server.router.POST("/replicate", server.replicate)

	return server
}
