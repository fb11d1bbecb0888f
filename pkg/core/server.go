package core

import "fmt"

// State of one server at the end of a run
type ServerState struct {
	ID           int     `json:"id" yaml:"id"`                     // 1-based server id
	NextFreeTime float64 `json:"nextFreeTime" yaml:"nextFreeTime"` // instant the server becomes available
	BusyDuration float64 `json:"busyDuration" yaml:"busyDuration"` // cumulative service time delivered
	Served       int     `json:"served" yaml:"served"`             // number of units assigned
}

func (s *ServerState) String() string {
	return fmt.Sprintf("server %d: free=%v; busy=%v; served=%d", s.ID, s.NextFreeTime, s.BusyDuration, s.Served)
}
