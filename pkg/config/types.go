package config

// Data related to a simulation run
type SimulationData struct {
	Spec SimulationSpec `json:"spec" yaml:"spec"`
}

// Specifications of an M/M/s simulation run
type SimulationSpec struct {
	ArrivalRate float64 `json:"arrivalRate" yaml:"arrivalRate"`       // lambda, arrivals per time unit (per hour if PerHour)
	ServiceRate float64 `json:"serviceRate" yaml:"serviceRate"`       // mu, completions per time unit per server (per hour if PerHour)
	Servers     int     `json:"servers" yaml:"servers"`               // number of parallel servers
	Units       int     `json:"units" yaml:"units"`                   // number of simulated arrivals
	PerHour     bool    `json:"perHour" yaml:"perHour"`               // rates are per hour, simulate in minutes
	Seed        uint64  `json:"seed" yaml:"seed"`                     // random generator seed
	Pool        string  `json:"pool,omitempty" yaml:"pool,omitempty"` // server pool implementation (linear or heap)
}

// Specifications of a set of independent replications of one simulation
type ReplicationSpec struct {
	Simulation   SimulationSpec `json:"simulation" yaml:"simulation"`
	Replications int            `json:"replications" yaml:"replications"` // number of independent runs
	Parallelism  int            `json:"parallelism" yaml:"parallelism"`   // max concurrent runs (0 = unlimited)
}
