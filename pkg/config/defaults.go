package config

/**
 * Environment variables
 */

// prefix of environment variables overriding simulation parameters
const EnvPrefix = "MMS"

/**
 * Parameters
 */

// default arrival rate (per hour)
const DefaultArrivalRate = 45.0

// default service rate per server (per hour)
const DefaultServiceRate = 60.0

// default number of servers
const DefaultServers = 1

// default number of simulated units
const DefaultUnits = 50

// rates are entered per hour by default
const DefaultPerHour = true

// default random generator seed
const DefaultSeed uint64 = 1

// smallest simulated (effective) rate; slower rates let a single exponential
// sample overflow to +Inf
const MinRate = 1e-9

// conversion factor of per-hour rates to per-minute rates
const MinutesPerHour = 60.0

// server pool implementations
const (
	PoolLinear = "linear"
	PoolHeap   = "heap"
)

// default server pool implementation
const DefaultPool = PoolLinear

// default number of replications
const DefaultReplications = 10

// DefaultSimulationSpec returns the parameters used when none are given
func DefaultSimulationSpec() SimulationSpec {
	return SimulationSpec{
		ArrivalRate: DefaultArrivalRate,
		ServiceRate: DefaultServiceRate,
		Servers:     DefaultServers,
		Units:       DefaultUnits,
		PerHour:     DefaultPerHour,
		Seed:        DefaultSeed,
		Pool:        DefaultPool,
	}
}
