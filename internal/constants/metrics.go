// Package constants provides centralized constant definitions for the simulator.
package constants

// Simulation Output Metrics
// These metrics are emitted after every simulation run and describe the most recent run.
const (
	// MMSMeanWaitTime is the mean time units spent waiting for a server (Wq).
	MMSMeanWaitTime = "mms_mean_wait_time"

	// MMSMeanSystemTime is the mean time units spent in the system (Ws).
	MMSMeanSystemTime = "mms_mean_system_time"

	// MMSAvgNumInSystem is the time-weighted mean number of units in the system (Ls).
	MMSAvgNumInSystem = "mms_avg_num_in_system"

	// MMSAvgQueueLength is the time-weighted mean number of units waiting (Lq).
	MMSAvgQueueLength = "mms_avg_queue_length"

	// MMSMaxWaitTime is the longest wait observed in the run.
	MMSMaxWaitTime = "mms_max_wait_time"

	// MMSSimulatedTime is the simulated time covered by the run.
	MMSSimulatedTime = "mms_simulated_time"

	// MMSServerUtilization is the percentage of the run each server spent busy.
	MMSServerUtilization = "mms_server_utilization_percent"

	// MMSRunsTotal counts completed simulation runs.
	MMSRunsTotal = "mms_runs_total"

	// MMSUnitsTotal counts simulated units across all runs.
	MMSUnitsTotal = "mms_units_simulated_total"

	// MMSConfigurationErrorsTotal counts rejected simulation requests.
	MMSConfigurationErrorsTotal = "mms_configuration_errors_total"
)

// Metric label keys
const (
	LabelServer = "server"
	LabelPool   = "pool"
	LabelField  = "field"
)
