package core

// Per-unit record of one simulated request
type Unit struct {
	ID              int     `json:"id" yaml:"id"`                           // 1-based arrival order
	Interarrival    float64 `json:"interarrival" yaml:"interarrival"`       // gap since the previous arrival
	Arrival         float64 `json:"arrival" yaml:"arrival"`                 // absolute arrival instant
	ServerID        int     `json:"serverId" yaml:"serverId"`               // 1-based assigned server
	StartService    float64 `json:"startService" yaml:"startService"`       // instant service begins
	Wait            float64 `json:"wait" yaml:"wait"`                       // StartService - Arrival
	ServiceDuration float64 `json:"serviceDuration" yaml:"serviceDuration"` // sampled service time
	EndService      float64 `json:"endService" yaml:"endService"`           // StartService + ServiceDuration
	SystemTime      float64 `json:"systemTime" yaml:"systemTime"`           // EndService - Arrival
	ServerIdle      float64 `json:"serverIdle" yaml:"serverIdle"`           // idle gap of the server before this start
}

// Field names of a unit record, in export order.
// Exported files depend on this order; append only.
var UnitFieldNames = []string{
	"id",
	"interarrival",
	"arrival",
	"server_id",
	"start_service",
	"wait",
	"service_dur",
	"end_service",
	"system_time",
	"server_idle",
}

// Values returns the numeric fields of the unit in UnitFieldNames order
func (u *Unit) Values() []float64 {
	return []float64{
		float64(u.ID),
		u.Interarrival,
		u.Arrival,
		float64(u.ServerID),
		u.StartService,
		u.Wait,
		u.ServiceDuration,
		u.EndService,
		u.SystemTime,
		u.ServerIdle,
	}
}

// Record returns the unit as a flat field name to value mapping
func (u *Unit) Record() map[string]float64 {
	values := u.Values()
	record := make(map[string]float64, len(UnitFieldNames))
	for i, name := range UnitFieldNames {
		record[name] = values[i]
	}
	return record
}
