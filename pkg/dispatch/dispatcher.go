package dispatch

import (
	"fmt"
	"math"

	"github.com/llm-d-incubation/mms-simulator/internal/logger"
	"github.com/llm-d-incubation/mms-simulator/pkg/core"
	"github.com/llm-d-incubation/mms-simulator/pkg/sampler"
)

// Outcome of assigning all arrivals to servers
type Dispatch struct {
	Units   []core.Unit        // one record per arrival, in arrival order
	Servers []core.ServerState // final state, indexed by server
	Events  []core.Event       // two events per unit, unsorted
}

// Assigns arriving units to the earliest free server.
// The waiting line is implicit: it is how far a server's free time trails an arrival.
type Dispatcher struct {
	pool ServerPool
}

func NewDispatcher(pool ServerPool) *Dispatcher {
	return &Dispatcher{pool: pool}
}

// Dispatch processes arrivals strictly in arrival order
func (d *Dispatcher) Dispatch(arrivals *sampler.Arrivals) *Dispatch {
	n := arrivals.Len()
	s := d.pool.Size()
	result := &Dispatch{
		Units:   make([]core.Unit, n),
		Servers: make([]core.ServerState, s),
		Events:  make([]core.Event, 0, 2*n),
	}
	busy := make([]float64, s)
	served := make([]int, s)

	for i := range n {
		arrival := arrivals.Times[i]
		duration := arrivals.Durations[i]
		if i > 0 && arrival < arrivals.Times[i-1] {
			panic(fmt.Sprintf("arrival %d at %v precedes arrival %d at %v", i+1, arrival, i, arrivals.Times[i-1]))
		}

		id := d.pool.Select()
		freeAt := d.pool.FreeAt(id)
		start := math.Max(arrival, freeAt)
		end := start + duration

		d.pool.Release(id, end)
		busy[id] += duration
		served[id]++

		result.Units[i] = core.Unit{
			ID:              i + 1,
			Interarrival:    arrivals.Gaps[i],
			Arrival:         arrival,
			ServerID:        id + 1,
			StartService:    start,
			Wait:            start - arrival,
			ServiceDuration: duration,
			EndService:      end,
			SystemTime:      end - arrival,
			ServerIdle:      start - freeAt,
		}
		result.Events = append(result.Events,
			core.Event{Time: arrival, Delta: core.Arrival, Unit: i + 1},
			core.Event{Time: end, Delta: core.Departure, Unit: i + 1})
	}

	for id := range s {
		result.Servers[id] = core.ServerState{
			ID:           id + 1,
			NextFreeTime: d.pool.FreeAt(id),
			BusyDuration: busy[id],
			Served:       served[id],
		}
	}
	logger.Log.Debugw("dispatched units", "units", n, "servers", s)
	return result
}
