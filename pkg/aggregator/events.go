package aggregator

import (
	"cmp"
	"slices"

	"github.com/llm-d-incubation/mms-simulator/pkg/core"
)

// order of events sharing the same instant
const (
	rankDeparture       = iota // departures of units that arrived earlier
	rankArrival                // arrivals
	rankSameInstantExit        // departures of units that arrived at this same instant
)

// SortEvents orders events by time. At equal times departures precede arrivals,
// so occupancy is never transiently over-counted; a unit with zero time in the
// system still leaves after it arrives.
func SortEvents(events []core.Event, units []core.Unit) {
	slices.SortFunc(events, func(a, b core.Event) int {
		return cmp.Or(
			cmp.Compare(a.Time, b.Time),
			cmp.Compare(rank(a, units), rank(b, units)),
			cmp.Compare(a.Unit, b.Unit),
		)
	})
}

func rank(e core.Event, units []core.Unit) int {
	if e.IsArrival() {
		return rankArrival
	}
	if i := e.Unit - 1; i >= 0 && i < len(units) && units[i].Arrival == e.Time {
		return rankSameInstantExit
	}
	return rankDeparture
}
