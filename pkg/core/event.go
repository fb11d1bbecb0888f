package core

// Occupancy changes carried by an event
const (
	Arrival   = +1 // unit enters the system
	Departure = -1 // unit completes service and leaves
)

// A change in the number of units in the system
type Event struct {
	Time  float64 `json:"time" yaml:"time"`
	Delta int     `json:"delta" yaml:"delta"`
	Unit  int     `json:"unit" yaml:"unit"` // id of the unit entering or leaving
}

func (e Event) IsArrival() bool {
	return e.Delta == Arrival
}

func (e Event) IsDeparture() bool {
	return e.Delta == Departure
}
