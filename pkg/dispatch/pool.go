package dispatch

import (
	"container/heap"
	"fmt"

	"github.com/llm-d-incubation/mms-simulator/pkg/config"
)

// Set of servers ordered by the time each becomes free.
// Server indices are 0-based; ties are broken by lowest index.
type ServerPool interface {
	// index of the server with the earliest free time
	Select() int
	// mark the server busy until finishTime; free times never decrease
	Release(id int, finishTime float64)
	// time at which the server becomes free
	FreeAt(id int) float64
	// number of servers
	Size() int
}

// NewPool creates a server pool of the given kind
func NewPool(kind string, servers int) (ServerPool, error) {
	if servers < 1 {
		return nil, &config.ConfigurationError{Field: "servers", Value: servers, Reason: "must be at least 1"}
	}
	switch kind {
	case "", config.PoolLinear:
		return NewLinearPool(servers), nil
	case config.PoolHeap:
		return NewHeapPool(servers), nil
	default:
		return nil, &config.ConfigurationError{Field: "pool", Value: kind, Reason: "unknown server pool"}
	}
}

func checkRelease(id int, current, finishTime float64) {
	if finishTime < current {
		panic(fmt.Sprintf("server %d free time would decrease from %v to %v", id, current, finishTime))
	}
}

// Pool backed by a plain array, O(s) selection
type LinearPool struct {
	freeAt []float64
}

func NewLinearPool(servers int) *LinearPool {
	return &LinearPool{freeAt: make([]float64, servers)}
}

func (p *LinearPool) Select() int {
	best := 0
	for i := 1; i < len(p.freeAt); i++ {
		if p.freeAt[i] < p.freeAt[best] {
			best = i
		}
	}
	return best
}

func (p *LinearPool) Release(id int, finishTime float64) {
	checkRelease(id, p.freeAt[id], finishTime)
	p.freeAt[id] = finishTime
}

func (p *LinearPool) FreeAt(id int) float64 {
	return p.freeAt[id]
}

func (p *LinearPool) Size() int {
	return len(p.freeAt)
}

// Pool backed by a min-heap keyed by (free time, index), O(log s) selection
type HeapPool struct {
	servers serverHeap
	byID    []*serverEntry
}

type serverEntry struct {
	id     int
	freeAt float64
	index  int // position in the heap
}

type serverHeap []*serverEntry

func (h serverHeap) Len() int { return len(h) }

func (h serverHeap) Less(i, j int) bool {
	if h[i].freeAt != h[j].freeAt {
		return h[i].freeAt < h[j].freeAt
	}
	return h[i].id < h[j].id
}

func (h serverHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *serverHeap) Push(x any) {
	e := x.(*serverEntry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *serverHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

func NewHeapPool(servers int) *HeapPool {
	p := &HeapPool{
		servers: make(serverHeap, servers),
		byID:    make([]*serverEntry, servers),
	}
	for i := range servers {
		e := &serverEntry{id: i, index: i}
		p.servers[i] = e
		p.byID[i] = e
	}
	heap.Init(&p.servers)
	return p
}

func (p *HeapPool) Select() int {
	return p.servers[0].id
}

func (p *HeapPool) Release(id int, finishTime float64) {
	e := p.byID[id]
	checkRelease(id, e.freeAt, finishTime)
	e.freeAt = finishTime
	heap.Fix(&p.servers, e.index)
}

func (p *HeapPool) FreeAt(id int) float64 {
	return p.byID[id].freeAt
}

func (p *HeapPool) Size() int {
	return len(p.byID)
}
