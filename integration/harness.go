//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/encodeous/dvsim/sim"
	"github.com/encodeous/dvsim/state"
)

type Signal chan bool

func NewSignal() Signal {
	return make(chan bool)
}
func (s Signal) Trigger() {
	select {
	case <-s:
	default:
		close(s)
	}
}
func (s Signal) Triggered() bool {
	select {
	case <-s:
		return true
	default:
		return false
	}
}
func (s Signal) Wait() {
	<-s
}

type costWatch struct {
	node, dst state.NodeId
	cost      state.Cost
	after     Signal // only armed once this has triggered, may be nil
	sig       Signal
}

// VirtualHarness builds a topology link by link, runs it, and triggers
// signals when nodes reach given costs.
type VirtualHarness struct {
	Topology *state.Topology
	Log      *slog.Logger
	watches  []costWatch
	events   []sim.TraceEvent
	mu       sync.Mutex
}

func (vh *VirtualHarness) NewNodes(n int) {
	costs := make([][]state.Cost, n)
	for i := range costs {
		costs[i] = make([]state.Cost, n)
		for j := range costs[i] {
			if i != j {
				costs[i][j] = state.INF
			}
		}
	}
	vh.Topology = &state.Topology{Costs: costs}
}

func (vh *VirtualHarness) AddLink(a, b state.NodeId, cost state.Cost) {
	vh.Topology.Costs[a][b] = cost
	vh.Topology.Costs[b][a] = cost
}

func (vh *VirtualHarness) ChangeLink(at float64, a, b state.NodeId, cost state.Cost) {
	vh.Topology.LinkChanges = append(vh.Topology.LinkChanges, state.LinkChange{At: at, A: a, B: b, Cost: cost})
}

// WhenCost triggers sig once node's cost to dst equals cost. If after is not
// nil, sig only triggers once after has.
func (vh *VirtualHarness) WhenCost(node, dst state.NodeId, cost state.Cost, after Signal) Signal {
	sig := NewSignal()
	vh.watches = append(vh.watches, costWatch{node, dst, cost, after, sig})
	return sig
}

func (vh *VirtualHarness) observe(ev sim.TraceEvent) {
	vh.mu.Lock()
	vh.events = append(vh.events, ev)
	vh.mu.Unlock()
	if ev.Costs == nil {
		return
	}
	for _, w := range vh.watches {
		if w.node != ev.Node || w.sig.Triggered() {
			continue
		}
		if w.after != nil && !w.after.Triggered() {
			continue
		}
		if ev.Costs[w.dst] == w.cost {
			w.sig.Trigger()
		}
	}
}

func (vh *VirtualHarness) Events() []sim.TraceEvent {
	vh.mu.Lock()
	defer vh.mu.Unlock()
	return vh.events
}

// Start runs the simulation to completion and waits for every trace event to
// be observed.
func (vh *VirtualHarness) Start(ctx context.Context) (*sim.Result, error) {
	if vh.Log == nil {
		vh.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	tracer := sim.NewTracer()
	tracer.Subscribe(vh.observe)
	s, err := sim.New(vh.Topology, sim.Options{Log: vh.Log, Tracer: tracer})
	if err != nil {
		_ = tracer.Close()
		return nil, err
	}
	res, err := s.Run(ctx)
	if cerr := tracer.Close(); err == nil {
		err = cerr
	}
	return res, err
}
