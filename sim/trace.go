package sim

import (
	"fmt"
	"sync"

	"github.com/dustin/go-broadcast"
	"github.com/encodeous/dvsim/state"
)

type TraceKind string

const (
	TraceSend       TraceKind = "send"
	TraceDeliver    TraceKind = "deliver"
	TraceDrop       TraceKind = "drop"
	TraceReject     TraceKind = "reject"
	TraceLinkChange TraceKind = "link"
)

// TraceEvent describes one thing that happened in a simulation.
type TraceEvent struct {
	Time  float64
	Kind  TraceKind
	Node  state.NodeId // node that handled the event
	Peer  state.NodeId // other end of the packet or link
	Cost  state.Cost   // new link cost, for link changes
	Costs []state.Cost // Node's costs after the event
	Err   error
}

func (e TraceEvent) String() string {
	s := fmt.Sprintf("t=%.3f %s node=%d peer=%d", e.Time, e.Kind, e.Node, e.Peer)
	if e.Kind == TraceLinkChange {
		s += fmt.Sprintf(" cost=%s", e.Cost)
	}
	if e.Costs != nil {
		s += fmt.Sprintf(" costs=%v", e.Costs)
	}
	if e.Err != nil {
		s += fmt.Sprintf(" err=%q", e.Err)
	}
	return s
}

type traceEnd struct{}

// Tracer fans simulation events out to any number of subscribers.
type Tracer struct {
	broadcast.Broadcaster
	wg sync.WaitGroup
}

func NewTracer() *Tracer {
	return &Tracer{
		Broadcaster: broadcast.NewBroadcaster(1024),
	}
}

// Subscribe calls fn on a dedicated goroutine for every event until the
// tracer is closed. Subscribe must not be called after Close.
func (t *Tracer) Subscribe(fn func(TraceEvent)) {
	ch := make(chan interface{}, 1024)
	t.Register(ch)
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for v := range ch {
			switch ev := v.(type) {
			case traceEnd:
				return
			case TraceEvent:
				fn(ev)
			}
		}
	}()
}

func (t *Tracer) emit(ev TraceEvent) {
	if t == nil {
		return
	}
	t.Submit(ev)
}

// Close waits for every subscriber to see all submitted events, then stops
// the broadcaster.
func (t *Tracer) Close() error {
	t.Submit(traceEnd{})
	t.wg.Wait()
	return t.Broadcaster.Close()
}
