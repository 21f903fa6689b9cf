package sim

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/encodeous/dvsim/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestTracer_SeesEveryEvent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	tracer := NewTracer()
	var mu sync.Mutex
	kinds := make(map[TraceKind]int)
	tracer.Subscribe(func(ev TraceEvent) {
		mu.Lock()
		kinds[ev.Kind]++
		mu.Unlock()
	})
	var last TraceEvent
	tracer.Subscribe(func(ev TraceEvent) {
		last = ev
	})

	topo := state.DefaultTopology()
	topo.LinkChanges = state.DefaultLinkChanges()
	s, err := New(topo, Options{Log: quietLogger(), Tracer: tracer})
	require.NoError(t, err)
	res, err := s.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, tracer.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, res.Sent, kinds[TraceSend])
	assert.Equal(t, res.Delivered, kinds[TraceDeliver])
	assert.Equal(t, res.LinkChanges, kinds[TraceLinkChange])
	assert.Zero(t, kinds[TraceDrop])
	assert.Equal(t, res.EndTime, last.Time)
}

func TestTracer_CloseWithoutSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	tracer := NewTracer()
	tracer.emit(TraceEvent{Kind: TraceSend})
	assert.NoError(t, tracer.Close())
}

func TestTracer_NilIsSilent(t *testing.T) {
	var tracer *Tracer
	assert.NotPanics(t, func() {
		tracer.emit(TraceEvent{Kind: TraceSend})
	})
}

func TestTraceEvent_String(t *testing.T) {
	ev := TraceEvent{Time: 1.5, Kind: TraceLinkChange, Node: 0, Peer: 1, Cost: state.INF, Costs: []state.Cost{0, state.INF}}
	assert.Equal(t, "t=1.500 link node=0 peer=1 cost=inf costs=[0 inf]", ev.String())

	ev = TraceEvent{Time: 2, Kind: TraceReject, Node: 1, Peer: 0, Err: errors.New("bad")}
	assert.Equal(t, `t=2.000 reject node=1 peer=0 err="bad"`, ev.String())
}
