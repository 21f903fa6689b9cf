package sim

import (
	"container/heap"

	"github.com/encodeous/dvsim/state"
)

type eventKind int

const (
	arrivalEvent eventKind = iota
	linkChangeEvent
)

func (k eventKind) String() string {
	switch k {
	case arrivalEvent:
		return "arrival"
	case linkChangeEvent:
		return "link-change"
	}
	return "unknown"
}

type event struct {
	at   float64
	seq  uint64
	kind eventKind
	node state.NodeId // the node the event is delivered to
	peer state.NodeId // sender of an arrival, other endpoint of a link change
	cost state.Cost
	data []byte
}

// eventQueue orders events by time, then by insertion order.
type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(*event)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// scheduler is a virtual clock driven by a time ordered event queue.
type scheduler struct {
	queue eventQueue
	now   float64
	seq   uint64
}

func (s *scheduler) schedule(e *event) {
	e.seq = s.seq
	s.seq++
	heap.Push(&s.queue, e)
}

// next advances the clock to the earliest pending event and returns it.
func (s *scheduler) next() (*event, bool) {
	if len(s.queue) == 0 {
		return nil, false
	}
	e := heap.Pop(&s.queue).(*event)
	s.now = max(s.now, e.at)
	return e, true
}

func (s *scheduler) pending() int {
	return len(s.queue)
}
