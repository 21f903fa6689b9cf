package core

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/encodeous/dvsim/state"
	"github.com/google/go-cmp/cmp"
)

type HarnessEvent struct {
	Message string
	Args    []any
}

func MakeEvent(msg string, args ...any) HarnessEvent {
	return HarnessEvent{
		Message: msg,
		Args:    args,
	}
}

type RouterHarness struct {
	actions []HarnessEvent
	packets []state.Packet
}

func (h *RouterHarness) Dispatch(pkt state.Packet) {
	h.packets = append(h.packets, pkt)
	h.actions = append(h.actions, MakeEvent("SEND", pkt.Dst, pkt.Vector))
}

func (h *RouterHarness) Log(event RouterEvent, desc string, args ...any) {
	x := make([]any, 0)
	x = append(x, event)
	x = append(x, desc)
	x = append(x, args...)
	h.actions = append(h.actions, MakeEvent("LOG", x...))
}

type HarnessEvents []HarnessEvent

func (h HarnessEvents) String() string {
	out := make([]string, 0)
	for _, action := range h {
		cur := action.Message
		for _, arg := range action.Args {
			cur += " " + fmt.Sprint(arg)
		}
		out = append(out, cur)
	}
	slices.Sort(out)
	return strings.Join(out, "\n")
}

// GetActions returns and clears everything except log events.
func (h *RouterHarness) GetActions() HarnessEvents {
	x := make([]HarnessEvent, 0)
	for _, action := range h.actions {
		if action.Message != "LOG" {
			x = append(x, action)
		}
	}
	h.actions = make([]HarnessEvent, 0)
	h.packets = make([]state.Packet, 0)
	return x
}

// GetAll returns and clears every recorded event, logs included.
func (h *RouterHarness) GetAll() HarnessEvents {
	x := h.actions
	h.actions = make([]HarnessEvent, 0)
	h.packets = make([]state.Packet, 0)
	return x
}

// Sent returns the packets dispatched since the last reset, keyed by destination.
func (h *RouterHarness) Sent() map[state.NodeId]state.Packet {
	res := make(map[state.NodeId]state.Packet)
	for _, pkt := range h.packets {
		res[pkt.Dst] = pkt
	}
	return res
}

func (e HarnessEvents) contains(msg string, args ...any) bool {
	for _, event := range e {
		if event.Message == msg {
			if len(event.Args) >= len(args) {
				match := true
				for i, arg := range args {
					if !cmp.Equal(event.Args[i], arg) {
						match = false
						break
					}
				}
				if match {
					return true
				}
			}
		}
	}
	return false
}

func (e HarnessEvents) AssertContains(t *testing.T, msg string, args ...any) {
	t.Helper()
	if e.contains(msg, args...) {
		return
	}
	t.Fatal("Expected event not found: ", msg, " with args: ", args, " in ", e)
}

func (e HarnessEvents) AssertNotContains(t *testing.T, msg string, args ...any) {
	t.Helper()
	if e.contains(msg, args...) {
		t.Fatal("Unexpected event found: ", msg, " with args: ", args, " in ", e)
	}
}

// vec builds a distance vector from alternating cost, predecessor values.
func vec(vals ...int) state.DistanceVector {
	res := make(state.DistanceVector, 0, len(vals)/2)
	for i := 0; i+1 < len(vals); i += 2 {
		res = append(res, state.VectorEntry{Cost: state.Cost(vals[i]), Pred: state.NodeId(vals[i+1])})
	}
	return res
}

const inf = int(state.INF)

// fifoNetwork delivers packets between nodes in the order they were sent.
type fifoNetwork struct {
	nodes []*Node
	queue []state.Packet
	sent  int
}

type fifoRouter struct {
	net *fifoNetwork
}

func (r fifoRouter) Dispatch(pkt state.Packet) {
	r.net.queue = append(r.net.queue, pkt)
	r.net.sent++
}

func (r fifoRouter) Log(event RouterEvent, desc string, args ...any) {}

func newFifoNetwork(t *testing.T, costs [][]state.Cost) *fifoNetwork {
	t.Helper()
	net := &fifoNetwork{}
	for id := range costs {
		node, err := NewNode(state.NodeId(id), costs[id], fifoRouter{net})
		if err != nil {
			t.Fatal(err)
		}
		net.nodes = append(net.nodes, node)
	}
	return net
}

// drain delivers packets until the network is quiet, returning the number
// of packets delivered.
func (net *fifoNetwork) drain(t *testing.T) int {
	t.Helper()
	delivered := 0
	for len(net.queue) > 0 {
		pkt := net.queue[0]
		net.queue = net.queue[1:]
		if err := net.nodes[pkt.Dst].DeliverPacket(pkt); err != nil {
			t.Fatal(err)
		}
		delivered++
		if delivered > 100_000 {
			t.Fatal("network did not settle")
		}
	}
	return delivered
}

// setLink changes a link on both endpoints.
func (net *fifoNetwork) setLink(t *testing.T, a, b state.NodeId, cost state.Cost) {
	t.Helper()
	if err := net.nodes[a].NotifyLinkCostChange(b, cost); err != nil {
		t.Fatal(err)
	}
	if err := net.nodes[b].NotifyLinkCostChange(a, cost); err != nil {
		t.Fatal(err)
	}
}

func (net *fifoNetwork) costs() [][]state.Cost {
	res := make([][]state.Cost, len(net.nodes))
	for i, n := range net.nodes {
		res[i] = n.Costs()
	}
	return res
}
