package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/encodeous/dvsim/core"
	"github.com/encodeous/dvsim/perf"
	"github.com/encodeous/dvsim/protocol"
	"github.com/encodeous/dvsim/state"
	"github.com/google/uuid"
)

var ErrEventLimit = errors.New("event limit reached")

type Options struct {
	Log    *slog.Logger // defaults to slog.Default()
	Tracer *Tracer      // optional
}

type Stats struct {
	Events      int
	Sent        int
	Delivered   int
	Dropped     int // failed the layer 2 sanity check or could not be decoded
	Rejected    int // refused by the receiving node
	LinkChanges int
}

type Result struct {
	RunId   uuid.UUID
	Seed    uint64
	EndTime float64
	Stats
	Costs     [][]state.Cost // Costs[i] is the cost vector of node i
	Reference [][]state.Cost // shortest path costs over the final links
	Converged bool
}

// Simulation runs every node of a topology on a virtual clock. Packets are
// delayed randomly, but a node always receives packets in the order they were
// sent to it.
// Simulation access must be done only on a single Goroutine
type Simulation struct {
	topo        *state.Topology
	log         *slog.Logger
	tracer      *Tracer
	runId       uuid.UUID
	rng         *rand.Rand
	sched       scheduler
	nodes       []*core.Node
	links       []state.LinkSet // what each node has been told about its links
	lastArrival []float64
	stats       Stats
}

func New(topo *state.Topology, opts Options) (*Simulation, error) {
	topo = topo.Clone()
	topo.ApplyDefaults()
	if err := state.TopologyValidator(topo); err != nil {
		return nil, err
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	runId := uuid.New()
	n := topo.N()
	s := &Simulation{
		topo:        topo,
		log:         opts.Log.With("run", runId.String()),
		tracer:      opts.Tracer,
		runId:       runId,
		rng:         rand.New(rand.NewPCG(topo.Seed, topo.Seed^0x9e3779b97f4a7c15)),
		links:       make([]state.LinkSet, n),
		lastArrival: make([]float64, n),
	}
	for id := range n {
		s.links[id] = topo.Links(state.NodeId(id))
	}
	for id := range n {
		node, err := core.NewNode(state.NodeId(id), topo.Links(state.NodeId(id)), nodeIO{s, state.NodeId(id)})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize node %d: %w", id, err)
		}
		s.nodes = append(s.nodes, node)
	}
	for _, lc := range topo.LinkChanges {
		s.sched.schedule(&event{at: lc.At, kind: linkChangeEvent, node: lc.A, peer: lc.B, cost: lc.Cost})
		s.sched.schedule(&event{at: lc.At, kind: linkChangeEvent, node: lc.B, peer: lc.A, cost: lc.Cost})
	}
	perf.Simulations.Add(1)
	s.log.Debug("simulation created", "nodes", n, "seed", topo.Seed, "link_changes", len(topo.LinkChanges))
	return s, nil
}

func (s *Simulation) RunId() uuid.UUID {
	return s.runId
}

func (s *Simulation) Now() float64 {
	return s.sched.now
}

func (s *Simulation) Nodes() []*core.Node {
	return s.nodes
}

func (s *Simulation) Stats() Stats {
	return s.stats
}

// transmit puts pkt on the link from sender to pkt.Dst.
func (s *Simulation) transmit(sender state.NodeId, pkt state.Packet) {
	if err := sanityCheck(sender, s.links[sender], pkt); err != nil {
		s.stats.Dropped++
		perf.PacketsDropped.Add(1)
		s.log.Warn("failed sanity check, dropping packet", "node", sender, "pkt", pkt, "err", err)
		s.tracer.emit(TraceEvent{Time: s.sched.now, Kind: TraceDrop, Node: sender, Peer: pkt.Dst, Err: err})
		return
	}
	at := max(s.sched.now, s.lastArrival[pkt.Dst]) + s.rng.Float64()*s.topo.MaxDelay
	s.lastArrival[pkt.Dst] = at
	s.sched.schedule(&event{
		at:   at,
		kind: arrivalEvent,
		node: pkt.Dst,
		peer: pkt.Src,
		data: protocol.Marshal(pkt),
	})
	s.stats.Sent++
	perf.PacketsSent.Add(1)
	s.tracer.emit(TraceEvent{Time: s.sched.now, Kind: TraceSend, Node: sender, Peer: pkt.Dst})
}

// Run processes events until the network is quiet.
func (s *Simulation) Run(ctx context.Context) (*Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return s.result(), err
		}
		e, ok := s.sched.next()
		if !ok {
			break
		}
		s.stats.Events++
		if s.stats.Events > s.topo.MaxEvents {
			return s.result(), fmt.Errorf("%w: %d events processed by t=%.3f", ErrEventLimit, s.topo.MaxEvents, s.sched.now)
		}
		start := time.Now()
		s.handle(e)
		perf.EventLatency.Add(float64(time.Since(start).Microseconds()))
		perf.QueueDepth.Add(float64(s.sched.pending()))
	}
	res := s.result()
	s.log.Debug("simulation finished", "t", res.EndTime, "events", res.Events, "converged", res.Converged)
	return res, nil
}

func (s *Simulation) handle(e *event) {
	node := s.nodes[e.node]
	switch e.kind {
	case arrivalEvent:
		pkt, err := protocol.Unmarshal(e.data)
		if err != nil {
			s.stats.Dropped++
			perf.PacketsDropped.Add(1)
			s.log.Warn("dropping undecodable packet", "node", e.node, "err", err)
			s.tracer.emit(TraceEvent{Time: e.at, Kind: TraceDrop, Node: e.node, Peer: e.peer, Err: err})
			return
		}
		if err := node.DeliverPacket(pkt); err != nil {
			s.stats.Rejected++
			perf.PacketsRejected.Add(1)
			s.tracer.emit(TraceEvent{Time: e.at, Kind: TraceReject, Node: e.node, Peer: e.peer, Err: err})
			return
		}
		s.stats.Delivered++
		perf.PacketsDelivered.Add(1)
		s.tracer.emit(TraceEvent{Time: e.at, Kind: TraceDeliver, Node: e.node, Peer: e.peer, Costs: node.Costs()})
	case linkChangeEvent:
		s.links[e.node][e.peer] = e.cost
		s.stats.LinkChanges++
		perf.LinkChanges.Add(1)
		s.log.Info("link cost changed", "t", e.at, "node", e.node, "peer", e.peer, "cost", e.cost)
		err := node.NotifyLinkCostChange(e.peer, e.cost)
		s.tracer.emit(TraceEvent{Time: e.at, Kind: TraceLinkChange, Node: e.node, Peer: e.peer, Cost: e.cost, Costs: node.Costs(), Err: err})
	}
}

// Links returns the current link cost matrix.
func (s *Simulation) Links() [][]state.Cost {
	res := make([][]state.Cost, len(s.links))
	for i, l := range s.links {
		res[i] = slices.Clone(l)
	}
	return res
}

func (s *Simulation) result() *Result {
	res := &Result{
		RunId:     s.runId,
		Seed:      s.topo.Seed,
		EndTime:   s.sched.now,
		Stats:     s.stats,
		Costs:     make([][]state.Cost, len(s.nodes)),
		Reference: Reference(s.Links()),
	}
	for i, n := range s.nodes {
		res.Costs[i] = n.Costs()
	}
	res.Converged = slices.EqualFunc(res.Costs, res.Reference, slices.Equal[[]state.Cost])
	return res
}
