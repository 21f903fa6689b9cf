package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/encodeous/dvsim/core"
	"github.com/encodeous/dvsim/state"
)

var ErrRoundLimit = errors.New("round limit reached")

type RoundsResult struct {
	Rounds        int // rounds that delivered at least one packet
	ChangedRounds int // last round in which any node changed its costs
	Sent          int
	Nodes         []*core.Node
	Costs         [][]state.Cost
	Reference     [][]state.Cost
	Converged     bool
}

type roundIO struct {
	id    state.NodeId
	links state.LinkSet
	next  *[]state.Packet
	log   *slog.Logger
}

func (r roundIO) Dispatch(pkt state.Packet) {
	if err := sanityCheck(r.id, r.links, pkt); err != nil {
		r.log.Warn("failed sanity check, dropping packet", "node", r.id, "pkt", pkt, "err", err)
		return
	}
	*r.next = append(*r.next, pkt)
}

func (r roundIO) Log(event core.RouterEvent, desc string, args ...any) {
	args = append([]any{"node", r.id}, args...)
	if event.IsWarn() {
		r.log.Warn(fmt.Sprintf("%s %s", event.String(), desc), args...)
	} else {
		r.log.Debug(fmt.Sprintf("%s %s", event.String(), desc), args...)
	}
}

// RunRounds drives the static topology in synchronous rounds: every packet
// emitted during round k is delivered during round k+1. Link changes are not
// applied.
func RunRounds(ctx context.Context, topo *state.Topology, log *slog.Logger) (*RoundsResult, error) {
	topo = topo.Clone()
	topo.ApplyDefaults()
	if err := state.TopologyValidator(topo); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	n := topo.N()
	res := &RoundsResult{}
	next := make([]state.Packet, 0)
	for id := range n {
		links := topo.Links(state.NodeId(id))
		node, err := core.NewNode(state.NodeId(id), links, roundIO{state.NodeId(id), topo.Links(state.NodeId(id)), &next, log})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize node %d: %w", id, err)
		}
		res.Nodes = append(res.Nodes, node)
	}

	costs := func() [][]state.Cost {
		c := make([][]state.Cost, n)
		for i, node := range res.Nodes {
			c[i] = node.Costs()
		}
		return c
	}

	for len(next) > 0 {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if res.Rounds >= state.DefaultMaxRounds {
			return res, fmt.Errorf("%w: %d", ErrRoundLimit, res.Rounds)
		}
		res.Rounds++
		cur := next
		next = make([]state.Packet, 0)
		res.Sent += len(cur)

		before := costs()
		for _, pkt := range cur {
			if err := res.Nodes[pkt.Dst].DeliverPacket(pkt); err != nil {
				return res, err
			}
		}
		if !slices.EqualFunc(before, costs(), slices.Equal[[]state.Cost]) {
			res.ChangedRounds = res.Rounds
		}
		log.Debug("round complete", "round", res.Rounds, "delivered", len(cur), "emitted", len(next))
	}

	res.Costs = costs()
	res.Reference = Reference(topo.Costs)
	res.Converged = slices.EqualFunc(res.Costs, res.Reference, slices.Equal[[]state.Cost])
	return res, nil
}
