package core

import "github.com/encodeous/dvsim/state"

// SelectRoutes picks the cheapest via for every destination. Candidates are
// scanned in ascending id order with a strict comparison, so the lowest id
// wins ties.
func SelectRoutes(self state.NodeId, table *state.DistanceTable) state.RoutingTable {
	n := table.N()
	routes := make(state.RoutingTable, n)
	for d := range n {
		dst := state.NodeId(d)
		if dst == self {
			routes[d] = state.Route{Cost: 0, NextHop: self, Pred: self}
			continue
		}
		best := state.Unreachable
		for v := range n {
			e := table.Get(dst, state.NodeId(v))
			if e.Cost < best.Cost {
				best = state.Route{Cost: e.Cost, NextHop: state.NodeId(v), Pred: e.Pred}
			}
		}
		routes[d] = best
	}
	return routes
}
