package state

import (
	"fmt"
	"slices"
	"strings"
)

type Route struct {
	Cost    Cost
	NextHop NodeId // first hop towards the destination
	Pred    NodeId // node immediately before the destination on the path
}

// RoutingTable is indexed by destination.
type RoutingTable []Route

type VectorEntry struct {
	Cost Cost
	Pred NodeId
}

// DistanceVector is the advertised payload, indexed by destination.
type DistanceVector []VectorEntry

// LinkSet holds the direct link cost to every node, INF when not adjacent.
type LinkSet []Cost

// Unreachable is the route to a destination with no finite candidate.
var Unreachable = Route{Cost: INF, NextHop: NoNode, Pred: NoNode}

// Vector projects the routing table into the vector advertised to neighbours.
func (rt RoutingTable) Vector() DistanceVector {
	vec := make(DistanceVector, len(rt))
	for d, r := range rt {
		vec[d] = VectorEntry{Cost: r.Cost, Pred: r.Pred}
	}
	return vec
}

func (v DistanceVector) Equal(o DistanceVector) bool {
	return slices.Equal(v, o)
}

func (v DistanceVector) Clone() DistanceVector {
	return slices.Clone(v)
}

func (v DistanceVector) Costs() []Cost {
	costs := make([]Cost, len(v))
	for i, e := range v {
		costs[i] = e.Cost
	}
	return costs
}

func (l LinkSet) IsNeighbour(self, n NodeId) bool {
	if n == self || int(n) < 0 || int(n) >= len(l) {
		return false
	}
	return !l[n].IsInf()
}

// Neighbours returns the active neighbours in ascending id order.
func (l LinkSet) Neighbours(self NodeId) []NodeId {
	res := make([]NodeId, 0)
	for n := range l {
		if l.IsNeighbour(self, NodeId(n)) {
			res = append(res, NodeId(n))
		}
	}
	return res
}

// RouterState access must be done only on a single Goroutine
type RouterState struct {
	Id     NodeId
	Links  LinkSet
	Table  *DistanceTable
	Routes RoutingTable
}

func (s *RouterState) N() int {
	return len(s.Links)
}

func fmtId(id NodeId) string {
	if id == NoNode {
		return "-"
	}
	return fmt.Sprintf("%d", id)
}

// StringTable renders the distance table, one row per destination and one
// column per via.
func (s *RouterState) StringTable() string {
	n := s.N()
	width := len(INF.String())
	for d := range n {
		for v := range n {
			width = max(width, len(s.Table.Get(NodeId(d), NodeId(v)).Cost.String()))
		}
	}
	width = max(width, len(fmt.Sprintf("%d", n-1))) + 1

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("distance table of node %d\n", s.Id))
	sb.WriteString(fmt.Sprintf("%-*s", width+4, "dst"))
	for v := range n {
		sb.WriteString(fmt.Sprintf("%*d", width, v))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", width+4+width*n))
	sb.WriteString("\n")
	for d := range n {
		sb.WriteString(fmt.Sprintf("%-*d", width+4, d))
		for v := range n {
			sb.WriteString(fmt.Sprintf("%*s", width, s.Table.Get(NodeId(d), NodeId(v)).Cost))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (s *RouterState) StringRoutes() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("routes of node %d\n", s.Id))
	for d, r := range s.Routes {
		sb.WriteString(fmt.Sprintf("  dst=%d cost=%s nh=%s pred=%s\n", d, r.Cost, fmtId(r.NextHop), fmtId(r.Pred)))
	}
	return sb.String()
}
