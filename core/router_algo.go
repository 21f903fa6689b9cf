package core

import (
	"fmt"
	"slices"

	"github.com/encodeous/dvsim/state"
)

type RouterEvent int

// trace events

const (
	RouterInitialized RouterEvent = iota
	TableRelaxed
	RouteChanged
	LinkCostChanged
	VectorAdvertised
	NeighbourUp
)

// warn events

const (
	ProtocolViolation RouterEvent = iota + 1000
	InvalidLink
)

// Router is an interface that defines the underlying router operations
type Router interface {
	Dispatch(pkt state.Packet)
	Log(event RouterEvent, desc string, args ...any)
}

// Initialize creates the state of node id from its direct link costs and
// advertises the initial vector to every neighbour.
func Initialize(id state.NodeId, links state.LinkSet, r Router) (*state.RouterState, error) {
	links = slices.Clone(links)
	for i := range links {
		links[i] = links[i].Normalize()
	}
	if err := state.LinkSetValidator(id, links); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLink, err)
	}
	s := &state.RouterState{
		Id:    id,
		Links: links,
		Table: state.NewDistanceTable(id, links),
	}
	s.Routes = SelectRoutes(s.Id, s.Table)
	r.Log(RouterInitialized, "router initialized", "id", id, "neighbours", links.Neighbours(id))
	AdvertiseAll(s, r)
	return s, nil
}

func checkPacket(s *state.RouterState, pkt state.Packet) error {
	n := s.N()
	if len(pkt.Vector) != n {
		return fmt.Errorf("vector from %d has %d entries, expected %d", pkt.Src, len(pkt.Vector), n)
	}
	if pkt.Src < 0 || int(pkt.Src) >= n {
		return fmt.Errorf("source %d is out of range", pkt.Src)
	}
	if pkt.Src == s.Id {
		return fmt.Errorf("packet claims to come from this node")
	}
	if pkt.Dst != s.Id {
		return fmt.Errorf("packet is addressed to %d", pkt.Dst)
	}
	for d, e := range pkt.Vector {
		if e.Cost < 0 {
			return fmt.Errorf("negative cost %d to %d", e.Cost, d)
		}
	}
	return nil
}

// HandleVector processes a distance vector received from a neighbour.
func HandleVector(s *state.RouterState, r Router, pkt state.Packet) error {
	if err := checkPacket(s, pkt); err != nil {
		r.Log(ProtocolViolation, "dropping vector", "src", pkt.Src, "dst", pkt.Dst, "err", err)
		return fmt.Errorf("%w: %w", ErrProtocolViolation, err)
	}
	// the link cost is read from our own LinkSet, a vector from a node that is
	// currently not adjacent relaxes to INF everywhere
	changed, err := s.Table.Relax(pkt.Src, pkt.Vector, s.Links[pkt.Src])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProtocolViolation, err)
	}
	if !changed {
		return nil
	}
	r.Log(TableRelaxed, "table relaxed", "via", pkt.Src)
	updateRoutes(s, r)
	return nil
}

// HandleLinkChange applies a new cost for the direct link to neighbour.
func HandleLinkChange(s *state.RouterState, r Router, neighbour state.NodeId, cost state.Cost) error {
	if neighbour < 0 || int(neighbour) >= s.N() || neighbour == s.Id {
		r.Log(InvalidLink, "ignoring link change", "neighbour", neighbour, "cost", cost)
		return fmt.Errorf("%w: no link from %d to %d", ErrInvalidLink, s.Id, neighbour)
	}
	if cost < 0 {
		r.Log(InvalidLink, "ignoring link change", "neighbour", neighbour, "cost", cost)
		return fmt.Errorf("%w: negative cost %d", ErrInvalidLink, cost)
	}
	cost = cost.Normalize()
	old := s.Links[neighbour]
	s.Links[neighbour] = cost

	if !old.IsInf() {
		s.Table.Shift(neighbour, cost-old)
	}
	s.Table.SetDirect(neighbour, cost)
	r.Log(LinkCostChanged, "link cost changed", "neighbour", neighbour, "old", old, "new", cost)

	advertised := updateRoutes(s, r)
	if old.IsInf() && !cost.IsInf() {
		r.Log(NeighbourUp, "neighbour up", "neighbour", neighbour)
		if !advertised {
			r.Dispatch(state.NewPacket(s.Id, neighbour, BuildAdvertisement(s, neighbour)))
		}
	}
	return nil
}

// updateRoutes recomputes the routing table and advertises it if any route
// changed. The next hop is part of the comparison since it decides which
// neighbour gets a poisoned entry.
func updateRoutes(s *state.RouterState, r Router) bool {
	old := s.Routes
	s.Routes = SelectRoutes(s.Id, s.Table)
	changed := false
	for d := range s.Routes {
		if old[d] != s.Routes[d] {
			r.Log(RouteChanged, "route changed", "dst", d, "old", old[d], "new", s.Routes[d])
			changed = true
		}
	}
	if !changed {
		return false
	}
	AdvertiseAll(s, r)
	return true
}
