package core

import "github.com/encodeous/dvsim/state"

// Node binds a RouterState to the Router it talks through.
// Node access must be done only on a single Goroutine
type Node struct {
	*state.RouterState
	router Router
}

func NewNode(id state.NodeId, links state.LinkSet, r Router) (*Node, error) {
	s, err := Initialize(id, links, r)
	if err != nil {
		return nil, err
	}
	return &Node{
		RouterState: s,
		router:      r,
	}, nil
}

// DeliverPacket hands a received vector to the node. A rejected packet
// leaves the node untouched.
func (n *Node) DeliverPacket(pkt state.Packet) error {
	return HandleVector(n.RouterState, n.router, pkt)
}

// NotifyLinkCostChange informs the node that the link to neighbour now costs cost.
func (n *Node) NotifyLinkCostChange(neighbour state.NodeId, cost state.Cost) error {
	return HandleLinkChange(n.RouterState, n.router, neighbour, cost)
}

func (n *Node) PathTo(dest state.NodeId) ([]state.NodeId, error) {
	return PathTo(n.RouterState, dest)
}

// Costs returns the current cost to every destination.
func (n *Node) Costs() []state.Cost {
	return n.Routes.Vector().Costs()
}
