package core

import "github.com/encodeous/dvsim/state"

// BuildAdvertisement returns the vector to send to neighbour, with every
// destination routed through neighbour poisoned to INF.
func BuildAdvertisement(s *state.RouterState, neighbour state.NodeId) state.DistanceVector {
	vec := s.Routes.Vector()
	for d, route := range s.Routes {
		if route.NextHop == neighbour && state.NodeId(d) != s.Id {
			vec[d] = state.VectorEntry{Cost: state.INF, Pred: state.NoNode}
		}
	}
	return vec
}

// AdvertiseAll sends the current vector to every active neighbour.
func AdvertiseAll(s *state.RouterState, r Router) {
	neighbours := s.Links.Neighbours(s.Id)
	for _, neigh := range neighbours {
		r.Dispatch(state.NewPacket(s.Id, neigh, BuildAdvertisement(s, neigh)))
	}
	r.Log(VectorAdvertised, "vector advertised", "neighbours", neighbours, "costs", s.Routes.Vector().Costs())
}
