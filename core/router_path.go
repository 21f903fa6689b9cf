package core

import (
	"fmt"
	"slices"

	"github.com/encodeous/dvsim/state"
)

// PathTo reconstructs the path from this node to dest by following
// predecessors backwards. The result starts with this node and ends with dest.
func PathTo(s *state.RouterState, dest state.NodeId) ([]state.NodeId, error) {
	n := s.N()
	if dest < 0 || int(dest) >= n {
		return nil, fmt.Errorf("%w: destination %d is out of range", ErrNoPath, dest)
	}
	if s.Routes[dest].Cost.IsInf() {
		return nil, fmt.Errorf("%w: %d is unreachable from %d", ErrNoPath, dest, s.Id)
	}
	path := []state.NodeId{dest}
	cur := dest
	for cur != s.Id {
		if len(path) > n {
			return nil, fmt.Errorf("%w: predecessor chain to %d does not reach %d", ErrNoPath, dest, s.Id)
		}
		pred := s.Routes[cur].Pred
		if pred < 0 || int(pred) >= n {
			return nil, fmt.Errorf("%w: broken predecessor chain at %d", ErrNoPath, cur)
		}
		path = append(path, pred)
		cur = pred
	}
	slices.Reverse(path)
	return path, nil
}
