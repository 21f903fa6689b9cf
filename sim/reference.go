package sim

import "github.com/encodeous/dvsim/state"

// Reference computes all pairs shortest path costs with a centralised
// Bellman-Ford over the link cost matrix.
func Reference(costs [][]state.Cost) [][]state.Cost {
	size := len(costs)
	res := make([][]state.Cost, size)
	for src := range size {
		dist := make([]state.Cost, size)
		for i := range dist {
			dist[i] = state.INF
		}
		dist[src] = 0

		for i := 0; i < size-1; i++ {
			relaxed := false
			for from := range size {
				if dist[from].IsInf() {
					continue
				}
				for to := range size {
					if from == to {
						continue
					}
					newDist := state.AddCost(dist[from], costs[from][to])
					if newDist < dist[to] {
						dist[to] = newDist
						relaxed = true
					}
				}
			}
			if !relaxed {
				break
			}
		}
		res[src] = dist
	}
	return res
}
