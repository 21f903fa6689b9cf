package state

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ParseGraph expands a compact edge list over nodes 0..n-1 into unique sorted
// edges. Each line is either a group definition or a clique:
//
//	core = 0, 1, 2   # group of nodes (or other groups)
//	core, 3          # every member of the list is linked to every other
//
// Groups may reference other groups as long as there is no cycle.
func ParseGraph(graph []string, n int) ([]Pair[NodeId, NodeId], error) {
	groups := make(map[string][]string)
	cliques := make([][]string, 0)

	for _, line := range graph {
		line = strings.ToLower(strings.TrimSpace(line))
		if idx := strings.Index(line, "#"); idx != -1 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}
		if !strings.Contains(line, "=") {
			names, err := splitSymbols(line)
			if err != nil {
				return nil, err
			}
			if len(names) < 2 {
				return nil, fmt.Errorf("invalid clique, %v", names)
			}
			cliques = append(cliques, names)
			continue
		}
		spl := strings.Split(line, "=")
		if len(spl) != 2 {
			return nil, fmt.Errorf("invalid graph: %s. group definition must contain one '='", line)
		}
		grp := strings.TrimSpace(spl[0])
		if _, err := strconv.Atoi(grp); err == nil || grp == "" {
			return nil, fmt.Errorf("group name must not be a node id: %q", grp)
		}
		if _, ok := groups[grp]; ok {
			return nil, fmt.Errorf("duplicate group name: %s", grp)
		}
		names, err := splitSymbols(spl[1])
		if err != nil {
			return nil, err
		}
		groups[grp] = names
	}
	if len(cliques) == 0 {
		return nil, fmt.Errorf("graph has no edges")
	}

	ex := graphExpander{n: n, groups: groups, done: make(map[string][]NodeId)}
	edges := make([]Pair[NodeId, NodeId], 0)
	for _, clique := range cliques {
		members := make([]NodeId, 0)
		for _, sym := range clique {
			ids, err := ex.expand(sym, nil)
			if err != nil {
				return nil, err
			}
			members = append(members, ids...)
		}
		slices.Sort(members)
		members = slices.Compact(members)
		for i, a := range members {
			for _, b := range members[i+1:] {
				edges = append(edges, MakeSortedPair(a, b))
			}
		}
	}
	SortPairs(edges)
	return slices.Compact(edges), nil
}

func MakeSortedPair[T cmp.Ordered](a, b T) Pair[T, T] {
	if a < b {
		return Pair[T, T]{a, b}
	}
	return Pair[T, T]{b, a}
}

func splitSymbols(list string) ([]string, error) {
	res := make([]string, 0)
	for _, s := range strings.Split(list, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			res = append(res, s)
		}
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("node/group list must not be empty")
	}
	return res, nil
}

type graphExpander struct {
	n      int
	groups map[string][]string
	done   map[string][]NodeId
}

func (e *graphExpander) expand(sym string, stack []string) ([]NodeId, error) {
	if id, err := strconv.Atoi(sym); err == nil {
		if err := NodeValidator(e.n, NodeId(id)); err != nil {
			return nil, err
		}
		return []NodeId{NodeId(id)}, nil
	}
	if ids, ok := e.done[sym]; ok {
		return ids, nil
	}
	members, ok := e.groups[sym]
	if !ok {
		return nil, fmt.Errorf("%s is not a valid node/group", sym)
	}
	if slices.Contains(stack, sym) {
		cycle := slices.Clone(stack[slices.Index(stack, sym):])
		slices.Sort(cycle)
		return nil, fmt.Errorf("cycle detected in graph: %v", cycle)
	}
	stack = append(stack, sym)
	ids := make([]NodeId, 0)
	for _, m := range members {
		sub, err := e.expand(m, stack)
		if err != nil {
			return nil, err
		}
		ids = append(ids, sub...)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)
	e.done[sym] = ids
	return ids, nil
}

// CostsFromGraph builds a cost matrix where every parsed edge has cost.
func CostsFromGraph(graph []string, n int, cost Cost) ([][]Cost, error) {
	edges, err := ParseGraph(graph, n)
	if err != nil {
		return nil, err
	}
	costs := make([][]Cost, n)
	for i := range costs {
		costs[i] = make([]Cost, n)
		for j := range costs[i] {
			if i != j {
				costs[i][j] = INF
			}
		}
	}
	for _, e := range edges {
		costs[e.V1][e.V2] = cost
		costs[e.V2][e.V1] = cost
	}
	return costs, nil
}
