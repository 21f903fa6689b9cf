package state

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

func PathValidator(s string) error {
	_, err := os.Stat(path.Dir(s))
	if err != nil {
		return err
	}
	_, err = filepath.Abs(s)
	return err
}

func NodeValidator(n int, id NodeId) error {
	if id < 0 || int(id) >= n {
		return fmt.Errorf("node %d is out of range [0, %d)", id, n)
	}
	return nil
}

func LinkSetValidator(self NodeId, links LinkSet) error {
	if len(links) == 0 {
		return fmt.Errorf("link set is empty")
	}
	if err := NodeValidator(len(links), self); err != nil {
		return err
	}
	if links[self] != 0 {
		return fmt.Errorf("link cost from node %d to itself is %s, must be 0", self, links[self])
	}
	for n, c := range links {
		if c < 0 {
			return fmt.Errorf("link cost from node %d to %d is negative: %d", self, n, c)
		}
	}
	return nil
}

func TopologyValidator(t *Topology) error {
	n := t.N()
	if n == 0 {
		return fmt.Errorf("topology has no nodes")
	}
	for i, row := range t.Costs {
		if len(row) != n {
			return fmt.Errorf("row %d has %d columns, expected %d", i, len(row), n)
		}
	}
	for i := range n {
		if err := LinkSetValidator(NodeId(i), t.Costs[i]); err != nil {
			return err
		}
		for j := range i {
			if t.Costs[i][j].Normalize() != t.Costs[j][i].Normalize() {
				return fmt.Errorf("link %d-%d is asymmetric: %s != %s", i, j, t.Costs[i][j], t.Costs[j][i])
			}
		}
	}
	for i, lc := range t.LinkChanges {
		if err := NodeValidator(n, lc.A); err != nil {
			return fmt.Errorf("link change %d: %w", i, err)
		}
		if err := NodeValidator(n, lc.B); err != nil {
			return fmt.Errorf("link change %d: %w", i, err)
		}
		if lc.A == lc.B {
			return fmt.Errorf("link change %d connects node %d to itself", i, lc.A)
		}
		if lc.At < 0 {
			return fmt.Errorf("link change %d happens at negative time %v", i, lc.At)
		}
		if lc.Cost < 0 {
			return fmt.Errorf("link change %d has negative cost %d", i, lc.Cost)
		}
	}
	if t.MaxDelay < 0 {
		return fmt.Errorf("max_delay is negative: %v", t.MaxDelay)
	}
	if t.MaxEvents < 0 {
		return fmt.Errorf("max_events is negative: %d", t.MaxEvents)
	}
	return nil
}
