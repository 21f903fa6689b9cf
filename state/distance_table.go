package state

import "fmt"

type TableEntry struct {
	Cost Cost
	Pred NodeId
}

var infEntry = TableEntry{Cost: INF, Pred: NoNode}

// DistanceTable holds the cost to every destination via every neighbour:
// entries[dst][via] is the cost advertised by via plus the link cost to via.
type DistanceTable struct {
	self    NodeId
	entries [][]TableEntry
}

func NewDistanceTable(self NodeId, links LinkSet) *DistanceTable {
	n := len(links)
	t := &DistanceTable{
		self:    self,
		entries: make([][]TableEntry, n),
	}
	for d := range n {
		row := make([]TableEntry, n)
		for v := range row {
			row[v] = infEntry
		}
		t.entries[d] = row
	}
	for d, c := range links {
		if NodeId(d) == self || c.IsInf() {
			continue
		}
		t.entries[d][d] = TableEntry{Cost: c, Pred: self}
	}
	return t
}

func (t *DistanceTable) N() int {
	return len(t.entries)
}

func (t *DistanceTable) Get(dst, via NodeId) TableEntry {
	return t.entries[dst][via]
}

// Row returns a copy of the candidates for dst, indexed by via.
func (t *DistanceTable) Row(dst NodeId) []TableEntry {
	row := make([]TableEntry, len(t.entries[dst]))
	copy(row, t.entries[dst])
	return row
}

func (t *DistanceTable) set(dst, via NodeId, e TableEntry) bool {
	if e.Cost.IsInf() {
		e = infEntry
	}
	if t.entries[dst][via] == e {
		return false
	}
	t.entries[dst][via] = e
	return true
}

// Relax replaces the column of from with the vector it advertised, offset by
// the link cost to from. It reports whether any cost or predecessor changed.
func (t *DistanceTable) Relax(from NodeId, vec DistanceVector, linkCost Cost) (bool, error) {
	if len(vec) != t.N() {
		return false, fmt.Errorf("vector has %d entries, expected %d", len(vec), t.N())
	}
	changed := false
	for d, e := range vec {
		pred := e.Pred
		if NodeId(d) == from {
			pred = t.self
		}
		if t.set(NodeId(d), from, TableEntry{Cost: AddCost(e.Cost, linkCost), Pred: pred}) {
			changed = true
		}
	}
	return changed, nil
}

// Shift adds delta to every finite entry via neighbour. Results at or above
// INF become INF, results below zero clamp to zero.
func (t *DistanceTable) Shift(neighbour NodeId, delta Cost) {
	for d := range t.entries {
		e := t.entries[d][neighbour]
		if e.Cost.IsInf() {
			continue
		}
		if delta >= INF {
			e.Cost = INF
		} else {
			e.Cost = max(e.Cost+delta, 0).Normalize()
		}
		t.set(NodeId(d), neighbour, e)
	}
}

// SetDirect seeds the entry for reaching neighbour over the direct link.
func (t *DistanceTable) SetDirect(neighbour NodeId, cost Cost) {
	t.set(neighbour, neighbour, TableEntry{Cost: cost, Pred: t.self})
}
