package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkSetValidator(t *testing.T) {
	assert.NoError(t, LinkSetValidator(0, LinkSet{0, 1, INF}))
	assert.NoError(t, LinkSetValidator(0, LinkSet{0}))
	assert.ErrorContains(t, LinkSetValidator(0, LinkSet{}), "empty")
	assert.ErrorContains(t, LinkSetValidator(3, LinkSet{0, 1}), "out of range")
	assert.ErrorContains(t, LinkSetValidator(-1, LinkSet{0, 1}), "out of range")
	assert.ErrorContains(t, LinkSetValidator(1, LinkSet{1, 2}), "must be 0")
	assert.ErrorContains(t, LinkSetValidator(0, LinkSet{0, -1}), "negative")
}

func TestTopologyValidator_Default(t *testing.T) {
	topo := DefaultTopology()
	topo.LinkChanges = DefaultLinkChanges()
	assert.NoError(t, TopologyValidator(topo))
}

func TestTopologyValidator_Invalid(t *testing.T) {
	cases := map[string]*Topology{
		"no nodes":        {},
		"columns":         {Costs: [][]Cost{{0, 1}, {1}}},
		"must be 0":       {Costs: [][]Cost{{0, 1}, {1, 3}}},
		"negative":        {Costs: [][]Cost{{0, -1}, {-1, 0}}},
		"asymmetric":      {Costs: [][]Cost{{0, 1}, {2, 0}}},
		"out of range":    {Costs: [][]Cost{{0, 1}, {1, 0}}, LinkChanges: []LinkChange{{A: 0, B: 2}}},
		"to itself":       {Costs: [][]Cost{{0, 1}, {1, 0}}, LinkChanges: []LinkChange{{A: 1, B: 1}}},
		"negative time":   {Costs: [][]Cost{{0, 1}, {1, 0}}, LinkChanges: []LinkChange{{At: -1, A: 0, B: 1}}},
		"negative cost":   {Costs: [][]Cost{{0, 1}, {1, 0}}, LinkChanges: []LinkChange{{A: 0, B: 1, Cost: -3}}},
		"max_delay":       {Costs: [][]Cost{{0}}, MaxDelay: -1},
		"max_events":      {Costs: [][]Cost{{0}}, MaxEvents: -1},
	}
	for msg, topo := range cases {
		assert.ErrorContains(t, TopologyValidator(topo), msg, msg)
	}
}

func TestTopologyValidator_InfSymmetry(t *testing.T) {
	assert.NoError(t, TopologyValidator(&Topology{Costs: [][]Cost{{0, INF}, {INF + 1, 0}}}))
}
