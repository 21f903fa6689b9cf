//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/encodeous/dvsim/sim"
	"github.com/encodeous/dvsim/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const (
	a state.NodeId = iota
	b
	c
)

func TestOptimalConvergence(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	vh := &VirtualHarness{}
	vh.NewNodes(3)
	// c <-50-> a <-10-> b
	vh.AddLink(a, b, 10)
	vh.AddLink(a, c, 50)
	// b <-10-> c comes up later
	vh.ChangeLink(1000, b, c, 10)

	conv1 := vh.WhenCost(a, c, 50, nil)
	conv2 := vh.WhenCost(a, c, 20, conv1)

	res, err := vh.Start(context.Background())
	require.NoError(t, err)
	assert.True(t, conv1.Triggered(), "a never reached c directly")
	assert.True(t, conv2.Triggered(), "a never reached c through b")
	assert.True(t, res.Converged)
	assert.Equal(t, []state.Cost{0, 10, 20}, res.Costs[a])
}

func TestLinkFailureRecovery(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	vh := &VirtualHarness{}
	vh.NewNodes(4)
	vh.AddLink(0, 1, 1)
	vh.AddLink(1, 2, 1)
	vh.AddLink(2, 3, 1)
	vh.AddLink(0, 3, 8)
	vh.ChangeLink(500, 1, 2, state.INF)
	vh.ChangeLink(1500, 1, 2, 1)

	initial := vh.WhenCost(0, 2, 2, nil)
	down := vh.WhenCost(0, 2, 9, initial)
	up := vh.WhenCost(0, 2, 2, down)

	res, err := vh.Start(context.Background())
	require.NoError(t, err)
	assert.True(t, initial.Triggered())
	assert.True(t, down.Triggered())
	assert.True(t, up.Triggered())
	assert.True(t, res.Converged)
	assert.Zero(t, res.Dropped)
}

func TestPartition(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	vh := &VirtualHarness{}
	vh.NewNodes(4)
	vh.AddLink(0, 1, 2)
	vh.AddLink(1, 2, 3)
	vh.AddLink(2, 3, 4)
	vh.ChangeLink(100, 1, 2, state.INF)

	res, err := vh.Start(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, []state.Cost{0, 2, state.INF, state.INF}, res.Costs[0])
	assert.Equal(t, []state.Cost{state.INF, state.INF, 4, 0}, res.Costs[3])
}

func TestBatchMatchesSingleRuns(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	topo := state.DefaultTopology()
	topo.LinkChanges = state.DefaultLinkChanges()
	batch, err := sim.RunBatch(context.Background(), topo, 6, 2, nil)
	require.NoError(t, err)

	for i, r := range batch.Trials {
		single := topo.Clone()
		single.Seed = topo.Seed + uint64(i)
		s, err := sim.New(single, sim.Options{})
		require.NoError(t, err)
		res, err := s.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, res.EndTime, r.EndTime, "trial %d", i)
		assert.Equal(t, res.Stats, r.Stats, "trial %d", i)
	}
}
