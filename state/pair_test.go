package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortPairsNodes(t *testing.T) {
	pairs := []Pair[NodeId, NodeId]{
		{V1: 3, V2: 0},
		{V1: 1, V2: 2},
		{V1: 1, V2: 0},
		{V1: 2, V2: 1},
	}
	SortPairs(pairs)
	assert.Equal(t, []Pair[NodeId, NodeId]{
		{V1: 1, V2: 0},
		{V1: 1, V2: 2},
		{V1: 2, V2: 1},
		{V1: 3, V2: 0},
	}, pairs)
}

func TestSortPairsString(t *testing.T) {
	pairs := []Pair[string, string]{
		{V1: "b", V2: "y"},
		{V1: "a", V2: "z"},
		{V1: "a", V2: "x"},
	}
	SortPairs(pairs)
	assert.Equal(t, []Pair[string, string]{
		{V1: "a", V2: "x"},
		{V1: "a", V2: "z"},
		{V1: "b", V2: "y"},
	}, pairs)
}

func TestMakeSortedPair(t *testing.T) {
	assert.Equal(t, Pair[NodeId, NodeId]{1, 4}, MakeSortedPair[NodeId](4, 1))
	assert.Equal(t, Pair[NodeId, NodeId]{1, 4}, MakeSortedPair[NodeId](1, 4))
}
