package network_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agvfleet/scheduler/core/network"
)

func gridNetwork() *network.Network {
	// Mirrors the default 3x3 grid test fixture: stations 1-9 at
	// coordinates (0,0)...(20,20), fully connected by Euclidean distance.
	coords := map[int][2]float64{
		1: {0, 0}, 2: {10, 0}, 3: {20, 0},
		4: {0, 10}, 5: {10, 10}, 6: {20, 10},
		7: {0, 20}, 8: {10, 20}, 9: {20, 20},
	}
	n := network.New()
	for a := 1; a <= 9; a++ {
		for b := a + 1; b <= 9; b++ {
			ca, cb := coords[a], coords[b]
			d := math.Hypot(ca[0]-cb[0], ca[1]-cb[1])
			n.AddEdge(a, b, d)
		}
	}
	return n
}

func TestDistance_AdjacentStations(t *testing.T) {
	n := gridNetwork()
	assert.InDelta(t, 10.0, n.Distance(1, 2), 1e-6)
}

func TestDistance_Symmetric(t *testing.T) {
	n := gridNetwork()
	assert.Equal(t, n.Distance(1, 9), n.Distance(9, 1))
}

func TestDistance_Unreachable(t *testing.T) {
	n := network.New()
	n.AddEdge(1, 2, 5)
	n.AddEdge(3, 4, 5)
	assert.True(t, math.IsInf(n.Distance(1, 3), 1))
}

func TestShortestPath_TwoHops(t *testing.T) {
	// A fully-connected grid means the direct edge always wins, so build a
	// sparse line graph to exercise multi-hop path reconstruction.
	n := network.New()
	n.SetEdges([]network.Edge{
		{A: 1, B: 2, Weight: 5},
		{A: 2, B: 3, Weight: 5},
	})
	path := n.ShortestPath(1, 3)
	require.Equal(t, []int{1, 2, 3}, path)
	assert.InDelta(t, 10.0, n.Distance(1, 3), 1e-6)
}

func TestShortestPath_SameStation(t *testing.T) {
	n := gridNetwork()
	assert.Equal(t, []int{5}, n.ShortestPath(5, 5))
}

func TestShortestPath_Unreachable(t *testing.T) {
	n := network.New()
	n.AddEdge(1, 2, 5)
	n.AddEdge(3, 4, 5)
	assert.Empty(t, n.ShortestPath(1, 3))
}

func TestShortestPath_TieBreaksOnSmallerStationID(t *testing.T) {
	// 1 has two equal-cost routes to 4: via 2 (id 2) and via 3 (id 3).
	// Spec requires the deterministic tie-break to prefer the smaller id.
	n := network.New()
	n.SetEdges([]network.Edge{
		{A: 1, B: 2, Weight: 5},
		{A: 2, B: 4, Weight: 5},
		{A: 1, B: 3, Weight: 5},
		{A: 3, B: 4, Weight: 5},
	})
	assert.Equal(t, []int{1, 2, 4}, n.ShortestPath(1, 4))
}

func TestSetEdges_Rebuilds(t *testing.T) {
	n := network.New()
	n.AddEdge(1, 2, 5)
	n.SetEdges([]network.Edge{{A: 3, B: 4, Weight: 1}})
	assert.True(t, math.IsInf(n.Distance(1, 2), 1))
	assert.InDelta(t, 1.0, n.Distance(3, 4), 1e-6)
}

func TestStations_SortedUnique(t *testing.T) {
	n := network.New()
	n.AddEdge(3, 1, 5)
	n.AddEdge(1, 2, 5)
	assert.Equal(t, []int{1, 2, 3}, n.Stations())
}
