package scheduler_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agvfleet/scheduler/core/model"
	"github.com/agvfleet/scheduler/core/network"
	"github.com/agvfleet/scheduler/core/scheduler"
)

// gridNetwork mirrors the default 3x3 grid fixture: stations 1-9 at
// coordinates (0,0)...(20,20), fully connected by Euclidean distance.
func gridNetwork() *network.Network {
	coords := map[int][2]float64{
		1: {0, 0}, 2: {10, 0}, 3: {20, 0},
		4: {0, 10}, 5: {10, 10}, 6: {20, 10},
		7: {0, 20}, 8: {10, 20}, 9: {20, 20},
	}
	n := network.New()
	for a := 1; a <= 9; a++ {
		for b := a + 1; b <= 9; b++ {
			n.AddEdge(a, b, euclid(coords[a], coords[b]))
		}
	}
	return n
}

func euclid(a, b [2]float64) float64 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return math.Hypot(dx, dy)
}

func TestScheduler_SinglePayloadSingleAGV(t *testing.T) {
	// Scenario 1 (spec §8): one AGV at station 1, one payload 1 -> 9 with
	// weight small enough to ignore capacity, at dispatch time 0.
	net := gridNetwork()
	fleet := []*model.AGV{model.NewAGV("AGV-1", 1)}
	p := &model.Payload{ID: "P1", Source: 1, Destination: 9, Weight: 1, Priority: model.PriorityHigh, DispatchTime: 0}
	payloads := []*model.Payload{p}

	s := scheduler.New(net, fleet, payloads, scheduler.DefaultConfig(), nil, nil)
	result, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Deadlocked)
	assert.True(t, p.Delivered)
	assert.Equal(t, 1, result.Metrics.DeliveredCount)
	// distance(1,9) = sqrt(20^2+20^2) ~= 28.28 and the hop carries load 1,
	// so travel time/unit = 5.5 => ceil(5.5*28.28) = 156 minutes for a
	// direct hop.
	assert.Equal(t, result.EndTimeMinutes, result.Metrics.MakespanMinutes)
	assert.Greater(t, result.Metrics.AvgDeliveryByPriority[model.PriorityHigh], 0.0)
}

func TestScheduler_CapacityPacking(t *testing.T) {
	// Two payloads at the same source that together exceed capacity must
	// not both be admitted in one greedy pass.
	net := gridNetwork()
	fleet := []*model.AGV{model.NewAGV("AGV-1", 1)}
	pA := &model.Payload{ID: "PA", Source: 1, Destination: 2, Weight: 6, Priority: model.PriorityHigh, DispatchTime: 0}
	pB := &model.Payload{ID: "PB", Source: 1, Destination: 2, Weight: 5, Priority: model.PriorityHigh, DispatchTime: 0}
	payloads := []*model.Payload{pA, pB}

	s := scheduler.New(net, fleet, payloads, scheduler.DefaultConfig(), nil, nil)
	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Deadlocked)
	assert.True(t, pA.Delivered)
	assert.True(t, pB.Delivered)
	assert.Equal(t, 2, result.Metrics.DeliveredCount)
}

func TestScheduler_LowBatteryTriggersPreventiveCharge(t *testing.T) {
	net := gridNetwork()
	a := model.NewAGV("AGV-1", 1)
	a.Battery = model.LowBatteryThreshold - 1
	fleet := []*model.AGV{a}
	p := &model.Payload{ID: "P1", Source: 1, Destination: 2, Weight: 1, Priority: model.PriorityHigh, DispatchTime: 0}
	payloads := []*model.Payload{p}

	s := scheduler.New(net, fleet, payloads, scheduler.DefaultConfig(), nil, nil)
	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Deadlocked)
	assert.True(t, p.Delivered)
	assert.GreaterOrEqual(t, result.Metrics.ChargeCounts["AGV-1"], 1)
}

func TestScheduler_CriticalBatteryPreemptsDelivery(t *testing.T) {
	net := gridNetwork()
	a := model.NewAGV("AGV-1", 1)
	a.Battery = model.CriticalBattery - 1
	// Already holding a payload, but critical battery must still win rule 1.
	held := &model.Payload{ID: "PH", Source: 1, Destination: 2, Weight: 1, Priority: model.PriorityHigh, DispatchTime: 0}
	require.NoError(t, a.Attach(held, 0))
	fleet := []*model.AGV{a}
	payloads := []*model.Payload{held}

	s := scheduler.New(net, fleet, payloads, scheduler.DefaultConfig(), nil, nil)
	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Deadlocked)
	require.NotEmpty(t, result.MoveLog)
	assert.Equal(t, model.ChargingStation, result.MoveLog[0].To)
}

func TestScheduler_PriorityPreference(t *testing.T) {
	// Two payloads at different sources; the higher-priority one must be
	// picked up first even if farther away, per the source-scoring rule.
	net := gridNetwork()
	fleet := []*model.AGV{model.NewAGV("AGV-1", 5)}
	near := &model.Payload{ID: "PNear", Source: 4, Destination: 6, Weight: 1, Priority: model.PriorityLow, DispatchTime: 0}
	far := &model.Payload{ID: "PFar", Source: 9, Destination: 7, Weight: 1, Priority: model.PriorityHigh, DispatchTime: 0}
	payloads := []*model.Payload{near, far}

	s := scheduler.New(net, fleet, payloads, scheduler.DefaultConfig(), nil, nil)
	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Deadlocked)
	require.NotEmpty(t, result.MoveLog)
	assert.Equal(t, 9, result.MoveLog[0].To)
}

func TestScheduler_DeadlockAfterMaxStuckTicks(t *testing.T) {
	// A payload whose source is unreachable from every AGV can never be
	// picked up, so the run must terminate via deadlock rather than hang.
	net := network.New()
	net.AddEdge(1, 2, 5)
	net.AddEdge(50, 51, 5)
	fleet := []*model.AGV{model.NewAGV("AGV-1", 1)}
	p := &model.Payload{ID: "P1", Source: 50, Destination: 51, Weight: 1, Priority: model.PriorityHigh, DispatchTime: 0}
	payloads := []*model.Payload{p}

	s := scheduler.New(net, fleet, payloads, scheduler.DefaultConfig(), nil, nil)
	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Deadlocked)
	assert.False(t, p.Delivered)
}

func TestScheduler_MoveLogFormat(t *testing.T) {
	net := gridNetwork()
	fleet := []*model.AGV{model.NewAGV("AGV-1", 1)}
	p := &model.Payload{ID: "P1", Source: 1, Destination: 2, Weight: 1, Priority: model.PriorityHigh, DispatchTime: 0}
	payloads := []*model.Payload{p}

	s := scheduler.New(net, fleet, payloads, scheduler.DefaultConfig(), nil, nil)
	result, err := s.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, result.MoveLog)
	line := result.MoveLog[0].String()
	assert.Contains(t, line, "AGV-1-1-2-")
}
