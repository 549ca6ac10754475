package scenarios

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agvfleet/scheduler/core/scheduler"
	infralogger "github.com/agvfleet/scheduler/infra/logger"
)

// RunScenario builds the network, fleet, and payload set the scenario
// describes, runs the scheduler to completion, and asserts the result
// against sc.Expected. Only the Expected fields that are set are checked,
// so each fixture exercises just the worked example it encodes.
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()

	net := sc.BuildNetwork()
	fleet := sc.BuildFleet()
	payloads := sc.BuildPayloads()

	s := scheduler.New(net, fleet, payloads, scheduler.DefaultConfig(), infralogger.NopLogger{}, nil)
	result, err := s.Run(context.Background())
	require.NoError(t, err)

	if sc.Expected.MakespanMinutes != nil {
		assert.Equal(t, *sc.Expected.MakespanMinutes, result.Metrics.MakespanMinutes, "makespan")
	}
	if sc.Expected.Deadlocked != nil {
		assert.Equal(t, *sc.Expected.Deadlocked, result.Deadlocked, "deadlocked")
	}
	if sc.Expected.DeliveredCount != nil {
		assert.Equal(t, *sc.Expected.DeliveredCount, result.Metrics.DeliveredCount, "delivered count")
	}
	for priority, want := range sc.Expected.AvgDeliveryByPriority {
		assert.InDelta(t, want, result.Metrics.AvgDeliveryByPriority[priority], 0.01,
			"avg delivery latency for priority %d", priority)
	}
	for agvID, want := range sc.Expected.ChargeCounts {
		assert.Equal(t, want, result.Metrics.ChargeCounts[agvID], "charge count for %s", agvID)
	}
	if sc.Expected.FirstMoveTo != nil {
		require.NotEmpty(t, result.MoveLog, "expected at least one move")
		assert.Equal(t, *sc.Expected.FirstMoveTo, result.MoveLog[0].To, "first move destination")
	}
}
