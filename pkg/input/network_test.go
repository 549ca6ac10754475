package input_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agvfleet/scheduler/config"
	"github.com/agvfleet/scheduler/core/model"
	"github.com/agvfleet/scheduler/pkg/input"
)

func testNetworkConfig() config.NetworkConfig {
	return config.NetworkConfig{
		Stations: []int{1, 2, 9},
		Edges: []config.EdgeConfig{
			{A: 1, B: 2, Weight: 5},
			{A: 2, B: 9, Weight: 5},
		},
	}
}

func TestValidateStations_AcceptsKnownStations(t *testing.T) {
	net := input.BuildNetwork(testNetworkConfig())
	payloads := []*model.Payload{
		{ID: "P1", Source: 1, Destination: 9},
	}
	require.NoError(t, input.ValidateStations(payloads, net))
}

func TestValidateStations_RejectsUnknownSource(t *testing.T) {
	net := input.BuildNetwork(testNetworkConfig())
	payloads := []*model.Payload{
		{ID: "P1", Source: 99, Destination: 9},
	}
	err := input.ValidateStations(payloads, net)
	assert.Error(t, err)
}

func TestValidateStations_RejectsUnknownDestination(t *testing.T) {
	net := input.BuildNetwork(testNetworkConfig())
	payloads := []*model.Payload{
		{ID: "P1", Source: 1, Destination: 42},
	}
	err := input.ValidateStations(payloads, net)
	assert.Error(t, err)
}
