package input_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agvfleet/scheduler/config"
	"github.com/agvfleet/scheduler/core/model"
	"github.com/agvfleet/scheduler/pkg/input"
)

const sampleCSV = `payload_id,source_station,destination_station,weight,priority,scheduling_time
P1,1,9,4.5,1,8:00
P2,3,7,2.0,2,8:15
`

func TestLoadPayloads_ParsesRows(t *testing.T) {
	payloads, err := input.LoadPayloads(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, payloads, 2)

	assert.Equal(t, "P1", payloads[0].ID)
	assert.Equal(t, 1, payloads[0].Source)
	assert.Equal(t, 9, payloads[0].Destination)
	assert.Equal(t, 4.5, payloads[0].Weight)
	assert.Equal(t, model.PriorityHigh, payloads[0].Priority)
	assert.Equal(t, 0, payloads[0].DispatchTime)
	assert.Equal(t, 15, payloads[1].DispatchTime)
}

func TestLoadPayloads_TimeBeforeSimStartClampsToZero(t *testing.T) {
	csvData := "payload_id,source_station,destination_station,weight,priority,scheduling_time\nP1,1,2,1,1,7:30\n"
	payloads, err := input.LoadPayloads(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 0, payloads[0].DispatchTime)
}

func TestLoadPayloads_RejectsSourceEqualsDestination(t *testing.T) {
	csvData := "payload_id,source_station,destination_station,weight,priority,scheduling_time\nP1,1,1,1,1,8:00\n"
	_, err := input.LoadPayloads(strings.NewReader(csvData))
	assert.Error(t, err)
}

func TestLoadPayloads_RejectsOverweight(t *testing.T) {
	csvData := "payload_id,source_station,destination_station,weight,priority,scheduling_time\nP1,1,2,999,1,8:00\n"
	_, err := input.LoadPayloads(strings.NewReader(csvData))
	assert.Error(t, err)
}

func TestLoadPayloads_RejectsMalformedTime(t *testing.T) {
	csvData := "payload_id,source_station,destination_station,weight,priority,scheduling_time\nP1,1,2,1,1,noon\n"
	_, err := input.LoadPayloads(strings.NewReader(csvData))
	assert.Error(t, err)
}

func TestLoadPayloads_RejectsDuplicateID(t *testing.T) {
	csvData := "payload_id,source_station,destination_station,weight,priority,scheduling_time\n" +
		"P1,1,2,1,1,8:00\nP1,3,4,1,2,8:05\n"
	_, err := input.LoadPayloads(strings.NewReader(csvData))
	assert.Error(t, err)
}

func TestBuildNetworkAndFleet(t *testing.T) {
	cfg := config.Default()
	net := input.BuildNetwork(cfg.Network)
	fleet := input.BuildFleet(cfg.Fleet)

	assert.Len(t, fleet, 3)
	assert.Greater(t, net.Distance(1, 9), 0.0)
}
