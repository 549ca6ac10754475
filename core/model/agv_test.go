package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agvfleet/scheduler/core/model"
)

func TestCanAttach(t *testing.T) {
	a := model.NewAGV("AGV-1", 1)
	p := &model.Payload{ID: "P1", Source: 1, Destination: 2, Weight: 4, Priority: 1}

	assert.True(t, a.CanAttach(p), "idle AGV at the payload's source should be able to attach it")

	a.Load = model.MaxCapacity
	assert.False(t, a.CanAttach(p), "attaching over capacity should be rejected")

	a.Load = 0
	other := &model.Payload{ID: "P2", Source: 2, Destination: 3, Weight: 1, Priority: 1}
	assert.False(t, a.CanAttach(other), "a payload sourced elsewhere cannot be attached")

	a.Mode = model.Moving
	assert.False(t, a.CanAttach(p), "a moving AGV cannot attach a payload")
}

func TestCanStartCharge(t *testing.T) {
	a := model.NewAGV("AGV-1", model.ChargingStation)
	a.Battery = 50
	assert.True(t, a.CanStartCharge())

	a.Battery = model.FullBattery
	assert.False(t, a.CanStartCharge(), "a fully charged AGV has nothing to gain from charging")

	a.Battery = 50
	a.Station = 1
	assert.False(t, a.CanStartCharge(), "charging is only available at the charging station")

	a.Station = model.ChargingStation
	a.Mode = model.Moving
	assert.False(t, a.CanStartCharge(), "a moving AGV cannot begin charging")
}
