package model

// Simulation constants from spec §3. Kept as package-level constants rather
// than a config struct because every formula in the AGV state machine is
// derived directly from these values; core/scheduler.Config exposes an
// overridable copy of MaxCapacity for its pickup packer only.
const (
	MaxCapacity           = 10.0
	EmptyTravelMinPerUnit = 5.0
	FullTravelMinPerUnit  = 10.0
	ChargeDurationMin     = 15
	DischargeReferenceMin = 45.0
	LowBatteryThreshold   = 30.0
	MinBatteryForPickup   = 20.0
	CriticalBattery       = 10.0

	// FullBattery is the battery level an AGV reaches on completing a charge.
	FullBattery = 100.0

	// MaxBatteryUsedPerSegment caps the battery drained by a single hop.
	MaxBatteryUsedPerSegment = 30.0

	// SimStartMinutes is 08:00 expressed as minutes since midnight, used when
	// formatting HH:MM timestamps for the move-log stream and when converting
	// the payload feed's wall-clock scheduling times to offsets. Internally
	// the scheduler works in minutes since SIM_START (i.e. minute 0 == 08:00).
	SimStartMinutes = 8 * 60
)
