package scheduler

import "github.com/agvfleet/scheduler/core/model"

// Config parameterizes a Scheduler run. The zero value is not usable;
// callers should start from DefaultConfig.
type Config struct {
	// MaxCapacity is the capacity limit the pickup packer admits payloads
	// against. It does not change the AGV model itself: CanAttach, Attach
	// and the travel-time and battery formulas still use model.MaxCapacity.
	MaxCapacity float64

	// MaxStuckTicks is the number of consecutive no-progress ticks
	// tolerated before the run is declared deadlocked (spec §4.3, §7).
	MaxStuckTicks int

	// FallbackAdvanceMinutes is the clock jump used when no AGV busy_until
	// or payload dispatch_time provides a natural next event.
	FallbackAdvanceMinutes int
}

// DefaultConfig returns the constants named in spec §3/§4.3.
func DefaultConfig() Config {
	return Config{
		MaxCapacity:            model.MaxCapacity,
		MaxStuckTicks:          5,
		FallbackAdvanceMinutes: 5,
	}
}
