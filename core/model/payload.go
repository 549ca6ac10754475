package model

import (
	"fmt"
	"sort"
)

// Priority classes for payloads. 1 is highest.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// Payload is a transport job with a source, destination, weight, priority
// and earliest-dispatch time. Source/destination/weight/priority/dispatch
// time are immutable after construction; Delivered is the only mutable
// field and only ever transitions false -> true.
type Payload struct {
	ID           string
	Source       int
	Destination  int
	Weight       float64
	Priority     int
	DispatchTime int // minutes since SIM_START
	Delivered    bool

	// PickupTime is stamped by the scheduler when the payload is attached to
	// an AGV. It is minutes since SIM_START and only meaningful once picked
	// up (see the Latency Definition open question in DESIGN.md).
	PickupTime int
	pickedUp   bool
}

// Validate checks the invariants a Payload must satisfy at construction.
func (p Payload) Validate(maxCapacity float64) error {
	if p.ID == "" {
		return fmt.Errorf("payload: id must not be empty")
	}
	if p.Source == p.Destination {
		return fmt.Errorf("payload %s: source and destination must differ", p.ID)
	}
	if p.Weight <= 0 || p.Weight > maxCapacity {
		return fmt.Errorf("payload %s: weight %.2f out of range (0, %.2f]", p.ID, p.Weight, maxCapacity)
	}
	if p.Priority < PriorityHigh || p.Priority > PriorityLow {
		return fmt.Errorf("payload %s: priority %d out of range [%d,%d]", p.ID, p.Priority, PriorityHigh, PriorityLow)
	}
	return nil
}

// MarkPickedUp records the pickup time used for latency accounting. It is a
// no-op if already marked, since a payload is only ever attached once
// before being delivered.
func (p *Payload) MarkPickedUp(now int) {
	if p.pickedUp {
		return
	}
	p.pickedUp = true
	p.PickupTime = now
}

// SortByPriorityThenDispatch sorts payloads by priority ascending, then by
// dispatch time ascending, matching the registry ordering in spec §2.
func SortByPriorityThenDispatch(payloads []*Payload) {
	sort.SliceStable(payloads, func(i, j int) bool {
		if payloads[i].Priority != payloads[j].Priority {
			return payloads[i].Priority < payloads[j].Priority
		}
		return payloads[i].DispatchTime < payloads[j].DispatchTime
	})
}
