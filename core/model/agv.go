package model

import (
	"fmt"
	"math"
)

// Mode is the AGV's current activity.
type Mode int

const (
	Idle Mode = iota
	Moving
	Charging
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	case Charging:
		return "charging"
	default:
		return "unknown"
	}
}

// AGV is a mutable, single-owner vehicle in the fleet. The scheduler is the
// only writer; nothing else should mutate an AGV's fields directly once the
// simulation has started.
type AGV struct {
	ID          string
	Station     int
	Battery     float64
	Load        float64
	Held        []*Payload
	BusyUntil   int
	Mode        Mode
	Destination int
	ChargeCount int
}

// NewAGV creates an AGV parked idle at station with a full battery.
func NewAGV(id string, station int) *AGV {
	return &AGV{
		ID:          id,
		Station:     station,
		Battery:     FullBattery,
		Destination: station,
		Mode:        Idle,
	}
}

// IsIdle reports whether the AGV is available for a new action at now.
func (a *AGV) IsIdle(now int) bool {
	return a.Mode == Idle && now >= a.BusyUntil
}

// CanAttach reports whether payload p can be picked up by this AGV right now.
func (a *AGV) CanAttach(p *Payload) bool {
	return a.Mode == Idle &&
		a.Station == p.Source &&
		!p.Delivered &&
		a.Load+p.Weight <= MaxCapacity+1e-9
}

// Attach adds payload p to the AGV's held set, updating load. It returns an
// error (CapacityOverflow, spec §7) rather than panicking, since the pickup
// algorithm must never trigger this in practice.
func (a *AGV) Attach(p *Payload, now int) error {
	if a.Load+p.Weight > MaxCapacity+1e-9 {
		return fmt.Errorf("capacity overflow: agv %s load %.2f + payload %s weight %.2f > %.2f", a.ID, a.Load, p.ID, p.Weight, MaxCapacity)
	}
	a.Held = append(a.Held, p)
	a.Load += p.Weight
	p.MarkPickedUp(now)
	return nil
}

// Detach removes payload p from the held set. Delivered is set by the
// caller once it has confirmed the AGV is at p's destination.
func (a *AGV) Detach(p *Payload) {
	for i, h := range a.Held {
		if h == p {
			a.Held = append(a.Held[:i], a.Held[i+1:]...)
			a.Load -= p.Weight
			if a.Load < 0 {
				a.Load = 0
			}
			return
		}
	}
}

// TravelTimeMinutes returns the minutes needed to cross a segment of the
// given real-valued distance at the AGV's current load, per spec §4.2:
// per-unit time interpolates linearly between empty and full, and the
// result is rounded up to the minute.
func (a *AGV) TravelTimeMinutes(distance float64) int {
	perUnit := EmptyTravelMinPerUnit + (a.Load/MaxCapacity)*(FullTravelMinPerUnit-EmptyTravelMinPerUnit)
	return int(math.Ceil(perUnit * distance))
}

// batteryUsedForSegment computes the battery percentage consumed by a hop
// that takes travelTime minutes, per spec §4.2's simplified formula:
//
//	used = consumption_per_unit * load_factor * travel_time / 10
//
// clamped to MaxBatteryUsedPerSegment.
func (a *AGV) batteryUsedForSegment(travelTime int) float64 {
	consumptionPerUnit := FullBattery / DischargeReferenceMin
	loadFactor := 1 + a.Load/MaxCapacity
	used := consumptionPerUnit * loadFactor * float64(travelTime) / 10.0
	if used > MaxBatteryUsedPerSegment {
		used = MaxBatteryUsedPerSegment
	}
	return used
}

// StartMove transitions the AGV into Moving toward next, one hop of the
// given real-valued distance. Battery is decremented at move start; station
// is only updated by CompleteMove. Preconditions (Idle, battery > 0) are the
// caller's responsibility per spec §4.2; StartMove itself just applies the
// transition.
func (a *AGV) StartMove(next int, distance float64, now int) {
	travelTime := a.TravelTimeMinutes(distance)
	used := a.batteryUsedForSegment(travelTime)

	a.Mode = Moving
	a.Destination = next
	a.BusyUntil = now + travelTime
	a.Battery = math.Max(0, a.Battery-used)
}

// CompleteMove finishes an in-flight move, updating the AGV's station.
func (a *AGV) CompleteMove() {
	a.Station = a.Destination
	a.Mode = Idle
}

// CanStartCharge reports whether the AGV may begin charging right now.
func (a *AGV) CanStartCharge() bool {
	return a.Mode == Idle && a.Station == ChargingStation && a.Battery < FullBattery
}

// StartCharge transitions the AGV into Charging for ChargeDurationMin
// minutes and bumps the charge counter.
func (a *AGV) StartCharge(now int) {
	a.Mode = Charging
	a.BusyUntil = now + ChargeDurationMin
	a.ChargeCount++
}

// CompleteCharge finishes an in-flight charge, resetting battery to full.
func (a *AGV) CompleteCharge() {
	a.Battery = FullBattery
	a.Mode = Idle
}

// PayloadIDs returns the ids of currently held payloads in held order,
// matching the move-log stream's payload_info format (spec §4.5).
func (a *AGV) PayloadIDs() []string {
	ids := make([]string, len(a.Held))
	for i, p := range a.Held {
		ids[i] = p.ID
	}
	return ids
}
