// Package scheduler implements the discrete-event dispatch loop described
// in spec §4.3: complete due tasks, assign idle AGVs by priority ladder,
// advance the clock, repeat until every payload is delivered or the run
// deadlocks.
package scheduler

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/agvfleet/scheduler/core/logger"
	"github.com/agvfleet/scheduler/core/metrics"
	"github.com/agvfleet/scheduler/core/model"
	"github.com/agvfleet/scheduler/core/network"
	"github.com/agvfleet/scheduler/internal/eventbus"
)

// maxIterations is a defensive backstop against a logic bug that would
// otherwise spin the loop forever; a correct run always terminates via
// either full delivery or the MaxStuckTicks deadlock check long before
// this is reached.
const maxIterations = 500_000

// Scheduler runs one deterministic, single-threaded simulation over a
// fixed fleet and payload set. It is not safe for concurrent use — spec §5
// requires a single logical clock and no parallelism in the core.
type Scheduler struct {
	cfg      Config
	net      *network.Network
	fleet    []*model.AGV
	payloads []*model.Payload
	log      logger.Logger
	bus      *eventbus.Bus
	recorder *metrics.Recorder

	now        int
	stuckTicks int
	moveLog    []MoveLogEntry
}

// New builds a Scheduler over the given network, fleet, and payload set.
// fleet and payloads are iterated in the order given for every tick phase,
// matching spec §5's fleet-order determinism requirement — callers must
// not pass randomized-order containers. bus and log may be nil.
func New(net *network.Network, fleet []*model.AGV, payloads []*model.Payload, cfg Config, log logger.Logger, bus *eventbus.Bus) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		net:      net,
		fleet:    fleet,
		payloads: payloads,
		log:      log,
		bus:      bus,
		recorder: metrics.NewRecorder(),
	}
}

// Result is the outcome of a completed Run.
type Result struct {
	MoveLog        []MoveLogEntry
	Metrics        metrics.Metrics
	Deadlocked     bool
	EndTimeMinutes int
}

// Run drives the simulation to completion: every payload delivered, or a
// deadlock declared after cfg.MaxStuckTicks consecutive ticks make no
// progress. Per spec §6 the run itself always terminates cleanly — a
// deadlock is reported in the Result, not returned as an error. Run only
// returns an error if ctx is cancelled or the iteration backstop trips.
func (s *Scheduler) Run(ctx context.Context) (Result, error) {
	for iter := 0; ; iter++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if iter >= maxIterations {
			return Result{}, fmt.Errorf("scheduler: exceeded %d ticks without terminating", maxIterations)
		}

		progressA := s.completeDueTasks()
		progressB := s.assignIdleAGVs()

		if s.allDelivered() {
			return s.finish(false), nil
		}

		if progressA || progressB {
			s.stuckTicks = 0
			continue
		}

		s.stuckTicks++
		if s.stuckTicks >= s.cfg.MaxStuckTicks {
			return s.finish(true), nil
		}
		s.now = s.nextEventTime()
	}
}

// completeDueTasks is tick Phase A: finish any move or charge whose
// busy_until has arrived, in fleet order.
func (s *Scheduler) completeDueTasks() bool {
	progress := false
	for _, a := range s.fleet {
		switch {
		case a.Mode == model.Moving && s.now >= a.BusyUntil:
			a.CompleteMove()
			progress = true
			for _, p := range append([]*model.Payload(nil), a.Held...) {
				if p.Destination != a.Station {
					continue
				}
				a.Detach(p)
				p.Delivered = true
				latency := s.now - p.PickupTime
				s.recorder.RecordDelivery(p.Priority, latency)
				if s.bus != nil {
					s.bus.Publish(metrics.DeliveryEvent{
						PayloadID: p.ID,
						AGVID:     a.ID,
						Priority:  p.Priority,
						Latency:   latency,
					})
				}
				if s.log != nil {
					s.log.Debugw("payload delivered", map[string]any{
						"payload_id": p.ID,
						"agv_id":     a.ID,
						"latency":    latency,
					})
				}
			}
		case a.Mode == model.Charging && s.now >= a.BusyUntil:
			a.CompleteCharge()
			progress = true
		}
	}
	return progress
}

// assignIdleAGVs is tick Phase B: give every AGV that is idle at s.now a
// new action, applying the five-rule priority ladder from spec §4.3 in
// fleet order.
func (s *Scheduler) assignIdleAGVs() bool {
	attached := map[*model.Payload]bool{}
	for _, a := range s.fleet {
		for _, p := range a.Held {
			attached[p] = true
		}
	}

	progress := false
	for _, a := range s.fleet {
		if !a.IsIdle(s.now) {
			continue
		}
		if s.tryAssign(a, attached) {
			progress = true
		}
	}
	return progress
}

// tryAssign applies the five-rule ladder to a single idle AGV, returning
// whether it took an action.
func (s *Scheduler) tryAssign(a *model.AGV, attached map[*model.Payload]bool) bool {
	// Rule 1: critical charge dash.
	if a.Battery < model.CriticalBattery && a.Station != model.ChargingStation {
		return s.hopToward(a, model.ChargingStation)
	}
	// Rule 2: begin charge.
	if a.CanStartCharge() {
		a.StartCharge(s.now)
		if s.bus != nil {
			s.bus.Publish(metrics.ChargeEvent{AGVID: a.ID, Count: a.ChargeCount})
		}
		if s.log != nil {
			s.log.Debugw("charge started", map[string]any{"agv_id": a.ID, "count": a.ChargeCount})
		}
		return true
	}
	// Rule 3: deliver a held payload toward its nearest destination.
	if len(a.Held) > 0 {
		target := s.nearestHeldDestination(a)
		return s.hopToward(a, target)
	}
	// Rule 4: preventive charge.
	if a.Battery < model.LowBatteryThreshold && a.Station != model.ChargingStation {
		return s.hopToward(a, model.ChargingStation)
	}
	// Rule 5: pickup.
	if a.Battery >= model.MinBatteryForPickup {
		return s.tryPickup(a, attached)
	}
	return false
}

// nearestHeldDestination picks, among the AGV's held payloads, the
// destination with the smallest distance from its current station,
// breaking ties on the smaller station id (spec §4.3).
func (s *Scheduler) nearestHeldDestination(a *model.AGV) int {
	best := -1
	bestDist := math.Inf(1)
	for _, p := range a.Held {
		d := s.net.Distance(a.Station, p.Destination)
		if d < bestDist || (d == bestDist && (best == -1 || p.Destination < best)) {
			bestDist = d
			best = p.Destination
		}
	}
	return best
}

// pickupCandidate is one source station's greedily-packed load for a
// single AGV, scored for the source-selection tie-break in spec §4.3.
type pickupCandidate struct {
	source       int
	admitted     []*model.Payload
	bestPriority int
	distance     float64
}

// tryPickup implements rule 5: group available payloads by source, greedily
// pack each source's payloads within remaining capacity, score sources by
// (best priority, distance, station id), and either attach the winning
// source's admitted payloads (if already there) or hop toward it.
func (s *Scheduler) tryPickup(a *model.AGV, attached map[*model.Payload]bool) bool {
	bySource := map[int][]*model.Payload{}
	for _, p := range s.payloads {
		if p.Delivered || attached[p] || p.DispatchTime > s.now {
			continue
		}
		bySource[p.Source] = append(bySource[p.Source], p)
	}
	if len(bySource) == 0 {
		return false
	}

	var candidates []pickupCandidate
	for source, ps := range bySource {
		model.SortByPriorityThenDispatch(ps)
		var admitted []*model.Payload
		load := a.Load
		for _, p := range ps {
			if load+p.Weight <= s.cfg.MaxCapacity+1e-9 {
				admitted = append(admitted, p)
				load += p.Weight
			}
		}
		if len(admitted) == 0 {
			continue
		}
		candidates = append(candidates, pickupCandidate{
			source:       source,
			admitted:     admitted,
			bestPriority: admitted[0].Priority,
			distance:     s.net.Distance(a.Station, source),
		})
	}
	if len(candidates) == 0 {
		return false
	}

	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if ci.bestPriority != cj.bestPriority {
			return ci.bestPriority < cj.bestPriority
		}
		if ci.distance != cj.distance {
			return ci.distance < cj.distance
		}
		return ci.source < cj.source
	})

	best := candidates[0]
	if a.Station == best.source {
		for _, p := range best.admitted {
			if !a.CanAttach(p) {
				continue
			}
			if err := a.Attach(p, s.now); err != nil {
				if s.log != nil {
					s.log.Errorf("attach failed: %v", err)
				}
				continue
			}
			attached[p] = true
		}
		return true
	}
	return s.hopToward(a, best.source)
}

// hopToward moves a one step along the shortest path toward target,
// logging the hop. It returns false if a is already at target, its battery
// is exhausted, or target is unreachable, in which case the caller should
// treat the AGV as having made no progress this tick.
func (s *Scheduler) hopToward(a *model.AGV, target int) bool {
	if a.Station == target {
		return false
	}
	if a.Battery <= 0 {
		if s.log != nil {
			s.log.Warnf("agv %s: battery exhausted at station %d", a.ID, a.Station)
		}
		return false
	}
	path := s.net.ShortestPath(a.Station, target)
	if len(path) < 2 {
		if s.log != nil {
			s.log.Warnf("agv %s: no path from %d to %d", a.ID, a.Station, target)
		}
		return false
	}
	next := path[1]
	dist := s.net.EdgeWeight(a.Station, next)
	from := a.Station
	loadAtDeparture := a.Load
	payloadIDs := a.PayloadIDs()

	a.StartMove(next, dist, s.now)

	entry := MoveLogEntry{
		AGVID:       a.ID,
		From:        from,
		To:          next,
		TimeMinutes: s.now,
		Load:        loadAtDeparture,
		PayloadIDs:  payloadIDs,
	}
	s.moveLog = append(s.moveLog, entry)
	if s.log != nil {
		s.log.Infof("%s", entry.String())
	}
	if s.bus != nil {
		s.bus.Publish(metrics.MoveEvent{
			AGVID:       entry.AGVID,
			From:        entry.From,
			To:          entry.To,
			TimeMinutes: entry.TimeMinutes,
			Load:        entry.Load,
			PayloadIDs:  entry.PayloadIDs,
		})
	}
	return true
}

// allDelivered reports whether every payload has reached its destination.
func (s *Scheduler) allDelivered() bool {
	for _, p := range s.payloads {
		if !p.Delivered {
			return false
		}
	}
	return true
}

// nextEventTime is tick Phase C's clock advance: the earliest time some
// AGV's busy_until elapses or some payload's dispatch_time arrives, or a
// fallback jump if nothing is pending.
func (s *Scheduler) nextEventTime() int {
	next := -1
	consider := func(t int) {
		if t > s.now && (next == -1 || t < next) {
			next = t
		}
	}
	for _, a := range s.fleet {
		if a.Mode != model.Idle {
			consider(a.BusyUntil)
		}
	}
	for _, p := range s.payloads {
		if !p.Delivered {
			consider(p.DispatchTime)
		}
	}
	if next == -1 {
		return s.now + s.cfg.FallbackAdvanceMinutes
	}
	return next
}

func (s *Scheduler) finish(deadlocked bool) Result {
	chargeCounts := make(map[string]int, len(s.fleet))
	for _, a := range s.fleet {
		chargeCounts[a.ID] = a.ChargeCount
	}
	m := s.recorder.Finalize(s.now, chargeCounts)

	if s.log != nil {
		if deadlocked {
			s.log.Warnf("deadlock declared after %d stuck ticks at t=%d (%d/%d delivered)",
				s.cfg.MaxStuckTicks, s.now, m.DeliveredCount, len(s.payloads))
		} else {
			s.log.Infof("run complete: makespan=%dmin delivered=%d/%d", s.now, m.DeliveredCount, len(s.payloads))
		}
	}

	return Result{
		MoveLog:        s.moveLog,
		Metrics:        m,
		Deadlocked:     deadlocked,
		EndTimeMinutes: s.now,
	}
}
