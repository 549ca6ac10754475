// Package metrics accumulates the run-level statistics spec §4.4 requires:
// per-priority delivery latency, per-AGV charge counts, and makespan.
package metrics

import (
	"sync"

	"github.com/agvfleet/scheduler/core/model"
)

// Metrics is the final, immutable summary of one simulation run.
type Metrics struct {
	MakespanMinutes       int
	AvgDeliveryByPriority map[int]float64
	ChargeCounts          map[string]int
	DeliveredCount        int
}

// Recorder accumulates per-delivery latency samples during a run. It is
// safe for concurrent use so that infra observers subscribed to the event
// bus can read alongside the scheduler, though the scheduler itself only
// ever calls it from its own goroutine.
type Recorder struct {
	mu        sync.Mutex
	latencies map[int][]int
	delivered int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{latencies: map[int][]int{}}
}

// RecordDelivery adds one delivery-latency sample for the given priority.
func (r *Recorder) RecordDelivery(priority, latencyMinutes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latencies[priority] = append(r.latencies[priority], latencyMinutes)
	r.delivered++
}

// Finalize produces the run's Metrics. chargeCounts is supplied by the
// caller since charge counts live on the AGV, not on any event the
// Recorder observes. Priorities with zero deliveries report an average of
// 0, per spec §4.4.
func (r *Recorder) Finalize(makespanMinutes int, chargeCounts map[string]int) Metrics {
	r.mu.Lock()
	defer r.mu.Unlock()

	avg := map[int]float64{
		model.PriorityHigh:   0,
		model.PriorityMedium: 0,
		model.PriorityLow:    0,
	}
	for priority, samples := range r.latencies {
		sum := 0
		for _, v := range samples {
			sum += v
		}
		avg[priority] = float64(sum) / float64(len(samples))
	}

	counts := make(map[string]int, len(chargeCounts))
	for id, c := range chargeCounts {
		counts[id] = c
	}

	return Metrics{
		MakespanMinutes:       makespanMinutes,
		AvgDeliveryByPriority: avg,
		ChargeCounts:          counts,
		DeliveredCount:        r.delivered,
	}
}
