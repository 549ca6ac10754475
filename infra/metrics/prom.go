// Package metrics adapts the scheduling core's event stream to Prometheus
// collectors, grounded on the teacher's PromSink registration pattern
// (register-or-reuse against a caller-supplied registerer).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/agvfleet/scheduler/core/metrics"
	"github.com/agvfleet/scheduler/internal/eventbus"
)

// PromCollector subscribes to the shared event bus and exposes run activity
// as Prometheus collectors. It is a pure observer: nothing it does affects
// the scheduler's own Result, which is computed independently and
// synchronously by core/scheduler.
type PromCollector struct {
	deliveries    *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	charges       *prometheus.CounterVec
	moves         prometheus.Counter
	activeVehicle prometheus.Gauge

	bus  *eventbus.Bus
	sub  <-chan eventbus.Event
	done chan struct{}
}

// NewPromCollector registers the scheduler's Prometheus metrics on reg and
// starts draining bus in a background goroutine. A nil reg defaults to the
// global Prometheus registerer. Call Close to stop draining.
func NewPromCollector(bus *eventbus.Bus, reg prometheus.Registerer) (*PromCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	deliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agv_deliveries_total",
		Help: "Total number of payloads delivered, by priority.",
	}, []string{"priority"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agv_delivery_latency_minutes",
		Help:    "Delivery latency in minutes (now - pickup_time), by priority.",
		Buckets: prometheus.LinearBuckets(0, 15, 20),
	}, []string{"priority"})
	charges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agv_charge_cycles_total",
		Help: "Total number of charge cycles started, by AGV.",
	}, []string{"agv_id"})
	moves := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agv_moves_total",
		Help: "Total number of hops initiated across the fleet.",
	})
	activeVehicle := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "agv_fleet_size",
		Help: "Number of AGVs in the simulated fleet.",
	})

	for _, c := range []prometheus.Collector{deliveries, latency, charges, moves, activeVehicle} {
		if err := registerOrReuse(reg, c); err != nil {
			return nil, err
		}
	}

	pc := &PromCollector{
		deliveries:    deliveries,
		latency:       latency,
		charges:       charges,
		moves:         moves,
		activeVehicle: activeVehicle,
		bus:           bus,
		done:          make(chan struct{}),
	}
	if bus != nil {
		pc.sub = bus.Subscribe()
		go pc.drain()
	}
	return pc, nil
}

// SetFleetSize sets the fleet-size gauge once at run start.
func (c *PromCollector) SetFleetSize(n int) {
	c.activeVehicle.Set(float64(n))
}

func (c *PromCollector) drain() {
	for {
		select {
		case ev, ok := <-c.sub:
			if !ok {
				return
			}
			c.handle(ev)
		case <-c.done:
			return
		}
	}
}

func (c *PromCollector) handle(ev eventbus.Event) {
	switch e := ev.(type) {
	case coremetrics.DeliveryEvent:
		label := priorityLabel(e.Priority)
		c.deliveries.WithLabelValues(label).Inc()
		c.latency.WithLabelValues(label).Observe(float64(e.Latency))
	case coremetrics.ChargeEvent:
		c.charges.WithLabelValues(e.AGVID).Inc()
	case coremetrics.MoveEvent:
		_ = e
		c.moves.Inc()
	}
}

// Close stops draining the bus and unsubscribes.
func (c *PromCollector) Close() {
	close(c.done)
	if c.bus != nil && c.sub != nil {
		c.bus.Unsubscribe(c.sub)
	}
}

func registerOrReuse(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

func priorityLabel(p int) string {
	switch p {
	case 1:
		return "high"
	case 2:
		return "medium"
	case 3:
		return "low"
	default:
		return "unknown"
	}
}
