package metrics

// This package holds the run-level Recorder and its Metrics summary
// (metrics.go) and the DeliveryEvent, ChargeEvent and MoveEvent types the
// scheduler publishes on the internal event bus (events.go). The Prometheus
// exporter that consumes those events lives in infra/metrics.
