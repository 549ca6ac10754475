// Package app wires the scheduling core to its collaborators: config,
// persistence, metrics and reporting. It is the layer cmd talks to,
// mirroring the teacher's app.Service / app.New split between
// construction and running.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/agvfleet/scheduler/config"
	"github.com/agvfleet/scheduler/core/execlog"
	"github.com/agvfleet/scheduler/core/model"
	"github.com/agvfleet/scheduler/core/scheduler"
	"github.com/agvfleet/scheduler/fleetstatus"
	"github.com/agvfleet/scheduler/infra/logger"
	"github.com/agvfleet/scheduler/infra/metrics"
	"github.com/agvfleet/scheduler/internal/eventbus"
	"github.com/agvfleet/scheduler/pkg/input"
	"github.com/agvfleet/scheduler/report"
)

// Service runs one simulation end to end: build the network and fleet from
// config, load payloads from a CSV feed, drive the scheduler to
// completion, and persist/report the outcome.
type Service struct {
	cfg    config.Config
	log    logger.Logger
	bus    *eventbus.Bus
	store  execlog.Store
	prom   *metrics.PromCollector
	status *fleetstatus.MemoryStore
	fs     *fleetstatus.Collector

	RunID string
}

// New builds a Service from cfg. It opens the configured move-log store and
// registers the Prometheus collectors, but does not run anything yet.
func New(cfg config.Config) (*Service, error) {
	log := logger.New("service")

	store, err := execlog.Open(cfg.ExecLog.Backend, cfg.ExecLog.Path)
	if err != nil {
		return nil, fmt.Errorf("app: opening execlog store: %w", err)
	}

	bus := eventbus.New()

	var prom *metrics.PromCollector
	if cfg.Metrics.Enabled {
		prom, err = metrics.NewPromCollector(bus, nil)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("app: registering prometheus collectors: %w", err)
		}
	}

	statusStore := fleetstatus.NewMemoryStore()
	fs := fleetstatus.NewCollector(statusStore, bus)

	return &Service{
		cfg:    cfg,
		log:    log,
		bus:    bus,
		store:  store,
		prom:   prom,
		status: statusStore,
		fs:     fs,
		RunID:  uuid.New().String(),
	}, nil
}

// Status returns the live per-AGV status snapshot as of the last completed
// tick observed on the event bus.
func (s *Service) Status() []fleetstatus.Status {
	return s.status.List(fleetstatus.Filter{})
}

// Result is one completed simulation run, ready for reporting.
type Result struct {
	scheduler.Result
	Fleet    []*model.AGV
	Payloads []*model.Payload
}

// RunFile builds the network/fleet from configuration, loads payloads from
// payloadPath, and runs the scheduler to completion, then persists every
// move of the finished run to the configured execlog store.
func (s *Service) RunFile(ctx context.Context, payloadPath string) (Result, error) {
	f, err := os.Open(payloadPath)
	if err != nil {
		return Result{}, fmt.Errorf("app: opening payload file: %w", err)
	}
	defer f.Close()
	return s.Run(ctx, f)
}

// Run builds the network/fleet from configuration, loads payloads from r,
// and runs the scheduler to completion.
func (s *Service) Run(ctx context.Context, payloadCSV io.Reader) (Result, error) {
	net := input.BuildNetwork(s.cfg.Network)
	fleet := input.BuildFleet(s.cfg.Fleet)
	s.status.Seed(fleet)

	payloads, err := input.LoadPayloads(payloadCSV)
	if err != nil {
		return Result{}, err
	}
	if err := input.ValidateStations(payloads, net); err != nil {
		return Result{}, err
	}

	if s.prom != nil {
		s.prom.SetFleetSize(len(fleet))
	}
	if s.cfg.Metrics.Enabled && s.cfg.Metrics.Address != "" {
		serverCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := metrics.StartPromServer(serverCtx, s.cfg.Metrics.Address); err != nil {
				s.log.Errorf("app: prometheus server: %v", err)
			}
		}()
	}

	schedCfg := scheduler.DefaultConfig()
	schedCfg.MaxStuckTicks = s.cfg.Scheduler.MaxStuckTicks
	schedCfg.FallbackAdvanceMinutes = s.cfg.Scheduler.FallbackAdvanceMinutes

	sched := scheduler.New(net, fleet, payloads, schedCfg, s.log, s.bus)
	result, err := sched.Run(ctx)
	if err != nil {
		return Result{}, err
	}

	for _, entry := range result.MoveLog {
		rec := execlog.Record{
			RunID:       s.RunID,
			AGVID:       entry.AGVID,
			From:        entry.From,
			To:          entry.To,
			TimeMinutes: entry.TimeMinutes,
			Load:        entry.Load,
			PayloadIDs:  entry.PayloadIDs,
			Line:        entry.String(),
		}
		if err := s.store.Append(ctx, rec); err != nil {
			s.log.Errorf("app: persisting move-log record: %v", err)
		}
	}

	return Result{Result: result, Fleet: fleet, Payloads: payloads}, nil
}

// DetailReport renders the full detail report for a completed run.
func (r Result) DetailReport() string {
	return report.Detail(r.Result, r.Fleet, r.Payloads)
}

// SummaryReport renders the condensed summary report for a completed run.
func (r Result) SummaryReport() string {
	return report.Summary(r.Result, r.Fleet, r.Payloads)
}

// Close releases the resources the Service opened.
func (s *Service) Close() error {
	if s.prom != nil {
		s.prom.Close()
	}
	if s.fs != nil {
		s.fs.Close()
	}
	return s.store.Close()
}
