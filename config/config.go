// Package config loads simulation configuration from an optional YAML/JSON
// file plus environment-variable overlay, using koanf the way the teacher
// layers its configuration providers.
package config

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/agvfleet/scheduler/core/model"
)

// EdgeConfig is one undirected weighted connection in the station network.
type EdgeConfig struct {
	A      int     `koanf:"a"`
	B      int     `koanf:"b"`
	Weight float64 `koanf:"weight"`
}

// NetworkConfig describes the station graph.
type NetworkConfig struct {
	Stations []int        `koanf:"stations"`
	Edges    []EdgeConfig `koanf:"edges"`
}

// AGVConfig describes one fleet vehicle's starting state.
type AGVConfig struct {
	ID      string `koanf:"id"`
	Station int    `koanf:"station"`
}

// SchedulerConfig tunes the dispatch loop's termination behavior.
type SchedulerConfig struct {
	MaxStuckTicks          int `koanf:"max_stuck_ticks"`
	FallbackAdvanceMinutes int `koanf:"fallback_advance_minutes"`
}

// MetricsConfig toggles Prometheus export and its bind address.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Address string `koanf:"address"`
}

// Config is the full simulation configuration: network topology, fleet
// roster, scheduler tuning, move-log persistence, and metrics export.
type Config struct {
	Network   NetworkConfig   `koanf:"network"`
	Fleet     []AGVConfig     `koanf:"fleet"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	ExecLog   ExecLogConfig   `koanf:"execlog"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// Default returns the canonical fixture from spec §6: 9 stations on a 3x3
// grid at (0,0)..(20,20), fully connected by Euclidean distance, with 3
// AGVs parked at stations 1, 3, and 7.
func Default() Config {
	coords := map[int][2]float64{
		1: {0, 0}, 2: {10, 0}, 3: {20, 0},
		4: {0, 10}, 5: {10, 10}, 6: {20, 10},
		7: {0, 20}, 8: {10, 20}, 9: {20, 20},
	}
	stations := make([]int, 0, len(coords))
	for id := range coords {
		stations = append(stations, id)
	}
	sort.Ints(stations)
	var edges []EdgeConfig
	for a := 1; a <= 9; a++ {
		for b := a + 1; b <= 9; b++ {
			ca, cb := coords[a], coords[b]
			edges = append(edges, EdgeConfig{A: a, B: b, Weight: math.Hypot(ca[0]-cb[0], ca[1]-cb[1])})
		}
	}

	cfg := Config{
		Network: NetworkConfig{Stations: stations, Edges: edges},
		Fleet: []AGVConfig{
			{ID: "AGV-1", Station: 1},
			{ID: "AGV-2", Station: 3},
			{ID: "AGV-3", Station: 7},
		},
		Scheduler: SchedulerConfig{
			MaxStuckTicks:          5,
			FallbackAdvanceMinutes: 5,
		},
		Metrics: MetricsConfig{Enabled: true, Address: ":9090"},
	}
	cfg.ExecLog.SetDefaults()
	return cfg
}

// Load builds a Config starting from Default(), overlaying a config file
// (if path is non-empty; format selected by extension) and then
// environment variables prefixed AGV_SCHED_ (double underscore separates
// nesting, e.g. AGV_SCHED_METRICS__ADDRESS).
func Load(path string) (Config, error) {
	cfg := Default()

	k := koanf.New(".")

	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return Config{}, fmt.Errorf("config: unsupported file extension for %q", path)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return Config{}, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("AGV_SCHED_", ".", envKeyTransform), nil); err != nil {
		return Config{}, fmt.Errorf("config: loading environment overlay: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ExecLog.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envKeyTransform(s string) string {
	s = strings.TrimPrefix(s, "AGV_SCHED_")
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks the loaded configuration for internal consistency before
// it is handed to the scheduler.
func (c Config) Validate() error {
	if len(c.Fleet) == 0 {
		return fmt.Errorf("config: fleet must have at least one AGV")
	}
	stationSet := map[int]bool{}
	for _, s := range c.Network.Stations {
		stationSet[s] = true
	}
	for _, e := range c.Network.Edges {
		if e.Weight <= 0 {
			return fmt.Errorf("config: edge %d-%d has non-positive weight %.4f", e.A, e.B, e.Weight)
		}
		if !stationSet[e.A] || !stationSet[e.B] {
			return fmt.Errorf("config: edge %d-%d references an undeclared station", e.A, e.B)
		}
	}
	for _, a := range c.Fleet {
		if a.ID == "" {
			return fmt.Errorf("config: fleet AGV missing id")
		}
		if !stationSet[a.Station] {
			return fmt.Errorf("config: agv %s starts at undeclared station %d", a.ID, a.Station)
		}
	}
	if err := c.ExecLog.Validate(); err != nil {
		return err
	}
	return nil
}

// ChargingStationDeclared reports whether the network includes the
// canonical charging station id, for callers that want to warn early
// rather than discover it via a stuck AGV.
func (c Config) ChargingStationDeclared() bool {
	for _, s := range c.Network.Stations {
		if s == model.ChargingStation {
			return true
		}
	}
	return false
}
