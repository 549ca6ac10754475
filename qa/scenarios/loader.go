// Package scenarios encodes the worked examples from spec §8 as data:
// each YAML file describes a network, fleet, and payload set plus the
// expected run outcome, adapted from the teacher's YAML-driven scenario
// loader (same Load/RunScenario split, same glob-based test discovery).
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agvfleet/scheduler/core/model"
	"github.com/agvfleet/scheduler/core/network"
)

// EdgeDef is one network edge in a scenario fixture.
type EdgeDef struct {
	A      int     `yaml:"a"`
	B      int     `yaml:"b"`
	Weight float64 `yaml:"weight"`
}

// AGVDef is one fleet vehicle's starting state in a scenario fixture.
type AGVDef struct {
	ID      string  `yaml:"id"`
	Station int     `yaml:"station"`
	Battery float64 `yaml:"battery"`
}

// PayloadDef is one payload in a scenario fixture.
type PayloadDef struct {
	ID           string  `yaml:"id"`
	Source       int     `yaml:"source"`
	Destination  int     `yaml:"destination"`
	Weight       float64 `yaml:"weight"`
	Priority     int     `yaml:"priority"`
	DispatchTime int     `yaml:"dispatch_time"`
}

// Expected holds the assertions to check after running a scenario. Fields
// left nil are not checked, letting each fixture assert only what its
// worked example cares about.
type Expected struct {
	MakespanMinutes       *int             `yaml:"makespan_minutes,omitempty"`
	Deadlocked            *bool            `yaml:"deadlocked,omitempty"`
	DeliveredCount        *int             `yaml:"delivered_count,omitempty"`
	AvgDeliveryByPriority map[int]float64  `yaml:"avg_delivery_by_priority,omitempty"`
	ChargeCounts          map[string]int   `yaml:"charge_counts,omitempty"`
	FirstMoveTo           *int             `yaml:"first_move_to,omitempty"`
}

// Scenario is one YAML-defined worked example.
type Scenario struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Edges       []EdgeDef    `yaml:"edges"`
	AGVs        []AGVDef     `yaml:"agvs"`
	Payloads    []PayloadDef `yaml:"payloads"`
	Expected    Expected     `yaml:"expected"`
}

// Load reads and parses a scenario fixture from path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// BuildNetwork constructs the Network the scenario describes.
func (sc *Scenario) BuildNetwork() *network.Network {
	n := network.New()
	edges := make([]network.Edge, 0, len(sc.Edges))
	for _, e := range sc.Edges {
		edges = append(edges, network.Edge{A: e.A, B: e.B, Weight: e.Weight})
	}
	n.SetEdges(edges)
	return n
}

// BuildFleet constructs the AGV roster, applying each definition's battery
// override on top of a fresh, idle AGV.
func (sc *Scenario) BuildFleet() []*model.AGV {
	fleet := make([]*model.AGV, 0, len(sc.AGVs))
	for _, d := range sc.AGVs {
		a := model.NewAGV(d.ID, d.Station)
		if d.Battery != 0 {
			a.Battery = d.Battery
		}
		fleet = append(fleet, a)
	}
	return fleet
}

// BuildPayloads constructs the payload set.
func (sc *Scenario) BuildPayloads() []*model.Payload {
	payloads := make([]*model.Payload, 0, len(sc.Payloads))
	for _, d := range sc.Payloads {
		payloads = append(payloads, &model.Payload{
			ID:           d.ID,
			Source:       d.Source,
			Destination:  d.Destination,
			Weight:       d.Weight,
			Priority:     d.Priority,
			DispatchTime: d.DispatchTime,
		})
	}
	return payloads
}
