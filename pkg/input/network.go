package input

import (
	"fmt"

	"github.com/agvfleet/scheduler/config"
	"github.com/agvfleet/scheduler/core/model"
	"github.com/agvfleet/scheduler/core/network"
)

// BuildNetwork constructs a Network from a NetworkConfig, mirroring the
// grid fixture DataLoader.initializeNetwork builds by hand.
func BuildNetwork(cfg config.NetworkConfig) *network.Network {
	n := network.New()
	edges := make([]network.Edge, 0, len(cfg.Edges))
	for _, e := range cfg.Edges {
		edges = append(edges, network.Edge{A: e.A, B: e.B, Weight: e.Weight})
	}
	n.SetEdges(edges)
	return n
}

// BuildFleet constructs the AGV roster from an AGVConfig list, mirroring
// DataLoader.initializeAGVs: every AGV starts idle with a full battery.
func BuildFleet(cfgs []config.AGVConfig) []*model.AGV {
	fleet := make([]*model.AGV, 0, len(cfgs))
	for _, c := range cfgs {
		fleet = append(fleet, model.NewAGV(c.ID, c.Station))
	}
	return fleet
}

// ValidateStations rejects any payload whose source or destination names a
// station the network doesn't have, per spec §7's InputInvalid "unknown
// station id" case. This is fatal and must be surfaced before scheduling
// begins, rather than left to degrade into an unreachable path and a
// deadlocked run.
func ValidateStations(payloads []*model.Payload, net *network.Network) error {
	for _, p := range payloads {
		if !net.HasStation(p.Source) {
			return fmt.Errorf("input: payload %s: unknown source station %d", p.ID, p.Source)
		}
		if !net.HasStation(p.Destination) {
			return fmt.Errorf("input: payload %s: unknown destination station %d", p.ID, p.Destination)
		}
	}
	return nil
}
