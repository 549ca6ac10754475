// Package report renders the detail and summary reports spec §6 names as
// optional CLI output, adapted from the original Java prototype's
// SimulationEngine report generator into idiomatic Go string building.
package report

import (
	"fmt"
	"strings"

	"github.com/agvfleet/scheduler/core/model"
	"github.com/agvfleet/scheduler/core/scheduler"
)

// priorityLabels lists priorities in the fixed display order the report
// always uses, regardless of which priorities actually appear in the run.
var priorityLabels = []int{model.PriorityHigh, model.PriorityMedium, model.PriorityLow}

// Detail renders the full report: summary statistics, per-priority
// delivery times, per-AGV final state, any undelivered payloads, and the
// complete move-log stream.
func Detail(result scheduler.Result, fleet []*model.AGV, payloads []*model.Payload) string {
	var b strings.Builder

	b.WriteString("AGV Fleet Scheduling Simulation Report\n")
	b.WriteString("=======================================\n\n")

	writeSummarySection(&b, result, payloads)
	writePrioritySection(&b, result)
	writeFleetSection(&b, fleet)
	writeUndeliveredSection(&b, payloads)

	fmt.Fprintf(&b, "Move-Log Stream (%d entries)\n", len(result.MoveLog))
	b.WriteString("----------------------------\n")
	for _, e := range result.MoveLog {
		fmt.Fprintf(&b, "- %s\n", e.String())
	}
	return b.String()
}

// Summary renders the condensed report: makespan, delivery time by
// priority, and charge counts.
func Summary(result scheduler.Result, fleet []*model.AGV, payloads []*model.Payload) string {
	var b strings.Builder

	b.WriteString("AGV Fleet Scheduling - Summary Report\n")
	b.WriteString("======================================\n\n")

	fmt.Fprintf(&b, "Total execution time: %d minutes\n\n", result.Metrics.MakespanMinutes)

	b.WriteString("Average delivery time by priority:\n")
	for _, p := range priorityLabels {
		fmt.Fprintf(&b, "  Priority %d: %.2f minutes\n", p, result.Metrics.AvgDeliveryByPriority[p])
	}
	b.WriteString("\n")

	b.WriteString("AGV charge counts:\n")
	total := 0
	for _, a := range fleet {
		count := result.Metrics.ChargeCounts[a.ID]
		total += count
		fmt.Fprintf(&b, "  %s: %d charges\n", a.ID, count)
	}
	fmt.Fprintf(&b, "  Total: %d charges\n\n", total)

	delivered := result.Metrics.DeliveredCount
	rate := 0.0
	if len(payloads) > 0 {
		rate = float64(delivered) / float64(len(payloads)) * 100
	}
	fmt.Fprintf(&b, "Delivered: %d/%d (%.1f%%)\n", delivered, len(payloads), rate)
	if result.Deadlocked {
		b.WriteString("Run ended in deadlock before all payloads were delivered.\n")
	}
	return b.String()
}

func writeSummarySection(b *strings.Builder, result scheduler.Result, payloads []*model.Payload) {
	delivered := result.Metrics.DeliveredCount
	undelivered := len(payloads) - delivered
	rate := 0.0
	if len(payloads) > 0 {
		rate = float64(delivered) / float64(len(payloads)) * 100
	}

	b.WriteString("1. Summary Statistics\n")
	b.WriteString("---------------------\n")
	fmt.Fprintf(b, "Total execution time: %d minutes\n", result.Metrics.MakespanMinutes)
	fmt.Fprintf(b, "Total payloads: %d\n", len(payloads))
	fmt.Fprintf(b, "Delivered payloads: %d\n", delivered)
	if undelivered > 0 {
		fmt.Fprintf(b, "Undelivered payloads: %d\n", undelivered)
	}
	fmt.Fprintf(b, "Delivery rate: %.1f%%\n", rate)
	if result.Deadlocked {
		b.WriteString("Terminated by deadlock.\n")
	}
	b.WriteString("\n")
}

func writePrioritySection(b *strings.Builder, result scheduler.Result) {
	b.WriteString("2. Average Delivery Time by Priority\n")
	b.WriteString("-------------------------------------\n")
	for _, p := range priorityLabels {
		fmt.Fprintf(b, "Priority %d: %.2f minutes\n", p, result.Metrics.AvgDeliveryByPriority[p])
	}
	b.WriteString("\n")
}

func writeFleetSection(b *strings.Builder, fleet []*model.AGV) {
	b.WriteString("3. AGV Status\n")
	b.WriteString("-------------\n")
	for _, a := range fleet {
		fmt.Fprintf(b, "- %s:\n", a.ID)
		fmt.Fprintf(b, "  Final location: Station %d\n", a.Station)
		fmt.Fprintf(b, "  Final battery level: %.1f%%\n", a.Battery)
		fmt.Fprintf(b, "  Charge count: %d\n", a.ChargeCount)
		if len(a.Held) > 0 {
			fmt.Fprintf(b, "  Carrying payloads: %s\n", strings.Join(a.PayloadIDs(), ", "))
		}
	}
	b.WriteString("\n")
}

func writeUndeliveredSection(b *strings.Builder, payloads []*model.Payload) {
	var undelivered []*model.Payload
	for _, p := range payloads {
		if !p.Delivered {
			undelivered = append(undelivered, p)
		}
	}
	if len(undelivered) == 0 {
		return
	}
	b.WriteString("4. Undelivered Payloads\n")
	b.WriteString("-----------------------\n")
	for _, p := range undelivered {
		fmt.Fprintf(b, "- %s (priority %d, %d -> %d, weight %.1f)\n", p.ID, p.Priority, p.Source, p.Destination, p.Weight)
	}
	b.WriteString("\n")
}
