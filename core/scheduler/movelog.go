package scheduler

import (
	"fmt"
	"strings"

	"github.com/agvfleet/scheduler/core/model"
)

// MoveLogEntry is one line of the move-log stream (spec §4.5): a record of
// a single AGV hop, emitted at the moment the hop is initiated.
type MoveLogEntry struct {
	AGVID       string
	From, To    int
	TimeMinutes int // minutes since SIM_START, i.e. the tick the hop started
	Load        float64
	PayloadIDs  []string
}

// String renders the entry in the exact format spec §4.5 mandates:
//
//	{agv_id}-{from_station}-{to_station}-{HH:MM}-{load:.1f}-{payload_info}
func (e MoveLogEntry) String() string {
	info := "empty"
	if len(e.PayloadIDs) > 0 {
		info = strings.Join(e.PayloadIDs, ",")
	}
	return fmt.Sprintf("%s-%d-%d-%s-%.1f-%s", e.AGVID, e.From, e.To, formatClock(e.TimeMinutes), e.Load, info)
}

// formatClock converts minutes-since-SIM_START to a wall-clock HH:MM
// string. Internally the scheduler only ever works in minute offsets;
// HH:MM formatting happens exclusively here, at log-emission time.
func formatClock(minutesSinceStart int) string {
	total := model.SimStartMinutes + minutesSinceStart
	h := (total / 60) % 24
	m := total % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}
