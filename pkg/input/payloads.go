// Package input parses the external payload feed described in spec §6:
// CSV rows of payload_id,source_station,destination_station,weight,
// priority,scheduling_time. Parsing uses the standard library's
// encoding/csv — no third-party CSV library appears anywhere in the
// example corpus, so this is one of the few components built on the
// standard library by necessity rather than by omission.
package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/agvfleet/scheduler/core/model"
)

// expectedColumns is the CSV header DataLoader.java establishes:
// payload_id,source_station,destination_station,weight,priority,scheduling_time.
const expectedColumns = 6

// LoadPayloads parses payload rows from r. The first row is treated as a
// header and skipped. scheduling_time is expected in "H:mm" wall-clock
// form and is converted to minutes since SIM_START (spec §3); a time
// before SIM_START clamps to dispatch time 0 rather than erroring, since a
// payload that is "already available" is a reasonable reading of an
// earlier scheduling time.
func LoadPayloads(r io.Reader) ([]*model.Payload, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = expectedColumns

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("input: reading payload CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("input: payload CSV is empty")
	}

	seen := make(map[string]bool, len(rows)-1)
	payloads := make([]*model.Payload, 0, len(rows)-1)
	for i, row := range rows[1:] {
		p, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("input: payload CSV row %d: %w", i+2, err)
		}
		if err := p.Validate(model.MaxCapacity); err != nil {
			return nil, fmt.Errorf("input: payload CSV row %d: %w", i+2, err)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("input: payload CSV row %d: duplicate payload id %q", i+2, p.ID)
		}
		seen[p.ID] = true
		payloads = append(payloads, p)
	}
	return payloads, nil
}

func parseRow(row []string) (*model.Payload, error) {
	source, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return nil, fmt.Errorf("source_station: %w", err)
	}
	destination, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return nil, fmt.Errorf("destination_station: %w", err)
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil {
		return nil, fmt.Errorf("weight: %w", err)
	}
	priority, err := strconv.Atoi(strings.TrimSpace(row[4]))
	if err != nil {
		return nil, fmt.Errorf("priority: %w", err)
	}
	dispatch, err := parseSchedulingTime(strings.TrimSpace(row[5]))
	if err != nil {
		return nil, fmt.Errorf("scheduling_time: %w", err)
	}

	return &model.Payload{
		ID:           strings.TrimSpace(row[0]),
		Source:       source,
		Destination:  destination,
		Weight:       weight,
		Priority:     priority,
		DispatchTime: dispatch,
	}, nil
}

// parseSchedulingTime parses an "H:mm" wall-clock string into minutes since
// SIM_START.
func parseSchedulingTime(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected H:mm, got %q", s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("hour: %w", err)
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("minute: %w", err)
	}
	totalMinutes := h*60 + m
	offset := totalMinutes - model.SimStartMinutes
	if offset < 0 {
		return 0, nil
	}
	return offset, nil
}
