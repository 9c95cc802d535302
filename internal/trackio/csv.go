// Package trackio reads and writes tracking data as CSV.
//
// The tracking stream is one row per position sample with the fixed
// header "player_id,time,x,y"; player metadata travels in a separate
// stream keyed by player_id.
package trackio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pitchside-data/tracklab/internal/pitch"
	"github.com/pitchside-data/tracklab/internal/sim"
)

// Tracking CSV column headers.
var trackingHeader = []string{"player_id", "time", "x", "y"}

// Metadata CSV column headers.
var metadataHeader = []string{"player_id", "shirt_number", "age", "height_cm", "weight_kg"}

// WriteSamples writes a tracking stream. Coordinates are emitted with
// two decimal places, matching the rounding the simulator applies.
func WriteSamples(w io.Writer, samples []sim.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trackingHeader); err != nil {
		return fmt.Errorf("failed to write tracking header: %w", err)
	}
	for _, s := range samples {
		row := []string{
			s.PlayerID,
			strconv.Itoa(s.Tick),
			strconv.FormatFloat(s.X, 'f', 2, 64),
			strconv.FormatFloat(s.Y, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write sample row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePlayerInfo writes the per-player metadata stream.
func WritePlayerInfo(w io.Writer, infos []sim.PlayerInfo) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(metadataHeader); err != nil {
		return fmt.Errorf("failed to write metadata header: %w", err)
	}
	for _, info := range infos {
		row := []string{
			info.PlayerID,
			strconv.Itoa(info.ShirtNumber),
			strconv.Itoa(info.Age),
			strconv.Itoa(info.HeightCM),
			strconv.Itoa(info.WeightKG),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write metadata row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadSamples parses a tracking stream. The source must carry at
// least x and y columns; player_id and time are optional (ticks are
// synthesised 1..N per stream when absent), and unknown columns are
// ignored. Row order is preserved.
func ReadSamples(r io.Reader) ([]sim.Sample, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	xCol, ok := cols["x"]
	if !ok {
		return nil, fmt.Errorf("missing required column %q", "x")
	}
	yCol, ok := cols["y"]
	if !ok {
		return nil, fmt.Errorf("missing required column %q", "y")
	}
	idCol, hasID := cols["player_id"]
	timeCol, hasTime := cols["time"]

	var samples []sim.Sample
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		s := sim.Sample{Tick: len(samples) + 1}
		if s.X, err = strconv.ParseFloat(record[xCol], 64); err != nil {
			return nil, fmt.Errorf("line %d: invalid x value %q: %w", line, record[xCol], err)
		}
		if s.Y, err = strconv.ParseFloat(record[yCol], 64); err != nil {
			return nil, fmt.Errorf("line %d: invalid y value %q: %w", line, record[yCol], err)
		}
		if hasID {
			s.PlayerID = record[idCol]
		}
		if hasTime {
			if s.Tick, err = strconv.Atoi(record[timeCol]); err != nil {
				return nil, fmt.Errorf("line %d: invalid time value %q: %w", line, record[timeCol], err)
			}
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// ReadPoints parses a tracking stream down to its position sequence,
// for feeding the metrics reducers directly.
func ReadPoints(r io.Reader) ([]pitch.Point, error) {
	samples, err := ReadSamples(r)
	if err != nil {
		return nil, err
	}
	return sim.Points(samples), nil
}
