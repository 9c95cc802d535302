// Package metrics computes per-player statistics from an ordered
// position trajectory sampled at 1 Hz.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pitchside-data/tracklab/internal/pitch"
)

const (
	// SprintSpeedMps is the speed above which a segment counts as
	// sprinting (strict).
	SprintSpeedMps = 3.0

	// QuickTurnAngleDeg is the direction change beyond which a
	// post-sprint segment counts as a quick turn (strict).
	QuickTurnAngleDeg = 90.0

	// ZoneCount is the number of equal y-bands the pitch is split into.
	ZoneCount = 3
)

// Zone band edges along y for the default pitch. Bands 1 and 2 are
// half-open; only the last band includes its upper edge.
var zoneEdges = [ZoneCount + 1]float64{-50, -16.67, 16.67, 50}

// TotalDistance returns the summed Euclidean distance between
// consecutive samples, in metres.
func TotalDistance(points []pitch.Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += math.Hypot(points[i].X-points[i-1].X, points[i].Y-points[i-1].Y)
	}
	return total
}

// ZoneTimes buckets each sample into one of three y-bands and returns
// the dwell time per band in seconds (one second per sample). Samples
// outside the band range entirely (beyond the pitch) are not counted.
func ZoneTimes(points []pitch.Point) [ZoneCount]int {
	var times [ZoneCount]int
	for _, p := range points {
		switch {
		case p.Y >= zoneEdges[0] && p.Y < zoneEdges[1]:
			times[0]++
		case p.Y >= zoneEdges[1] && p.Y < zoneEdges[2]:
			times[1]++
		case p.Y >= zoneEdges[2] && p.Y <= zoneEdges[3]:
			times[2]++
		}
	}
	return times
}

// SprintTime returns the number of seconds spent above the sprint
// speed threshold, counting each consecutive-sample segment as one
// second.
func SprintTime(points []pitch.Point) int {
	sprint := 0
	for i := 1; i < len(points); i++ {
		speed := math.Hypot(points[i].X-points[i-1].X, points[i].Y-points[i-1].Y)
		if speed > SprintSpeedMps {
			sprint++
		}
	}
	return sprint
}

// QuickTurns counts direction changes sharper than 90° that
// immediately follow a sprint-speed segment. Zero-length segments
// have no direction and are skipped.
func QuickTurns(points []pitch.Point) int {
	turns := 0
	for i := 2; i < len(points); i++ {
		v1x := points[i-1].X - points[i-2].X
		v1y := points[i-1].Y - points[i-2].Y
		v2x := points[i].X - points[i-1].X
		v2y := points[i].Y - points[i-1].Y

		// Only the segment leading into the turn needs sprint speed.
		mag1 := math.Hypot(v1x, v1y)
		if mag1 <= SprintSpeedMps {
			continue
		}

		mag2 := math.Hypot(v2x, v2y)
		if mag2 == 0 {
			continue
		}

		// Clamp against floating-point overshoot before acos.
		cosTheta := (v1x*v2x + v1y*v2y) / (mag1 * mag2)
		cosTheta = math.Max(-1, math.Min(1, cosTheta))
		angle := math.Acos(cosTheta) * 180 / math.Pi
		if angle > QuickTurnAngleDeg {
			turns++
		}
	}
	return turns
}

// Summary aggregates the reducers plus segment-speed statistics for
// one trajectory.
type Summary struct {
	Samples       int
	TotalDistance float64 // metres
	ZoneTimes     [ZoneCount]int
	SprintTime    int // seconds above SprintSpeedMps
	QuickTurns    int
	MeanSpeedMps  float64
	MaxSpeedMps   float64
	SpeedStdDev   float64
}

// Summarize computes a full Summary over a trajectory. Trajectories
// shorter than two samples have no segments; their speed statistics
// are zero.
func Summarize(points []pitch.Point) Summary {
	s := Summary{
		Samples:       len(points),
		TotalDistance: TotalDistance(points),
		ZoneTimes:     ZoneTimes(points),
		SprintTime:    SprintTime(points),
		QuickTurns:    QuickTurns(points),
	}

	if len(points) < 2 {
		return s
	}

	speeds := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		speeds = append(speeds, math.Hypot(points[i].X-points[i-1].X, points[i].Y-points[i-1].Y))
	}

	s.MeanSpeedMps = stat.Mean(speeds, nil)
	if len(speeds) > 1 {
		s.SpeedStdDev = stat.StdDev(speeds, nil)
	}
	for _, v := range speeds {
		if v > s.MaxSpeedMps {
			s.MaxSpeedMps = v
		}
	}
	return s
}
