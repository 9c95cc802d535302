package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pitchside-data/tracklab/internal/pitch"
)

// lineAt builds n samples walking +x at the given speed from origin.
func lineAt(n int, speed float64) []pitch.Point {
	pts := make([]pitch.Point, n)
	for i := range pts {
		pts[i] = pitch.Point{X: float64(i) * speed}
	}
	return pts
}

func TestTotalDistance(t *testing.T) {
	t.Parallel()

	t.Run("empty and single-point trajectories cover nothing", func(t *testing.T) {
		assert.Zero(t, TotalDistance(nil))
		assert.Zero(t, TotalDistance([]pitch.Point{{X: 3, Y: 4}}))
	})

	t.Run("straight line", func(t *testing.T) {
		assert.InDelta(t, 20.0, TotalDistance(lineAt(5, 5)), 1e-9)
	})

	t.Run("diagonal segments", func(t *testing.T) {
		pts := []pitch.Point{{}, {X: 3, Y: 4}, {X: 6, Y: 8}}
		assert.InDelta(t, 10.0, TotalDistance(pts), 1e-9)
	})

	t.Run("invariant under reversal", func(t *testing.T) {
		pts := []pitch.Point{{X: 1, Y: 2}, {X: -4, Y: 7}, {X: 12, Y: -9}, {X: 0.5, Y: 0.25}}
		rev := make([]pitch.Point, len(pts))
		for i, p := range pts {
			rev[len(pts)-1-i] = p
		}
		assert.InDelta(t, TotalDistance(pts), TotalDistance(rev), 1e-9)
	})
}

func TestZoneTimes(t *testing.T) {
	t.Parallel()

	constY := func(n int, y float64) []pitch.Point {
		pts := make([]pitch.Point, n)
		for i := range pts {
			pts[i] = pitch.Point{X: float64(i), Y: y}
		}
		return pts
	}

	t.Run("deep half attributed to band 1", func(t *testing.T) {
		assert.Equal(t, [3]int{40, 0, 0}, ZoneTimes(constY(40, -20)))
	})

	t.Run("centre attributed to band 2", func(t *testing.T) {
		assert.Equal(t, [3]int{0, 40, 0}, ZoneTimes(constY(40, 0)))
	})

	t.Run("attacking third attributed to band 3", func(t *testing.T) {
		assert.Equal(t, [3]int{0, 0, 40}, ZoneTimes(constY(40, 40)))
	})

	t.Run("band edges are half-open except the last", func(t *testing.T) {
		assert.Equal(t, [3]int{0, 1, 0}, ZoneTimes([]pitch.Point{{Y: -16.67}}))
		assert.Equal(t, [3]int{0, 0, 1}, ZoneTimes([]pitch.Point{{Y: 16.67}}))
		assert.Equal(t, [3]int{1, 0, 0}, ZoneTimes([]pitch.Point{{Y: -50}}))
		assert.Equal(t, [3]int{0, 0, 1}, ZoneTimes([]pitch.Point{{Y: 50}}))
	})

	t.Run("every in-bounds sample lands in exactly one band", func(t *testing.T) {
		for y := -50.0; y <= 50.0; y += 0.37 {
			zones := ZoneTimes([]pitch.Point{{Y: y}})
			assert.Equal(t, 1, zones[0]+zones[1]+zones[2], "y=%v", y)
		}
	})
}

func TestSprintTime(t *testing.T) {
	t.Parallel()

	t.Run("shuttling four metres per second sprints every segment", func(t *testing.T) {
		const n = 60
		pts := make([]pitch.Point, n)
		for i := range pts {
			if i%2 == 1 {
				pts[i] = pitch.Point{X: 4}
			}
		}
		assert.Equal(t, n-1, SprintTime(pts))
	})

	t.Run("threshold is strict", func(t *testing.T) {
		assert.Zero(t, SprintTime(lineAt(10, 3.0)))
		assert.Equal(t, 9, SprintTime(lineAt(10, 3.01)))
	})

	t.Run("stationary trajectory never sprints", func(t *testing.T) {
		assert.Zero(t, SprintTime(make([]pitch.Point, 100)))
	})
}

func TestQuickTurns(t *testing.T) {
	t.Parallel()

	t.Run("exact reversal after a sprint counts once", func(t *testing.T) {
		// Straight at 5 m/s, then a 180° about-face at the same speed.
		// Only the segment pair across the reversal counts; the return
		// leg continues straight.
		pts := []pitch.Point{{X: 0}, {X: 5}, {X: 10}, {X: 5}, {X: 0}}
		assert.Equal(t, 1, QuickTurns(pts))

		// Minimal case: out, straight back.
		minimal := []pitch.Point{{X: 0}, {X: 5}, {X: 0}}
		assert.Equal(t, 1, QuickTurns(minimal))
	})

	t.Run("slow turns do not count", func(t *testing.T) {
		pts := []pitch.Point{{X: 0}, {X: 2}, {X: 0}}
		assert.Zero(t, QuickTurns(pts))
	})

	t.Run("right angle is not enough", func(t *testing.T) {
		// 90° exactly is not a quick turn (strict inequality).
		pts := []pitch.Point{{}, {X: 5}, {X: 5, Y: 5}}
		assert.Zero(t, QuickTurns(pts))
	})

	t.Run("just past a right angle counts", func(t *testing.T) {
		pts := []pitch.Point{{}, {X: 5}, {X: 4.9, Y: 5}}
		assert.Equal(t, 1, QuickTurns(pts))
	})

	t.Run("degenerate zero-length segment is skipped", func(t *testing.T) {
		pts := []pitch.Point{{X: 0}, {X: 5}, {X: 5}, {X: 5}}
		assert.Zero(t, QuickTurns(pts))
	})

	t.Run("collinear segments survive acos clamping", func(t *testing.T) {
		// Perfectly parallel fast segments give a dot product that can
		// overshoot 1.0 in floating point; must yield angle 0, not NaN.
		pts := lineAt(20, 5)
		assert.Zero(t, QuickTurns(pts))
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("empty trajectory", func(t *testing.T) {
		s := Summarize(nil)
		assert.Zero(t, s.Samples)
		assert.Zero(t, s.TotalDistance)
		assert.Zero(t, s.MeanSpeedMps)
	})

	t.Run("steady pace", func(t *testing.T) {
		s := Summarize(lineAt(11, 2))
		assert.Equal(t, 11, s.Samples)
		assert.InDelta(t, 20.0, s.TotalDistance, 1e-9)
		assert.InDelta(t, 2.0, s.MeanSpeedMps, 1e-9)
		assert.InDelta(t, 2.0, s.MaxSpeedMps, 1e-9)
		assert.InDelta(t, 0.0, s.SpeedStdDev, 1e-9)
		assert.Zero(t, s.SprintTime)
	})

	t.Run("mixed pace", func(t *testing.T) {
		pts := []pitch.Point{{X: 0}, {X: 1}, {X: 6}, {X: 6.5}}
		s := Summarize(pts)
		assert.InDelta(t, 6.5, s.TotalDistance, 1e-9)
		assert.InDelta(t, 5.0, s.MaxSpeedMps, 1e-9)
		assert.Equal(t, 1, s.SprintTime)
		assert.False(t, math.IsNaN(s.SpeedStdDev))
	})
}
