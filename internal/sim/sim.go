// Package sim produces synthetic player trajectories.
//
// Each agent is integrated one tick at a time (a tick is one simulated
// second): a small random acceleration, a restoring pull towards the
// agent's home position, an occasional stochastic sprint, drag, a hard
// speed cap, and an inelastic bounce off the pitch boundary. The
// pipeline order is load-bearing: reordering the stages changes the
// numbers materially.
package sim

import (
	"math"

	"github.com/pitchside-data/tracklab/internal/config"
	"github.com/pitchside-data/tracklab/internal/pitch"
)

// Source supplies the stochastic draws the simulator consumes. A
// seeded *math/rand.Rand satisfies it; tests substitute scripted
// sources for deterministic runs.
type Source interface {
	Float64() float64 // uniform [0, 1)
	Intn(n int) int   // uniform integer [0, n)
	Perm(n int) []int // random permutation of [0, n)
}

// SprintPhase is the sprint lifecycle state of an agent.
type SprintPhase string

const (
	PhaseIdle      SprintPhase = "idle"      // not sprinting
	PhaseSprinting SprintPhase = "sprinting" // boost applied, Remaining ticks left
)

// SprintState is the tagged sprint state. Remaining is only
// meaningful while Phase is PhaseSprinting.
type SprintState struct {
	Phase     SprintPhase
	Remaining int
}

// Agent is one simulated player. Position and velocity carry full
// float precision between ticks; rounding happens only at emission.
type Agent struct {
	ID     string      // role code, opaque to the simulator
	Home   pitch.Point // attraction point the agent drifts back to
	X, Y   float64
	VX, VY float64
	Sprint SprintState
}

// NewAgent returns an agent at rest at the pitch origin.
func NewAgent(id string, home pitch.Point) *Agent {
	return &Agent{ID: id, Home: home, Sprint: SprintState{Phase: PhaseIdle}}
}

// Sample is one emitted position observation. Coordinates are rounded
// to two decimal places; Tick is 1-based and contiguous per agent.
type Sample struct {
	PlayerID string
	Tick     int
	X        float64
	Y        float64
}

// Params holds the tunable constants of the integrator.
type Params struct {
	BaseAccelMax      float64 // uniform accel drawn from [-v, v] per axis (m/s²)
	AttractionMax     float64 // peak restoring accel at full pitch offset (m/s²)
	SprintProbability float64 // per-tick chance of starting a sprint while idle
	SprintMinTicks    int     // inclusive sprint duration bounds
	SprintMaxTicks    int
	SprintBoost       float64 // boost accel along current heading (m/s²)
	MinBoostSpeed     float64 // below this speed there is no heading to boost along
	SpeedDecay        float64 // velocity retained per tick after drag
	MaxSpeed          float64 // hard speed cap (m/s)
	BounceDamping     float64 // fraction of speed kept (and reversed) on a wall hit
}

// DefaultParams returns the canonical tuning values.
func DefaultParams() Params {
	return ParamsFromTuning(config.EmptyTuningConfig())
}

// ParamsFromTuning builds simulator params from a loaded tuning config.
func ParamsFromTuning(cfg *config.TuningConfig) Params {
	return Params{
		BaseAccelMax:      cfg.GetBaseAccelMax(),
		AttractionMax:     cfg.GetAttractionMax(),
		SprintProbability: cfg.GetSprintProbability(),
		SprintMinTicks:    cfg.GetSprintMinTicks(),
		SprintMaxTicks:    cfg.GetSprintMaxTicks(),
		SprintBoost:       cfg.GetSprintBoost(),
		MinBoostSpeed:     cfg.GetMinBoostSpeedMps(),
		SpeedDecay:        cfg.GetSpeedDecay(),
		MaxSpeed:          cfg.GetMaxSpeedMps(),
		BounceDamping:     cfg.GetBounceDamping(),
	}
}

// Simulator advances agents through the per-tick pipeline. It holds
// no per-agent state; the same instance can run any number of agents
// sequentially.
type Simulator struct {
	params Params
	bounds pitch.Bounds
	rng    Source
}

// NewSimulator creates a simulator over the given bounds. rng is the
// only source of randomness; seed it per run (or per agent) for
// reproducible output.
func NewSimulator(params Params, bounds pitch.Bounds, rng Source) *Simulator {
	return &Simulator{params: params, bounds: bounds, rng: rng}
}

// uniform draws from [min, max).
func (s *Simulator) uniform(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// Step advances the agent by one tick, mutating its kinematic state
// in place. The stage order matches the integrator design: base
// accel, attraction, sprint, drag, cap, move, bounce.
func (s *Simulator) Step(a *Agent) {
	p := s.params

	// Base acceleration: independent uniform draw per axis.
	ax := s.uniform(-p.BaseAccelMax, p.BaseAccelMax)
	ay := s.uniform(-p.BaseAccelMax, p.BaseAccelMax)

	// Attraction back to the home position, quadratic in the offset
	// normalised by the pitch half-extents. Near home the pull is
	// negligible; far out it dominates the base accel. The v*|v|
	// form keeps the sign of the offset.
	nx := (a.X - a.Home.X) / s.bounds.XMax
	ny := (a.Y - a.Home.Y) / s.bounds.YMax
	ax -= nx * math.Abs(nx) * p.AttractionMax
	ay -= ny * math.Abs(ny) * p.AttractionMax

	// Sprint state machine. The sprinting branch strictly precedes
	// and excludes the start check, so no boost is applied on the
	// tick a sprint begins.
	switch a.Sprint.Phase {
	case PhaseSprinting:
		speed := math.Hypot(a.VX, a.VY)
		if speed > p.MinBoostSpeed {
			ax += a.VX / speed * p.SprintBoost
			ay += a.VY / speed * p.SprintBoost
		}
		a.Sprint.Remaining--
		if a.Sprint.Remaining <= 0 {
			a.Sprint = SprintState{Phase: PhaseIdle}
		}
	default:
		if s.rng.Float64() < p.SprintProbability {
			span := p.SprintMaxTicks - p.SprintMinTicks + 1
			a.Sprint = SprintState{
				Phase:     PhaseSprinting,
				Remaining: p.SprintMinTicks + s.rng.Intn(span),
			}
		}
	}

	// Velocity update, then drag, then the cap. Drag before the cap
	// means a capped agent leaves the tick at exactly MaxSpeed.
	a.VX = (a.VX + ax) * p.SpeedDecay
	a.VY = (a.VY + ay) * p.SpeedDecay
	if speed := math.Hypot(a.VX, a.VY); speed > p.MaxSpeed {
		scale := p.MaxSpeed / speed
		a.VX *= scale
		a.VY *= scale
	}

	a.X += a.VX
	a.Y += a.VY

	// Per-axis inelastic bounce. The boundary test is open-interval:
	// landing exactly on the line counts as a hit.
	if a.X <= s.bounds.XMin || a.X >= s.bounds.XMax {
		a.X = s.bounds.ClampX(a.X)
		a.VX *= -p.BounceDamping
	}
	if a.Y <= s.bounds.YMin || a.Y >= s.bounds.YMax {
		a.Y = s.bounds.ClampY(a.Y)
		a.VY *= -p.BounceDamping
	}
}

// Run advances the agent n ticks and returns exactly n samples with
// ticks 1..n. Samples are rounded to two decimal places; the agent's
// own state keeps full precision.
func (s *Simulator) Run(a *Agent, n int) []Sample {
	samples := make([]Sample, 0, n)
	for t := 1; t <= n; t++ {
		s.Step(a)
		samples = append(samples, Sample{
			PlayerID: a.ID,
			Tick:     t,
			X:        round2(a.X),
			Y:        round2(a.Y),
		})
	}
	return samples
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Points strips a trajectory down to its (x, y) sequence for the
// metrics reducers. The samples must belong to a single player:
// mixing players would fabricate movement across the join.
func Points(samples []Sample) []pitch.Point {
	pts := make([]pitch.Point, len(samples))
	for i, s := range samples {
		pts[i] = pitch.Point{X: s.X, Y: s.Y}
	}
	return pts
}

// FilterPlayer returns the samples belonging to one player, in their
// original order.
func FilterPlayer(samples []Sample, playerID string) []Sample {
	var out []Sample
	for _, s := range samples {
		if s.PlayerID == playerID {
			out = append(out, s)
		}
	}
	return out
}

// PlayerIDs returns the distinct player IDs in a sample stream, in
// first-appearance order.
func PlayerIDs(samples []Sample) []string {
	var ids []string
	seen := map[string]bool{}
	for _, s := range samples {
		if !seen[s.PlayerID] {
			seen[s.PlayerID] = true
			ids = append(ids, s.PlayerID)
		}
	}
	return ids
}
