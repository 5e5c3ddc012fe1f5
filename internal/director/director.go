// Package director paces the game's drama. It tracks player momentum against
// a rolling net-worth baseline, a tension curve shaped by a three-act
// structure, and "dopamine debt" (days since the last big win or loss), and
// turns those into advisory event-selection modifiers. It never touches
// prices itself.
//
// Advance is a pure function of (previous state, day's outcome, day index),
// so a run's director states can be replayed bit-for-bit from a log of daily
// net-worth deltas.
package director

import (
	"math"

	"github.com/candlefield/trading-game/internal/catalog"
)

// Phase is the act-structure position derived from day/duration.
type Phase string

const (
	PhaseSetup        Phase = "setup"        // 0-20%
	PhaseRising       Phase = "rising"       // 20-50%
	PhaseComplication Phase = "complication" // 50-75%
	PhaseClimax       Phase = "climax"       // 75-90%
	PhaseResolution   Phase = "resolution"   // 90-100%
)

// Config mirrors config.Director; see internal/config for defaults.
type Config struct {
	BigSwingPct      float64
	MomentumAlpha    float64
	BaselineWindow   int
	ComebackMomentum float64
	ComebackDebtDays int
	BoostModifier    float64
	SuppressModifier float64
	TensionSettle    float64
}

// State is the full director memory. Baseline holds the trailing net-worth
// window used for the momentum trend.
type State struct {
	Momentum         float64 // [-1, 1], smoothed net-worth trend
	Tension          float64 // [0, 1]
	DopamineDebtDays int
	Phase            Phase
	Baseline         []float64
}

// Outcome is what the director learns about a finished day.
type Outcome struct {
	Day            int
	Duration       int
	NetWorth       float64
	PrevNetWorth   float64
	EventMagnitude float64 // largest absolute percent effect applied today
}

// New returns the day-zero state seeded with the starting net worth.
func New(startingNetWorth float64) State {
	return State{
		Phase:    PhaseSetup,
		Tension:  phaseTarget(PhaseSetup),
		Baseline: []float64{startingNetWorth},
	}
}

// Advance folds one day's outcome into a new state. The receiver is not
// mutated.
func Advance(s State, o Outcome, cfg Config) State {
	next := s

	// Momentum: smoothed deviation of net worth from the rolling baseline.
	base := mean(s.Baseline)
	trend := 0.0
	if base > 0 {
		trend = clamp((o.NetWorth-base)/base*2, -1, 1)
	}
	next.Momentum = clamp((1-cfg.MomentumAlpha)*s.Momentum+cfg.MomentumAlpha*trend, -1, 1)

	next.Baseline = appendWindow(s.Baseline, o.NetWorth, cfg.BaselineWindow)

	// Dopamine debt: reset on a big single-day swing, otherwise accrue.
	swing := 0.0
	if o.PrevNetWorth > 0 {
		swing = math.Abs(o.NetWorth-o.PrevNetWorth) / o.PrevNetWorth
	}
	if swing >= cfg.BigSwingPct {
		next.DopamineDebtDays = 0
	} else {
		next.DopamineDebtDays = s.DopamineDebtDays + 1
	}

	// Tension: settle toward the phase target, with big events pushing it up
	// immediately and quiet days letting it drift back.
	next.Phase = PhaseFor(o.Day, o.Duration)
	target := phaseTarget(next.Phase)
	tension := s.Tension + (target-s.Tension)*cfg.TensionSettle
	tension += math.Min(o.EventMagnitude, 0.5) * 0.4
	next.Tension = clamp(tension, 0, 1)

	return next
}

// PhaseFor maps game progress onto the act structure.
func PhaseFor(day, duration int) Phase {
	if duration <= 0 {
		return PhaseSetup
	}
	p := float64(day) / float64(duration)
	switch {
	case p < 0.20:
		return PhaseSetup
	case p < 0.50:
		return PhaseRising
	case p < 0.75:
		return PhaseComplication
	case p < 0.90:
		return PhaseClimax
	default:
		return PhaseResolution
	}
}

func phaseTarget(p Phase) float64 {
	switch p {
	case PhaseSetup:
		return 0.15
	case PhaseRising:
		return 0.45
	case PhaseComplication:
		return 0.70
	case PhaseClimax:
		return 0.90
	default:
		return 0.40
	}
}

// Modifiers is the director's advisory output, consumed by the scheduler.
// Category multipliers bias selection probability; MoonDamp/CrashDamp bias
// directional flavor when the director wants a comeback or a challenge;
// MagnitudeScale lets high tension amplify realized effects.
type Modifiers struct {
	Category       map[catalog.Category]float64
	CrashDamp      float64 // <1 suppresses crash-direction picks
	MoonDamp       float64 // <1 suppresses moon-direction picks
	MagnitudeScale float64
	ComebackAssist bool
	ChallengeDue   bool
}

// GetEventModifiers derives the day's modifiers from state alone.
func GetEventModifiers(s State, cfg Config) Modifiers {
	m := Modifiers{
		Category:       map[catalog.Category]float64{},
		CrashDamp:      1,
		MoonDamp:       1,
		MagnitudeScale: 0.8 + 0.4*s.Tension,
	}

	// Anti-frustration: a player deep underwater with a long drought gets
	// comeback categories boosted and pile-on suppressed.
	if s.Momentum <= cfg.ComebackMomentum && s.DopamineDebtDays >= cfg.ComebackDebtDays {
		m.ComebackAssist = true
		m.Category[catalog.CategoryComeback] = cfg.BoostModifier
		m.CrashDamp = cfg.SuppressModifier
	}

	// Symmetric challenge: a long favorable run without a jolt invites one.
	if s.Momentum >= -cfg.ComebackMomentum && s.DopamineDebtDays >= cfg.ComebackDebtDays {
		m.ChallengeDue = true
		m.MoonDamp = cfg.SuppressModifier
	}

	return m
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func appendWindow(xs []float64, x float64, window int) []float64 {
	if window <= 0 {
		window = 5
	}
	out := make([]float64, 0, window)
	out = append(out, xs...)
	out = append(out, x)
	if len(out) > window {
		out = out[len(out)-window:]
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
