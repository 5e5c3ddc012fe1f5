// Package ripple models second-order effects: after a notable event fires,
// related categories become more or less likely for a few days, then the
// bias decays away. State is bounded by pruning weak effects.
package ripple

import (
	"math"

	"github.com/candlefield/trading-game/internal/catalog"
	"github.com/candlefield/trading-game/internal/observ"
	"github.com/candlefield/trading-game/internal/rng"
)

// Config bounds. The correlation table's numeric constants are tunables, not
// derived values; defaults live in internal/config.
type Config struct {
	ActivationChance float64
	InitialStrength  float64
	DecayPerDay      float64 // exponential retain factor, e.g. 0.65
	MinStrength      float64
	MaxBoost         float64
	MinSuppression   float64
	MaxVolBoost      float64
}

// Effect is one live ripple. Boost and VolBoost come from the correlation
// table; Strength decays from its initial value toward zero and scales how
// much of the boost still applies.
type Effect struct {
	Category   catalog.Category
	Boost      float64
	VolBoost   float64
	Strength   float64
	CreatedDay int
	SourceID   string
}

// Modifier is the combined per-category output.
type Modifier struct {
	Probability float64 // event-selection multiplier, clamped to config bounds
	Volatility  float64 // daily-noise multiplier for assets in the category
}

// Engine holds live effects for one session.
type Engine struct {
	cfg     Config
	table   map[catalog.Category][]catalog.RippleTarget
	effects []Effect
}

func New(table map[catalog.Category][]catalog.RippleTarget, cfg Config) *Engine {
	return &Engine{cfg: cfg, table: table}
}

// OnEvent records ripples for a fired event of the given category. Each
// correlated target activates independently with the configured chance.
// strengthScale lets callers weight rarer events more heavily.
func (e *Engine) OnEvent(sourceID string, cat catalog.Category, day int, strengthScale float64, r rng.RNG) {
	targets := e.table[cat]
	for _, t := range targets {
		if r.Float64() >= e.cfg.ActivationChance {
			continue
		}
		e.effects = append(e.effects, Effect{
			Category:   t.Category,
			Boost:      t.Strength,
			VolBoost:   t.VolatilityBoost,
			Strength:   e.cfg.InitialStrength * strengthScale,
			CreatedDay: day,
			SourceID:   sourceID,
		})
		observ.IncCounter("ripples_created_total", map[string]string{
			"source": string(cat), "target": string(t.Category),
		})
	}
}

// Decay ages every effect by one day and prunes the ones below the strength
// threshold, keeping state bounded over a long game.
func (e *Engine) Decay() {
	kept := e.effects[:0]
	for _, eff := range e.effects {
		eff.Strength *= e.cfg.DecayPerDay
		if eff.Strength >= e.cfg.MinStrength {
			kept = append(kept, eff)
		}
	}
	e.effects = kept
	observ.SetGauge("ripples_active", float64(len(e.effects)), nil)
}

// Modifiers combines all live effects into one bounded modifier per touched
// category. Boosts multiply and are capped; suppressions are floored; the
// volatility bump has its own cap.
func (e *Engine) Modifiers() map[catalog.Category]Modifier {
	out := map[catalog.Category]Modifier{}
	for _, eff := range e.effects {
		m, ok := out[eff.Category]
		if !ok {
			m = Modifier{Probability: 1, Volatility: 1}
		}
		// Scale the table bias by remaining strength: full strength applies
		// the whole boost, faded strength only a sliver.
		m.Probability *= 1 + (eff.Boost-1)*eff.Strength
		m.Volatility *= 1 + (eff.VolBoost-1)*eff.Strength
		out[eff.Category] = m
	}
	for cat, m := range out {
		m.Probability = clamp(m.Probability, e.cfg.MinSuppression, e.cfg.MaxBoost)
		m.Volatility = clamp(m.Volatility, 1, e.cfg.MaxVolBoost)
		out[cat] = m
	}
	return out
}

// Active returns a copy of the live effects for telemetry.
func (e *Engine) Active() []Effect {
	cp := make([]Effect, len(e.effects))
	copy(cp, e.effects)
	return cp
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
