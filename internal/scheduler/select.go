package scheduler

import (
	"math"

	"github.com/candlefield/trading-game/internal/catalog"
	"github.com/candlefield/trading-game/internal/director"
	"github.com/candlefield/trading-game/internal/observ"
	"github.com/candlefield/trading-game/internal/ripple"
	"github.com/candlefield/trading-game/internal/rng"
)

// AssetEffect is one percent move on one asset.
type AssetEffect struct {
	AssetID string
	Pct     float64
}

// Item is one day-end feed entry: a headline plus its applied effects.
type Item struct {
	Label    string // news, rumor, gossip, breaking, developing, scheduled, study, report
	Headline string
	SourceID string
	Category catalog.Category
	Tier     catalog.Tier
	Spike    bool
	Effects  []AssetEffect
}

// Selection is everything the scheduler chose for one day.
type Selection struct {
	Items []Item
	// Magnitude is the largest absolute percent effect, fed back to the
	// director's tension update.
	Magnitude float64
	// SpikeCategory is set when a spike fired, for ripple creation.
	SpikeCategory catalog.Category
	SpikeTier     catalog.Tier
	SpikeID       string
}

// SelectDailyEvents picks the day's news. Order of precedence:
//  1. rumors whose rumorDay is today always surface;
//  2. a scheduled spike is the primary event and is never displaced;
//  3. a scripted day replaces the random flavor draw wholesale;
//  4. otherwise one flavor item is drawn, biased by director x ripple
//     modifiers and consumed without replacement.
//
// A day only comes up empty on a configured quiet-day roll or when the
// flavor pool is exhausted.
func (s *Scheduler) SelectDailyEvents(
	day int,
	dirMod director.Modifiers,
	ripMod map[catalog.Category]ripple.Modifier,
	script *ScriptDay,
	r rng.RNG,
) Selection {
	var sel Selection

	for _, sp := range s.rumorsOn(day) {
		if item, ok := s.rumorItem(sp, r); ok {
			sel.Items = append(sel.Items, item)
		}
	}

	if sp, ok := s.spikeOn(day); ok {
		if ev, found := s.cat.Spike(sp.EventID); found {
			item := s.spikeItem(ev, r)
			sel.Items = append(sel.Items, item)
			sel.SpikeCategory = ev.Category
			sel.SpikeTier = ev.Tier
			sel.SpikeID = ev.ID
			observ.IncCounter("spikes_fired_total", map[string]string{"tier": string(ev.Tier)})
		}
	}

	switch {
	case script != nil:
		for _, si := range script.Items {
			item := Item{Label: si.Label, Headline: si.Headline, SourceID: "scripted", Category: catalog.Category(si.Category)}
			if item.Label == "" {
				item.Label = "scheduled"
			}
			for _, ef := range si.Effects {
				item.Effects = append(item.Effects, AssetEffect{AssetID: ef.AssetID, Pct: ef.Pct})
			}
			sel.Items = append(sel.Items, item)
		}
	case sel.SpikeID == "":
		// Flavor only on non-spike days; at most one spike-tier event per day
		// and spikes already dominate the tape.
		if r.Float64() >= s.cfg.QuietDayChance {
			if item, ok := s.drawFlavor(dirMod, ripMod, r); ok {
				sel.Items = append(sel.Items, item)
			}
		}
	}

	for _, item := range sel.Items {
		for _, ef := range item.Effects {
			if m := math.Abs(ef.Pct); m > sel.Magnitude {
				sel.Magnitude = m
			}
		}
	}
	return sel
}

func (s *Scheduler) spikeItem(ev catalog.SpikeEvent, r rng.RNG) Item {
	mult := ev.MinMult + r.Float64()*(ev.MaxMult-ev.MinMult)
	item := Item{
		Label:    "breaking",
		Headline: ev.Headline,
		SourceID: ev.ID,
		Category: ev.Category,
		Tier:     ev.Tier,
		Spike:    true,
		Effects:  []AssetEffect{{AssetID: ev.AssetID, Pct: mult - 1}},
	}
	for _, sec := range ev.Secondary {
		item.Effects = append(item.Effects, AssetEffect{AssetID: sec.AssetID, Pct: sec.Pct})
	}
	return item
}

func (s *Scheduler) rumorItem(sp ScheduledSpike, r rng.RNG) (Item, bool) {
	ev, ok := s.cat.Spike(sp.EventID)
	if !ok || ev.Rumor == "" {
		return Item{}, false
	}
	// Rumors nudge the target a little in the spike's direction.
	pct := 0.02 + r.Float64()*0.02
	if ev.Direction == catalog.DirectionCrash {
		pct = -pct
	}
	return Item{
		Label:    "rumor",
		Headline: ev.Rumor,
		SourceID: ev.ID,
		Category: ev.Category,
		Tier:     ev.Tier,
		Effects:  []AssetEffect{{AssetID: ev.AssetID, Pct: pct}},
	}, true
}

// drawFlavor picks one unused flavor event, weighted by the combined
// director x ripple modifier for its category, clamped to the configured
// range so feedback loops cannot run away.
func (s *Scheduler) drawFlavor(
	dirMod director.Modifiers,
	ripMod map[catalog.Category]ripple.Modifier,
	r rng.RNG,
) (Item, bool) {
	type cand struct {
		ev catalog.FlavorEvent
		w  float64
	}
	var cands []cand
	total := 0.0
	for _, ev := range s.cat.Flavor {
		if s.usedFlav[ev.ID] {
			continue
		}
		w := s.combinedModifier(ev.Category, dirMod, ripMod)
		w *= directionDamp(ev, dirMod)
		if w <= 0 {
			continue
		}
		cands = append(cands, cand{ev: ev, w: w})
		total += w
	}
	if len(cands) == 0 {
		observ.IncCounter("flavor_pool_exhausted_total", nil)
		return Item{}, false
	}

	pick := r.Float64() * total
	chosen := cands[len(cands)-1].ev
	for _, c := range cands {
		pick -= c.w
		if pick < 0 {
			chosen = c.ev
			break
		}
	}
	s.usedFlav[chosen.ID] = true

	pct := chosen.MinPct + r.Float64()*(chosen.MaxPct-chosen.MinPct)
	pct *= dirMod.MagnitudeScale
	return Item{
		Label:    chosen.Label,
		Headline: chosen.Headline,
		SourceID: chosen.ID,
		Category: chosen.Category,
		Effects:  []AssetEffect{{AssetID: chosen.AssetID, Pct: pct}},
	}, true
}

func (s *Scheduler) combinedModifier(
	cat catalog.Category,
	dirMod director.Modifiers,
	ripMod map[catalog.Category]ripple.Modifier,
) float64 {
	w := 1.0
	if m, ok := dirMod.Category[cat]; ok {
		w *= m
	}
	if m, ok := ripMod[cat]; ok {
		w *= m.Probability
	}
	return clamp(w, s.cfg.ModifierMin, s.cfg.ModifierMax)
}

// directionDamp suppresses picks that would fight the director: pile-on bad
// news during a comeback assist, or free money when a challenge is due.
func directionDamp(ev catalog.FlavorEvent, dirMod director.Modifiers) float64 {
	mid := (ev.MinPct + ev.MaxPct) / 2
	if mid < 0 {
		return dirMod.CrashDamp
	}
	if mid > 0 {
		return dirMod.MoonDamp
	}
	return 1
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
