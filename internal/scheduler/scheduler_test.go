package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/candlefield/trading-game/internal/catalog"
	"github.com/candlefield/trading-game/internal/director"
	"github.com/candlefield/trading-game/internal/ripple"
	"github.com/candlefield/trading-game/internal/rng"
)

func testSchedulerConfig() Config {
	return Config{
		SpikeChance:    0.08,
		RumorChance:    0.60,
		QuietDayChance: 0.15,
		ModifierMin:    0.1,
		ModifierMax:    4.0,
	}
}

func neutralMods() director.Modifiers {
	return director.Modifiers{CrashDamp: 1, MoonDamp: 1, MagnitudeScale: 1}
}

func TestScheduleInvariants(t *testing.T) {
	cat := catalog.Default()
	for seed := int64(1); seed <= 50; seed++ {
		s := New(cat, 60, testSchedulerConfig(), rng.NewSeeded(seed))

		seenID := map[string]bool{}
		seenDay := map[int]bool{}
		for _, sp := range s.Schedule() {
			require.GreaterOrEqual(t, sp.Day, 2, "seed %d", seed)
			require.LessOrEqual(t, sp.Day, 60, "seed %d", seed)
			require.False(t, seenID[sp.EventID], "seed %d: event %s scheduled twice", seed, sp.EventID)
			require.False(t, seenDay[sp.Day], "seed %d: two spikes on day %d", seed, sp.Day)
			seenID[sp.EventID] = true
			seenDay[sp.Day] = true

			if sp.RumorDay != 0 {
				require.GreaterOrEqual(t, sp.RumorDay, 1, "seed %d", seed)
				require.Less(t, sp.RumorDay, sp.Day, "seed %d: rumor must precede its spike", seed)
				ev, ok := cat.Spike(sp.EventID)
				require.True(t, ok)
				require.NotEmpty(t, ev.Rumor, "seed %d: rumor scheduled for rumorless event", seed)
			}
		}
	}
}

func TestScheduleIsSeedDeterministic(t *testing.T) {
	cat := catalog.Default()
	a := New(cat, 60, testSchedulerConfig(), rng.NewSeeded(7))
	b := New(cat, 60, testSchedulerConfig(), rng.NewSeeded(7))
	require.Equal(t, a.Schedule(), b.Schedule())
}

// A fixed single-spike catalog keeps selection tests readable.
func miniCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Assets: []catalog.Asset{
			{ID: "DOGE2", BasePrice: 10, Volatility: 0.05, Category: catalog.CategoryCrypto},
			{ID: "NMBS", BasePrice: 100, Volatility: 0.02, Category: catalog.CategoryTech},
		},
		Spikes: []catalog.SpikeEvent{{
			ID:        "spk_rug",
			Tier:      catalog.TierLegendary,
			Direction: catalog.DirectionCrash,
			Category:  catalog.CategoryCrypto,
			AssetID:   "DOGE2",
			Headline:  "DOGE2 dev wallet drained",
			Rumor:     "On-chain sleuths flag odd DOGE2 wallet activity",
			MinMult:   0.10,
			MaxMult:   0.25,
		}},
		Flavor: []catalog.FlavorEvent{
			{ID: "flv_up", Category: catalog.CategoryTech, AssetID: "NMBS", Headline: "NMBS ships a feature", Label: "news", MinPct: 0.02, MaxPct: 0.05},
			{ID: "flv_dn", Category: catalog.CategoryTech, AssetID: "NMBS", Headline: "NMBS misses a date", Label: "news", MinPct: -0.05, MaxPct: -0.02},
		},
	}
}

func fixedSchedule(cat *catalog.Catalog, spikes ...ScheduledSpike) *Scheduler {
	return &Scheduler{cfg: testSchedulerConfig(), cat: cat, schedule: spikes, usedFlav: map[string]bool{}}
}

func TestRumorSurfacesOnItsDayOnly(t *testing.T) {
	s := fixedSchedule(miniCatalog(), ScheduledSpike{Day: 10, EventID: "spk_rug", RumorDay: 8})

	// Quiet-day roll 0.05 < 0.15 suppresses flavor so only the rumor shows.
	sel := s.SelectDailyEvents(8, neutralMods(), nil, nil, &rng.Scripted{Floats: []float64{0.5, 0.05}})
	require.Len(t, sel.Items, 1)
	item := sel.Items[0]
	require.Equal(t, "rumor", item.Label)
	require.Equal(t, "spk_rug", item.SourceID)
	require.False(t, item.Spike)
	require.Len(t, item.Effects, 1)
	// Rumor nudges 2-4% in the crash direction.
	require.Less(t, item.Effects[0].Pct, -0.019)
	require.Greater(t, item.Effects[0].Pct, -0.041)

	// Day 9 has neither the rumor nor the spike.
	sel = s.SelectDailyEvents(9, neutralMods(), nil, nil, &rng.Scripted{Floats: []float64{0.05}})
	require.Empty(t, sel.Items)
}

func TestSpikeFiresOnScheduledDay(t *testing.T) {
	s := fixedSchedule(miniCatalog(), ScheduledSpike{Day: 10, EventID: "spk_rug"})

	// Mult roll 0.5 lands mid-range: 0.175, so pct = -0.825.
	sel := s.SelectDailyEvents(10, neutralMods(), nil, nil, &rng.Scripted{Floats: []float64{0.5}})
	require.Len(t, sel.Items, 1)
	item := sel.Items[0]
	require.True(t, item.Spike)
	require.Equal(t, "breaking", item.Label)
	require.InDelta(t, -0.825, item.Effects[0].Pct, 0.001)

	require.Equal(t, catalog.CategoryCrypto, sel.SpikeCategory)
	require.Equal(t, catalog.TierLegendary, sel.SpikeTier)
	require.Equal(t, "spk_rug", sel.SpikeID)
	require.InDelta(t, 0.825, sel.Magnitude, 0.001)
}

func TestSpikeDayDrawsNoFlavor(t *testing.T) {
	s := fixedSchedule(miniCatalog(), ScheduledSpike{Day: 10, EventID: "spk_rug"})

	sel := s.SelectDailyEvents(10, neutralMods(), nil, nil, &rng.Scripted{Floats: []float64{0.5, 0.99, 0.99}})
	require.Len(t, sel.Items, 1)
	require.True(t, sel.Items[0].Spike)
}

func TestFlavorDrawConsumesWithoutReplacement(t *testing.T) {
	s := fixedSchedule(miniCatalog())

	seen := map[string]bool{}
	for day := 1; day <= 2; day++ {
		// Quiet roll 0.99 passes, pick roll 0, pct roll 0.5.
		sel := s.SelectDailyEvents(day, neutralMods(), nil, nil, &rng.Scripted{Floats: []float64{0.99, 0, 0.5}})
		require.Len(t, sel.Items, 1, "day %d", day)
		id := sel.Items[0].SourceID
		require.False(t, seen[id], "flavor %s repeated", id)
		seen[id] = true
	}

	// Pool of two is now empty.
	sel := s.SelectDailyEvents(3, neutralMods(), nil, nil, &rng.Scripted{Floats: []float64{0.99, 0, 0.5}})
	require.Empty(t, sel.Items)
}

func TestQuietDayRollSkipsFlavor(t *testing.T) {
	s := fixedSchedule(miniCatalog())
	sel := s.SelectDailyEvents(5, neutralMods(), nil, nil, &rng.Scripted{Floats: []float64{0.05}})
	require.Empty(t, sel.Items)
	require.Zero(t, sel.Magnitude)
}

func TestCrashDampSuppressesBadNews(t *testing.T) {
	s := fixedSchedule(miniCatalog())
	mods := neutralMods()
	mods.CrashDamp = 0 // comeback assist at full strength

	// With the down event weighted to zero, any pick roll lands on flv_up.
	sel := s.SelectDailyEvents(5, mods, nil, nil, &rng.Scripted{Floats: []float64{0.99, 0.999, 0.5}})
	require.Len(t, sel.Items, 1)
	require.Equal(t, "flv_up", sel.Items[0].SourceID)
}

func TestMagnitudeScaleShrinksFlavorEffects(t *testing.T) {
	mods := neutralMods()
	mods.MagnitudeScale = 0.5

	s := fixedSchedule(miniCatalog())
	sel := s.SelectDailyEvents(5, mods, nil, nil, &rng.Scripted{Floats: []float64{0.99, 0, 0.5}})
	require.Len(t, sel.Items, 1)
	full := miniCatalog().Flavor[0]
	mid := (full.MinPct + full.MaxPct) / 2
	require.InDelta(t, mid*0.5, sel.Items[0].Effects[0].Pct, 0.02)
}

func TestRippleBoostSkewsCategoryWeight(t *testing.T) {
	cat := miniCatalog()
	// Split the flavor pool across categories so the boost is observable.
	cat.Flavor = []catalog.FlavorEvent{
		{ID: "flv_tech", Category: catalog.CategoryTech, AssetID: "NMBS", Headline: "tech item", Label: "news", MinPct: 0.01, MaxPct: 0.02},
		{ID: "flv_cry", Category: catalog.CategoryCrypto, AssetID: "DOGE2", Headline: "crypto item", Label: "news", MinPct: 0.01, MaxPct: 0.02},
	}
	s := fixedSchedule(cat)
	rip := map[catalog.Category]ripple.Modifier{
		catalog.CategoryCrypto: {Probability: 3.0, Volatility: 1.5},
	}

	// Weights are tech 1.0, crypto 3.0. A pick roll of 0.4 lands at 1.6 on
	// the cumulative walk (tech spans [0,1), crypto [1,4)), choosing crypto.
	sel := s.SelectDailyEvents(5, neutralMods(), rip, nil, &rng.Scripted{Floats: []float64{0.99, 0.4, 0.5}})
	require.Len(t, sel.Items, 1)
	require.Equal(t, "flv_cry", sel.Items[0].SourceID)
}

func TestScriptedDayReplacesFlavorButNotSpike(t *testing.T) {
	s := fixedSchedule(miniCatalog(), ScheduledSpike{Day: 10, EventID: "spk_rug"})
	day := &ScriptDay{Day: 10, Items: []ScriptItem{{
		Headline: "Authored headline",
		Label:    "scheduled",
		Effects:  []ScriptEffect{{AssetID: "NMBS", Pct: 0.04}},
	}}}

	sel := s.SelectDailyEvents(10, neutralMods(), nil, day, &rng.Scripted{Floats: []float64{0.5}})
	require.Len(t, sel.Items, 2)
	require.True(t, sel.Items[0].Spike, "scheduled spike still fires on a scripted day")
	require.Equal(t, "Authored headline", sel.Items[1].Headline)
	require.Equal(t, "scripted", sel.Items[1].SourceID)
}

func TestParseScriptHappyPath(t *testing.T) {
	src := []byte(`
days:
  - day: 3
    items:
      - headline: "Fed chair sneezes on live TV"
        label: breaking
        category: finance
        effects:
          - asset: NMBS
            pct: -0.08
  - day: 5
    items:
      - headline: "Quiet tape"
`)
	script, skipped, err := ParseScript(src)
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Len(t, script, 2)
	require.Equal(t, "Fed chair sneezes on live TV", script[3].Items[0].Headline)
	require.Equal(t, -0.08, script[3].Items[0].Effects[0].Pct)
}

func TestParseScriptSkipsBadDaysKeepsGood(t *testing.T) {
	src := []byte(`
days:
  - day: 0
    items:
      - headline: "day zero is not a day"
  - day: 4
    items:
      - headline: ""
  - day: 6
    items:
      - headline: "a 20x daily move is out of range"
        effects:
          - asset: DOGE2
            pct: 20
  - day: 8
    items:
      - headline: "this one is fine"
`)
	script, skipped, err := ParseScript(src)
	require.NoError(t, err)
	require.Len(t, script, 1)
	require.Contains(t, script, 8)

	require.Len(t, skipped, 3)
	kinds := map[ParseErrorKind]int{}
	for _, pe := range skipped {
		kinds[pe.Kind]++
	}
	require.Equal(t, 2, kinds[ParseBadDay])
	require.Equal(t, 1, kinds[ParseBadEffect])
}

func TestParseScriptBadYAMLIsHardError(t *testing.T) {
	_, _, err := ParseScript([]byte("days: [\n"))
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, ParseBadYAML, pe.Kind)
}
