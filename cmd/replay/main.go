// replay verifies director determinism: it runs a seeded session, captures
// the per-day outcome log, then folds the director over that log twice and
// compares the resulting state sequences. Any divergence means hidden state
// crept into the pacing engine.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/candlefield/trading-game/internal/catalog"
	"github.com/candlefield/trading-game/internal/config"
	"github.com/candlefield/trading-game/internal/director"
	"github.com/candlefield/trading-game/internal/rng"
	"github.com/candlefield/trading-game/internal/session"
)

func main() {
	log.SetFlags(0)

	var (
		seed = flag.Int64("seed", 1, "rng seed")
		days = flag.Int("days", 0, "days to simulate (default: full game)")
	)
	flag.Parse()

	cfg := config.Default()
	limit := cfg.GameDurationDays
	if *days > 0 && *days < limit {
		limit = *days
	}

	s := session.New(cfg, catalog.Default(), rng.NewSeeded(*seed), session.Options{})

	type outcome struct {
		day       int
		netWorth  float64
		prev      float64
		magnitude float64
	}
	var outcomes []outcome
	prev := s.NetWorth()
	for i := 0; i < limit; i++ {
		report, err := s.AdvanceDay()
		if err != nil {
			break
		}
		mag := 0.0
		for _, item := range report.Items {
			for _, ef := range item.Effects {
				if m := math.Abs(ef.Pct); m > mag {
					mag = m
				}
			}
		}
		outcomes = append(outcomes, outcome{day: report.Day, netWorth: report.NetWorth, prev: prev, magnitude: mag})
		prev = report.NetWorth
		if report.Encounter != nil || report.GameOver != "" {
			break
		}
	}

	dcfg := director.Config{
		BigSwingPct:      cfg.Director.BigSwingPct,
		MomentumAlpha:    cfg.Director.MomentumAlpha,
		BaselineWindow:   cfg.Director.BaselineWindow,
		ComebackMomentum: cfg.Director.ComebackMomentum,
		ComebackDebtDays: cfg.Director.ComebackDebtDays,
		BoostModifier:    cfg.Director.BoostModifier,
		SuppressModifier: cfg.Director.SuppressModifier,
		TensionSettle:    cfg.Director.TensionSettle,
	}

	run := func() []director.State {
		st := director.New(cfg.StartingCash)
		states := make([]director.State, 0, len(outcomes))
		for _, o := range outcomes {
			st = director.Advance(st, director.Outcome{
				Day:            o.day,
				Duration:       cfg.GameDurationDays,
				NetWorth:       o.netWorth,
				PrevNetWorth:   o.prev,
				EventMagnitude: o.magnitude,
			}, dcfg)
			states = append(states, st)
		}
		return states
	}

	a, b := run(), run()
	if len(a) == 0 {
		fmt.Println("replay ok: no days simulated")
		return
	}
	for i := range a {
		if a[i].Momentum != b[i].Momentum || a[i].Tension != b[i].Tension ||
			a[i].DopamineDebtDays != b[i].DopamineDebtDays || a[i].Phase != b[i].Phase {
			fmt.Printf("DIVERGED at day %d: %+v vs %+v\n", outcomes[i].day, a[i], b[i])
			os.Exit(1)
		}
	}
	fmt.Printf("replay ok: %d days, final momentum=%.4f tension=%.4f phase=%s\n",
		len(a), a[len(a)-1].Momentum, a[len(a)-1].Tension, a[len(a)-1].Phase)
}
