// simday runs a seeded session for a number of days and prints the engine's
// JSON event log plus a final summary. Useful for eyeballing pacing and for
// auditing a seed's spike schedule.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/candlefield/trading-game/internal/catalog"
	"github.com/candlefield/trading-game/internal/config"
	"github.com/candlefield/trading-game/internal/rng"
	"github.com/candlefield/trading-game/internal/scheduler"
	"github.com/candlefield/trading-game/internal/session"
)

func main() {
	log.SetFlags(0)

	var (
		cfgPath    = flag.String("config", "", "optional yaml config path")
		seed       = flag.Int64("seed", 1, "rng seed")
		days       = flag.Int("days", 0, "days to simulate (default: full game)")
		scriptPath = flag.String("script", "", "optional scripted-days yaml")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	opts := session.Options{}
	if *scriptPath != "" {
		script, skipped, err := scheduler.LoadScript(*scriptPath)
		if err != nil {
			log.Fatalf("load script: %v", err)
		}
		for _, sk := range skipped {
			log.Printf("skipping scripted day: %v", sk)
		}
		opts.Script = script
	}

	s := session.New(cfg, catalog.Default(), rng.NewSeeded(*seed), opts)

	fmt.Printf("spike schedule (seed %d):\n", *seed)
	for _, sp := range s.Schedule() {
		fmt.Printf("  day %2d  %-22s rumor_day=%d\n", sp.Day, sp.EventID, sp.RumorDay)
	}

	limit := cfg.GameDurationDays
	if *days > 0 && *days < limit {
		limit = *days
	}

	for i := 0; i < limit; i++ {
		report, err := s.AdvanceDay()
		if err != nil {
			log.Fatalf("advance day: %v", err)
		}
		if report.Encounter != nil {
			// The naive harness always takes the first choice.
			choice := report.Encounter.Choices[0]
			if _, err := s.ResolveEncounter(report.Encounter.Type, choice); err != nil {
				log.Fatalf("resolve encounter: %v", err)
			}
			resolveLiquidation(s)
		}
		if s.GameOver != "" {
			fmt.Printf("game over on day %d: %s\n", report.Day, s.GameOver)
			break
		}
	}

	fmt.Printf("final net worth: %.2f (cash %.2f)\n", s.NetWorth(), s.Ledger.Cash)
}

// resolveLiquidation dumps every holding when the engine demands one; a real
// UI would let the player choose.
func resolveLiquidation(s *session.Session) {
	if s.LiquidationRequired() == 0 {
		return
	}
	var all []string
	for id := range s.Ledger.Spot {
		all = append(all, id)
	}
	for _, p := range s.Ledger.Leveraged {
		all = append(all, p.ID)
	}
	if err := s.ConfirmLiquidationSelection(all); err != nil {
		log.Fatalf("confirm liquidation: %v", err)
	}
}
