// autoplay runs a whole game with a naive buy-and-hold-ish policy, paced in
// real time so the tape is watchable in a terminal. Demo harness only; the
// engine itself never blocks.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
	"golang.org/x/time/rate"

	"github.com/candlefield/trading-game/internal/catalog"
	"github.com/candlefield/trading-game/internal/config"
	"github.com/candlefield/trading-game/internal/observ"
	"github.com/candlefield/trading-game/internal/rng"
	"github.com/candlefield/trading-game/internal/session"
)

func main() {
	log.SetFlags(0)

	var (
		seed       = flag.Int64("seed", 1, "rng seed")
		daysPerSec = flag.Float64("days-per-sec", 2, "simulated days per wall second")
	)
	flag.Parse()

	// Quiet the engine's JSON log so only the tape shows.
	observ.SetOutput(io.Discard)

	cfg := config.Default()
	cat := catalog.Default()
	s := session.New(cfg, cat, rng.NewSeeded(*seed), session.Options{})

	// Naive opening book: spread a third of cash across the first few assets.
	stake := s.Ledger.Cash / 3 / float64(len(cat.Assets))
	for _, a := range cat.Assets {
		qty := float64(int(stake / a.BasePrice))
		if qty >= 1 {
			if err := s.Buy(a.ID, qty); err != nil {
				log.Fatalf("opening buy %s: %v", a.ID, err)
			}
		}
	}

	breaking := color.New(color.FgRed, color.Bold)
	rumor := color.New(color.FgYellow, color.Faint)
	plain := color.New(color.FgWhite)

	limiter := rate.NewLimiter(rate.Limit(*daysPerSec), 1)
	ctx := context.Background()

	for {
		if err := limiter.Wait(ctx); err != nil {
			log.Fatalf("limiter: %v", err)
		}
		report, err := s.AdvanceDay()
		if err == session.ErrGameComplete {
			break
		}
		if err != nil {
			log.Fatalf("advance day: %v", err)
		}

		for _, item := range report.Items {
			line := fmt.Sprintf("day %2d [%s] %s", report.Day, item.Label, item.Headline)
			switch item.Label {
			case "breaking":
				breaking.Println(line)
			case "rumor":
				rumor.Println(line)
			default:
				plain.Println(line)
			}
		}

		if report.Encounter != nil {
			breaking.Printf("day %2d [encounter] %s\n", report.Day, report.Encounter.Headline)
			// Autoplay always takes the cautious option (the first choice).
			if _, err := s.ResolveEncounter(report.Encounter.Type, report.Encounter.Choices[0]); err != nil {
				log.Fatalf("resolve encounter: %v", err)
			}
			if s.LiquidationRequired() > 0 {
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
		}

		if s.GameOver != "" {
			breaking.Printf("GAME OVER on day %d: %s\n", report.Day, s.GameOver)
			return
		}
	}

	fmt.Printf("survived %d days, final net worth %.2f\n", s.Duration, s.NetWorth())
}
