package session

import (
	"errors"
	"math"

	"github.com/candlefield/trading-game/internal/catalog"
	"github.com/candlefield/trading-game/internal/director"
	"github.com/candlefield/trading-game/internal/encounter"
	"github.com/candlefield/trading-game/internal/ledger"
	"github.com/candlefield/trading-game/internal/observ"
	"github.com/candlefield/trading-game/internal/ripple"
	"github.com/candlefield/trading-game/internal/scheduler"
)

// ErrGameComplete is returned when advancing past the final day.
var ErrGameComplete = errors.New("game duration reached")

// catastropheFloor: if every asset has collapsed below this fraction of its
// base price on the same day, the market itself is gone and the run ends.
const catastropheFloor = 0.10

// DayReport is the day-end output handed to the UI layer.
type DayReport struct {
	Day       int
	Items     []scheduler.Item
	NetWorth  float64
	GameOver  ledger.Reason
	Encounter *encounter.Pending
	// Underwater lists leveraged position ids flagged in flag-only mode.
	Underwater []string
}

// AdvanceDay runs one simulated day: decay ripples, select events, move
// prices, detect insolvency, update the director, then roll for an
// encounter. The day either fully applies or is rejected up front.
func (s *Session) AdvanceDay() (*DayReport, error) {
	if s.GameOver != ledger.ReasonNone {
		return nil, ErrGameOver
	}
	if s.pendingLiq != nil {
		return nil, ErrLiquidationPending
	}
	if s.encounterSt.Pending != nil {
		return nil, ErrEncounterPending
	}
	if s.Day >= s.Duration {
		return nil, ErrGameComplete
	}

	s.Day++
	day := s.Day

	s.ripples.Decay()
	dirMod := director.GetEventModifiers(s.directorState, s.directorConfig())
	ripMod := s.ripples.Modifiers()

	var script *scheduler.ScriptDay
	if s.script != nil {
		script = s.script[day]
	}
	sel := s.sched.SelectDailyEvents(day, dirMod, ripMod, script, s.rng)

	s.applyPrices(day, sel, ripMod)

	if sel.SpikeID != "" {
		s.ripples.OnEvent(sel.SpikeID, sel.SpikeCategory, day, tierScale(sel.SpikeTier), s.rng)
	}

	report := &DayReport{Day: day, Items: sel.Items}

	// Insolvency is checked the moment prices land, before the player acts.
	if reason := s.Ledger.CheckSolvency(s.Prices); reason != ledger.ReasonNone {
		s.GameOver = reason
		observ.IncCounter("game_overs_total", map[string]string{"reason": string(reason)})
	}
	for _, pos := range s.Ledger.Leveraged {
		if pos.Underwater {
			report.Underwater = append(report.Underwater, pos.ID)
		}
	}

	nw := s.NetWorth()
	if s.GameOver == ledger.ReasonNone {
		if nw <= 0 {
			s.GameOver = ledger.ReasonBankrupt
			observ.IncCounter("game_overs_total", map[string]string{"reason": string(ledger.ReasonBankrupt)})
		} else if s.marketCollapsed() {
			s.GameOver = ledger.ReasonCatastrophe
			observ.IncCounter("game_overs_total", map[string]string{"reason": string(ledger.ReasonCatastrophe)})
		}
	}

	s.directorState = director.Advance(s.directorState, director.Outcome{
		Day:            day,
		Duration:       s.Duration,
		NetWorth:       nw,
		PrevNetWorth:   s.prevNW,
		EventMagnitude: sel.Magnitude,
	}, s.directorConfig())

	bigSwing := s.prevNW > 0 && math.Abs(nw-s.prevNW)/s.prevNW >= s.cfg.Director.BigSwingPct
	s.prevNW = nw

	if s.GameOver == ledger.ReasonNone {
		encounter.AccrueHeat(&s.encounterSt, len(s.Ledger.Leveraged), len(s.Ledger.Shorts), bigSwing)
		report.Encounter = s.encounters.Roll(&s.encounterSt, day, s.Duration, nw, s.ownsShelter(), s.rng)
	}

	s.feed = sel.Items
	report.NetWorth = nw
	report.GameOver = s.GameOver

	observ.SetGauge("session_net_worth", nw, nil)
	observ.SetGauge("director_tension", s.directorState.Tension, nil)
	observ.SetGauge("director_momentum", s.directorState.Momentum, nil)
	observ.Log("day_advanced", map[string]any{
		"day":       day,
		"net_worth": nw,
		"items":     len(sel.Items),
		"spike":     sel.SpikeID,
		"phase":     string(s.directorState.Phase),
		"game_over": string(s.GameOver),
	})
	return report, nil
}

// applyPrices moves every asset by its daily noise (scaled by any ripple
// volatility bump), then applies the day's event effects. Candles record the
// extremes of the path; the floor keeps prices strictly positive.
func (s *Session) applyPrices(day int, sel scheduler.Selection, ripMod map[catalog.Category]ripple.Modifier) {
	floor := s.cfg.Ledger.MinPrice

	for _, a := range s.cat.Assets {
		open := s.Prices[a.ID]
		price := open
		high, low := open, open

		volBoost := 1.0
		if m, ok := ripMod[a.Category]; ok {
			volBoost = m.Volatility
		}
		price *= 1 + s.rng.NormFloat64()*a.Volatility*volBoost
		price = math.Max(price, floor)
		high = math.Max(high, price)
		low = math.Min(low, price)

		for _, item := range sel.Items {
			for _, ef := range item.Effects {
				if ef.AssetID != a.ID {
					continue
				}
				price *= 1 + ef.Pct
				price = math.Max(price, floor)
				high = math.Max(high, price)
				low = math.Min(low, price)
			}
		}

		s.Prices[a.ID] = price
		s.Candles[a.ID] = append(s.Candles[a.ID], Candle{
			Day: day, Open: open, High: high, Low: low, Close: price,
		})
	}
}

func (s *Session) marketCollapsed() bool {
	for _, a := range s.cat.Assets {
		if s.Prices[a.ID] >= a.BasePrice*catastropheFloor {
			return false
		}
	}
	return len(s.cat.Assets) > 0
}

func tierScale(t catalog.Tier) float64 {
	switch t {
	case catalog.TierLegendary:
		return 1.3
	case catalog.TierRare:
		return 1.0
	default:
		return 0.6
	}
}
