// Package session owns one player's run: prices, candles, the ledger, the
// director, ripples, encounters, and the spike schedule, composed by the
// day orchestrator. A session is single-owner; callers serialize access.
package session

import (
	"errors"
	"fmt"

	"github.com/candlefield/trading-game/internal/catalog"
	"github.com/candlefield/trading-game/internal/config"
	"github.com/candlefield/trading-game/internal/director"
	"github.com/candlefield/trading-game/internal/encounter"
	"github.com/candlefield/trading-game/internal/ledger"
	"github.com/candlefield/trading-game/internal/ripple"
	"github.com/candlefield/trading-game/internal/rng"
	"github.com/candlefield/trading-game/internal/scheduler"
)

var (
	ErrGameOver             = errors.New("game is over")
	ErrUnknownAsset         = errors.New("unknown asset")
	ErrEncounterPending     = errors.New("an encounter must be resolved first")
	ErrLiquidationPending   = errors.New("a liquidation selection must be confirmed first")
	ErrNoLiquidationPending = errors.New("no liquidation is pending")
	ErrLiquidationShortfall = errors.New("selected assets do not cover the required amount")
)

// Candle is one asset's daily OHLC row. Append-only.
type Candle struct {
	Day   int
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// pendingLiquidation parks an encounter deduction until the player picks
// which holdings to raid for it.
type pendingLiquidation struct {
	required   float64
	cashChange float64
	headline   string
}

// Session aggregates all mutable game state for one run.
type Session struct {
	cfg    config.Root
	cat    *catalog.Catalog
	rng    rng.RNG
	script scheduler.Script

	Day      int
	Duration int
	Prices   map[string]float64
	Candles  map[string][]Candle

	Ledger *ledger.Ledger

	directorState director.State
	ripples       *ripple.Engine
	encounters    *encounter.Machine
	encounterSt   encounter.State
	sched         *scheduler.Scheduler

	// TrustFund is a protected balance excluded from encounter percentages.
	TrustFund float64

	GameOver ledger.Reason

	pendingLiq *pendingLiquidation
	feed       []scheduler.Item
	prevNW     float64
}

// Options are the collaborator-supplied inputs at session start.
type Options struct {
	Assets    []catalog.Asset  // nil means the catalog's built-in set
	Script    scheduler.Script // authored days, replace flavor selection
	TrustFund float64
}

// New builds a session, pre-generating the full spike schedule.
func New(cfg config.Root, cat *catalog.Catalog, r rng.RNG, opts Options) *Session {
	if cat == nil {
		cat = catalog.Default()
	}
	if opts.Assets != nil {
		// Narrow the catalog to the supplied asset list.
		narrowed := *cat
		narrowed.Assets = opts.Assets
		cat = &narrowed
	}

	s := &Session{
		cfg:      cfg,
		cat:      cat,
		rng:      r,
		script:   opts.Script,
		Duration: cfg.GameDurationDays,
		Prices:   map[string]float64{},
		Candles:  map[string][]Candle{},
		Ledger: ledger.New(cfg.StartingCash, ledger.Config{
			MaxLeverage:      cfg.Ledger.MaxLeverage,
			FlagOnly:         cfg.Ledger.MarginFlagOnly,
			SqueezeTolerance: cfg.Ledger.SqueezeTolerance,
		}),
		ripples: ripple.New(cat.Ripples, ripple.Config{
			ActivationChance: cfg.Ripple.ActivationChance,
			InitialStrength:  cfg.Ripple.InitialStrength,
			DecayPerDay:      cfg.Ripple.DecayPerDay,
			MinStrength:      cfg.Ripple.MinStrength,
			MaxBoost:         cfg.Ripple.MaxBoost,
			MinSuppression:   cfg.Ripple.MinSuppression,
			MaxVolBoost:      cfg.Ripple.MaxVolBoost,
		}),
		encounters: encounter.NewMachine(encounter.Config{
			MaxPerGame:        cfg.Encounter.MaxPerGame,
			MinDay:            cfg.Encounter.MinDay,
			EndBufferDays:     cfg.Encounter.EndBufferDays,
			CooldownDays:      cfg.Encounter.CooldownDays,
			EarlyChance:       cfg.Encounter.EarlyChance,
			MidChance:         cfg.Encounter.MidChance,
			LateChance:        cfg.Encounter.LateChance,
			DesperationFloor:  cfg.Encounter.DesperationFloor,
			TaxShelterSkipPct: cfg.Encounter.TaxShelterSkipPct,
		}),
		TrustFund: opts.TrustFund,
	}

	for _, a := range cat.Assets {
		s.Prices[a.ID] = a.BasePrice
	}
	s.sched = scheduler.New(cat, s.Duration, scheduler.Config{
		SpikeChance:    cfg.Scheduler.SpikeChance,
		RumorChance:    cfg.Scheduler.RumorChance,
		QuietDayChance: cfg.Scheduler.QuietDayChance,
		ModifierMin:    cfg.Scheduler.ModifierMin,
		ModifierMax:    cfg.Scheduler.ModifierMax,
	}, r)

	s.prevNW = s.Ledger.NetWorth(s.Prices)
	s.directorState = director.New(s.prevNW)
	return s
}

// directorConfig adapts the config package shape.
func (s *Session) directorConfig() director.Config {
	d := s.cfg.Director
	return director.Config{
		BigSwingPct:      d.BigSwingPct,
		MomentumAlpha:    d.MomentumAlpha,
		BaselineWindow:   d.BaselineWindow,
		ComebackMomentum: d.ComebackMomentum,
		ComebackDebtDays: d.ComebackDebtDays,
		BoostModifier:    d.BoostModifier,
		SuppressModifier: d.SuppressModifier,
		TensionSettle:    d.TensionSettle,
	}
}

// NetWorth marks the whole book to current prices.
func (s *Session) NetWorth() float64 {
	return s.Ledger.NetWorth(s.Prices)
}

// Feed returns the most recent day's news items.
func (s *Session) Feed() []scheduler.Item {
	cp := make([]scheduler.Item, len(s.feed))
	copy(cp, s.feed)
	return cp
}

// DirectorState exposes a snapshot for telemetry; not needed for play.
func (s *Session) DirectorState() director.State { return s.directorState }

// EncounterState exposes a snapshot for telemetry.
func (s *Session) EncounterState() encounter.State { return s.encounterSt }

// PendingEncounter returns the unresolved encounter, if any.
func (s *Session) PendingEncounter() *encounter.Pending { return s.encounterSt.Pending }

// Schedule exposes the pre-generated spike schedule for auditing.
func (s *Session) Schedule() []scheduler.ScheduledSpike { return s.sched.Schedule() }

// tradeable gates every player command on session liveness.
func (s *Session) tradeable() error {
	if s.GameOver != ledger.ReasonNone {
		return ErrGameOver
	}
	if s.pendingLiq != nil {
		return ErrLiquidationPending
	}
	return nil
}

func (s *Session) price(assetID string) (float64, error) {
	p, ok := s.Prices[assetID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAsset, assetID)
	}
	return p, nil
}

// Buy purchases qty at the current price.
func (s *Session) Buy(assetID string, qty float64) error {
	if err := s.tradeable(); err != nil {
		return err
	}
	price, err := s.price(assetID)
	if err != nil {
		return err
	}
	return s.Ledger.Buy(assetID, qty, price)
}

// Sell disposes qty at the current price and returns realized P&L.
func (s *Session) Sell(assetID string, qty float64) (float64, error) {
	if err := s.tradeable(); err != nil {
		return 0, err
	}
	price, err := s.price(assetID)
	if err != nil {
		return 0, err
	}
	return s.Ledger.Sell(assetID, qty, price)
}

// BuyWithLeverage opens a financed position at the current price.
func (s *Session) BuyWithLeverage(assetID string, qty, leverage float64) (*ledger.LeveragedPosition, error) {
	if err := s.tradeable(); err != nil {
		return nil, err
	}
	price, err := s.price(assetID)
	if err != nil {
		return nil, err
	}
	return s.Ledger.BuyWithLeverage(assetID, qty, price, leverage)
}

// CloseLeveragedPosition closes by id and returns realized P&L.
func (s *Session) CloseLeveragedPosition(id string) (float64, error) {
	if err := s.tradeable(); err != nil {
		return 0, err
	}
	pos, ok := s.Ledger.FindLeveraged(id)
	if !ok {
		return 0, ledger.ErrPositionNotFound
	}
	return s.Ledger.CloseLeveraged(id, s.Prices[pos.AssetID])
}

// ShortSell opens a short at the current price.
func (s *Session) ShortSell(assetID string, qty float64) (*ledger.ShortPosition, error) {
	if err := s.tradeable(); err != nil {
		return nil, err
	}
	price, err := s.price(assetID)
	if err != nil {
		return nil, err
	}
	return s.Ledger.ShortSell(assetID, qty, price)
}

// CoverShort closes a short by id and returns realized P&L.
func (s *Session) CoverShort(id string) (float64, error) {
	if err := s.tradeable(); err != nil {
		return 0, err
	}
	pos, ok := s.Ledger.FindShort(id)
	if !ok {
		return 0, ledger.ErrPositionNotFound
	}
	return s.Ledger.CoverShort(id, s.Prices[pos.AssetID])
}

func (s *Session) ownsShelter() bool {
	pos, ok := s.Ledger.Spot[s.cat.TaxShelterAssetID]
	return ok && pos.Qty > 0
}

// ResolveEncounter applies the player's choice to the pending encounter.
// A deduction larger than cash parks the session in a pending-liquidation
// state instead of applying immediately.
func (s *Session) ResolveEncounter(t encounter.Type, choice string) (encounter.Result, error) {
	if s.GameOver != ledger.ReasonNone {
		return encounter.Result{}, ErrGameOver
	}
	if s.pendingLiq != nil {
		return encounter.Result{}, ErrLiquidationPending
	}

	ctx := encounter.Context{
		NetWorth:    s.NetWorth(),
		Protected:   s.TrustFund,
		Cash:        s.Ledger.Cash,
		OwnsShelter: s.ownsShelter(),
		Choice:      choice,
	}
	res, err := s.encounters.Resolve(&s.encounterSt, t, ctx, s.rng)
	if err != nil {
		return encounter.Result{}, err
	}

	if res.GameOver {
		s.GameOver = res.Reason
		return res, nil
	}
	if res.LiquidationRequired > 0 {
		s.pendingLiq = &pendingLiquidation{
			required:   res.LiquidationRequired,
			cashChange: res.CashChange,
			headline:   res.Headline,
		}
		return res, nil
	}
	s.Ledger.Cash = ledger.RoundCents(s.Ledger.Cash + res.CashChange)
	return res, nil
}

// LiquidationRequired reports the outstanding amount, zero if none.
func (s *Session) LiquidationRequired() float64 {
	if s.pendingLiq == nil {
		return 0
	}
	return s.pendingLiq.required
}

// ConfirmLiquidationSelection sells the selected holdings (spot asset ids
// or leveraged position ids) and applies the parked deduction. The engine
// only validates that the selection's value covers the requirement; picking
// which assets to sacrifice is the caller's UI concern.
func (s *Session) ConfirmLiquidationSelection(selected []string) error {
	if s.GameOver != ledger.ReasonNone {
		return ErrGameOver
	}
	if s.pendingLiq == nil {
		return ErrNoLiquidationPending
	}

	total := 0.0
	type spotSale struct {
		assetID string
		qty     float64
	}
	var spots []spotSale
	var levs []string
	seen := map[string]bool{}
	for _, id := range selected {
		// A holding sells once no matter how often it is listed; counting a
		// duplicate would let an under-covering selection pass validation.
		if seen[id] {
			continue
		}
		seen[id] = true
		if pos, ok := s.Ledger.Spot[id]; ok {
			spots = append(spots, spotSale{assetID: id, qty: pos.Qty})
			total += pos.Qty * s.Prices[id]
			continue
		}
		if pos, ok := s.Ledger.FindLeveraged(id); ok {
			total += pos.Equity(s.Prices[pos.AssetID])
			levs = append(levs, id)
			continue
		}
		return fmt.Errorf("%w: %s", ledger.ErrPositionNotFound, id)
	}

	shortfall := s.pendingLiq.required - s.Ledger.Cash
	if ledger.RoundCents(total) < ledger.RoundCents(shortfall) {
		return ErrLiquidationShortfall
	}

	for _, sale := range spots {
		if _, err := s.Ledger.Sell(sale.assetID, sale.qty, s.Prices[sale.assetID]); err != nil {
			return err
		}
	}
	for _, id := range levs {
		pos, _ := s.Ledger.FindLeveraged(id)
		if _, err := s.Ledger.CloseLeveraged(id, s.Prices[pos.AssetID]); err != nil {
			return err
		}
	}

	s.Ledger.Cash = ledger.RoundCents(s.Ledger.Cash + s.pendingLiq.cashChange)
	s.pendingLiq = nil
	return nil
}
