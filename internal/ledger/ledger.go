// Package ledger is the pure accounting core: cash, spot holdings, leveraged
// positions, and shorts, plus terminal-state detection (margin calls, short
// squeezes). It never draws randomness and never mutates on a failed
// precondition.
package ledger

import (
	"errors"
	"math"

	"github.com/google/uuid"
)

// Reason is a terminal game state. Once a session carries one, no further
// trades or day advances are accepted.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonBankrupt      Reason = "BANKRUPT"
	ReasonMarginCalled  Reason = "MARGIN_CALLED"
	ReasonShortSqueezed Reason = "SHORT_SQUEEZED"
	ReasonImprisoned    Reason = "IMPRISONED"
	ReasonDeceased      Reason = "DECEASED"
	ReasonCatastrophe   Reason = "ECONOMIC_CATASTROPHE"
)

var (
	ErrInsufficientCash     = errors.New("insufficient cash")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInvalidLeverage      = errors.New("leverage out of range")
	ErrPositionNotFound     = errors.New("position not found")
	ErrShortCollateral      = errors.New("short proceeds would exceed cash collateral")
)

// RoundCents is the single rounding rule for all money in the engine:
// nearest cent, never truncation, so P&L reconciles exactly.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Config tunes solvency detection.
type Config struct {
	MaxLeverage float64
	// FlagOnly marks underwater leveraged positions instead of terminating,
	// for UI highlighting ahead of forced closure.
	FlagOnly bool
	// SqueezeTolerance is the absolute buffer a short's liability may exceed
	// its proceeds by before the squeeze terminates the game.
	SqueezeTolerance float64
}

// SpotPosition is a plain unleveraged holding.
type SpotPosition struct {
	AssetID  string
	Qty      float64
	AvgEntry float64
}

// LeveragedPosition carries debt equal to the financed share of its cost.
type LeveragedPosition struct {
	ID         string
	AssetID    string
	Qty        float64
	EntryPrice float64
	Leverage   float64
	Debt       float64
	Underwater bool // set in FlagOnly mode when equity <= 0
}

// Equity at the given price. A margin call fires when this reaches zero.
func (p *LeveragedPosition) Equity(price float64) float64 {
	return RoundCents(p.Qty*price - p.Debt)
}

// ShortPosition received cash up front and owes qty at the current price.
type ShortPosition struct {
	ID           string
	AssetID      string
	Qty          float64
	EntryPrice   float64
	CashReceived float64
}

// Liability is what covering costs at the given price.
func (p *ShortPosition) Liability(price float64) float64 {
	return RoundCents(p.Qty * price)
}

// Ledger owns one player's cash and positions.
type Ledger struct {
	Cash      float64
	Spot      map[string]*SpotPosition
	Leveraged []*LeveragedPosition
	Shorts    []*ShortPosition

	cfg Config
}

func New(startingCash float64, cfg Config) *Ledger {
	if cfg.MaxLeverage == 0 {
		cfg.MaxLeverage = 10
	}
	return &Ledger{
		Cash: RoundCents(startingCash),
		Spot: map[string]*SpotPosition{},
		cfg:  cfg,
	}
}

// Buy acquires qty at price for cash.
func (l *Ledger) Buy(assetID string, qty, price float64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	cost := RoundCents(qty * price)
	if cost > l.Cash {
		return ErrInsufficientCash
	}
	l.Cash = RoundCents(l.Cash - cost)
	pos, ok := l.Spot[assetID]
	if !ok {
		l.Spot[assetID] = &SpotPosition{AssetID: assetID, Qty: qty, AvgEntry: price}
		return nil
	}
	total := pos.Qty + qty
	pos.AvgEntry = (pos.AvgEntry*pos.Qty + price*qty) / total
	pos.Qty = total
	return nil
}

// Sell disposes qty at price, returning realized P&L against average entry.
func (l *Ledger) Sell(assetID string, qty, price float64) (float64, error) {
	if qty <= 0 {
		return 0, ErrInvalidQuantity
	}
	pos, ok := l.Spot[assetID]
	if !ok || pos.Qty < qty {
		return 0, ErrInsufficientQuantity
	}
	proceeds := RoundCents(qty * price)
	pnl := RoundCents(qty * (price - pos.AvgEntry))
	l.Cash = RoundCents(l.Cash + proceeds)
	pos.Qty -= qty
	if pos.Qty <= 0 {
		delete(l.Spot, assetID)
	}
	return pnl, nil
}

// BuyWithLeverage opens a financed position. The player pays cost/leverage
// up front; the rest is debt carried by the position.
func (l *Ledger) BuyWithLeverage(assetID string, qty, price, leverage float64) (*LeveragedPosition, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if leverage <= 1 || leverage > l.cfg.MaxLeverage {
		return nil, ErrInvalidLeverage
	}
	cost := qty * price
	upfront := RoundCents(cost / leverage)
	if upfront > l.Cash {
		return nil, ErrInsufficientCash
	}
	pos := &LeveragedPosition{
		ID:         uuid.NewString(),
		AssetID:    assetID,
		Qty:        qty,
		EntryPrice: price,
		Leverage:   leverage,
		Debt:       RoundCents(cost * (1 - 1/leverage)),
	}
	l.Cash = RoundCents(l.Cash - upfront)
	l.Leveraged = append(l.Leveraged, pos)
	return pos, nil
}

// CloseLeveraged realizes P&L = equity now minus equity at entry and removes
// the position.
func (l *Ledger) CloseLeveraged(id string, price float64) (float64, error) {
	for i, pos := range l.Leveraged {
		if pos.ID != id {
			continue
		}
		equity := pos.Equity(price)
		original := pos.Equity(pos.EntryPrice)
		l.Cash = RoundCents(l.Cash + equity)
		l.Leveraged = append(l.Leveraged[:i], l.Leveraged[i+1:]...)
		return RoundCents(equity - original), nil
	}
	return 0, ErrPositionNotFound
}

// ShortSell opens a short, crediting proceeds immediately. Hard collateral
// rule: total proceeds across open shorts may not exceed cash on hand at
// open time.
func (l *Ledger) ShortSell(assetID string, qty, price float64) (*ShortPosition, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	proceeds := RoundCents(qty * price)
	committed := proceeds
	for _, s := range l.Shorts {
		committed += s.CashReceived
	}
	if committed > l.Cash {
		return nil, ErrShortCollateral
	}
	pos := &ShortPosition{
		ID:           uuid.NewString(),
		AssetID:      assetID,
		Qty:          qty,
		EntryPrice:   price,
		CashReceived: proceeds,
	}
	l.Cash = RoundCents(l.Cash + proceeds)
	l.Shorts = append(l.Shorts, pos)
	return pos, nil
}

// CoverShort buys back the borrowed quantity and realizes
// cashReceived - liability.
func (l *Ledger) CoverShort(id string, price float64) (float64, error) {
	for i, pos := range l.Shorts {
		if pos.ID != id {
			continue
		}
		liability := pos.Liability(price)
		if liability > l.Cash {
			return 0, ErrInsufficientCash
		}
		l.Cash = RoundCents(l.Cash - liability)
		l.Shorts = append(l.Shorts[:i], l.Shorts[i+1:]...)
		return RoundCents(pos.CashReceived - liability), nil
	}
	return 0, ErrPositionNotFound
}

// FindLeveraged returns the open leveraged position with the given id.
func (l *Ledger) FindLeveraged(id string) (*LeveragedPosition, bool) {
	for _, p := range l.Leveraged {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// FindShort returns the open short with the given id.
func (l *Ledger) FindShort(id string) (*ShortPosition, bool) {
	for _, p := range l.Shorts {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// CheckSolvency runs terminal-state detection against current prices. It is
// called immediately after each day's price update, before the player may
// act. Order: margin calls first, then short squeezes.
func (l *Ledger) CheckSolvency(prices map[string]float64) Reason {
	for _, pos := range l.Leveraged {
		price, ok := prices[pos.AssetID]
		if !ok {
			continue
		}
		if pos.Equity(price) <= 0 {
			if l.cfg.FlagOnly {
				pos.Underwater = true
				continue
			}
			return ReasonMarginCalled
		}
		pos.Underwater = false
	}
	for _, pos := range l.Shorts {
		price, ok := prices[pos.AssetID]
		if !ok {
			continue
		}
		if pos.CashReceived-pos.Liability(price) < -l.cfg.SqueezeTolerance {
			return ReasonShortSqueezed
		}
	}
	return ReasonNone
}

// NetWorth marks everything to the given prices. Short proceeds already sit
// in cash, so open shorts contribute negative liability.
func (l *Ledger) NetWorth(prices map[string]float64) float64 {
	total := l.Cash
	for _, pos := range l.Spot {
		total += pos.Qty * prices[pos.AssetID]
	}
	for _, pos := range l.Leveraged {
		total += pos.Qty*prices[pos.AssetID] - pos.Debt
	}
	for _, pos := range l.Shorts {
		total -= pos.Liability(prices[pos.AssetID])
	}
	return RoundCents(total)
}

// HoldingsValue is the liquidatable value: spot holdings plus leveraged
// equity. Shorts cannot be sold to raise cash.
func (l *Ledger) HoldingsValue(prices map[string]float64) float64 {
	total := 0.0
	for _, pos := range l.Spot {
		total += pos.Qty * prices[pos.AssetID]
	}
	for _, pos := range l.Leveraged {
		if eq := pos.Equity(prices[pos.AssetID]); eq > 0 {
			total += eq
		}
	}
	return RoundCents(total)
}
