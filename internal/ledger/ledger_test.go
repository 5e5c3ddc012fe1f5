package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeveragedBuyDebtMath(t *testing.T) {
	l := New(50_000, Config{})

	// 10 units at $100 with 5x: cost 1000, upfront 200, debt 800.
	pos, err := l.BuyWithLeverage("NMBS", 10, 100, 5)
	require.NoError(t, err)
	require.Equal(t, 800.0, pos.Debt)
	require.Equal(t, 49_800.0, l.Cash)
	require.Equal(t, 200.0, pos.Equity(100))
}

func TestMarginCallFiresAtZeroEquity(t *testing.T) {
	l := New(50_000, Config{})
	_, err := l.BuyWithLeverage("NMBS", 10, 100, 5)
	require.NoError(t, err)

	// Price drops to 20: qty*price = 200, equity = 200-800 = -600.
	reason := l.CheckSolvency(map[string]float64{"NMBS": 20})
	require.Equal(t, ReasonMarginCalled, reason)
}

func TestMarginFlagOnlyMode(t *testing.T) {
	l := New(50_000, Config{FlagOnly: true})
	pos, err := l.BuyWithLeverage("NMBS", 10, 100, 5)
	require.NoError(t, err)

	reason := l.CheckSolvency(map[string]float64{"NMBS": 20})
	require.Equal(t, ReasonNone, reason)
	require.True(t, pos.Underwater)

	// Recovery clears the flag.
	reason = l.CheckSolvency(map[string]float64{"NMBS": 100})
	require.Equal(t, ReasonNone, reason)
	require.False(t, pos.Underwater)
}

func TestLeveragedRoundTripIsFlat(t *testing.T) {
	l := New(50_000, Config{})
	pos, err := l.BuyWithLeverage("NMBS", 10, 100, 5)
	require.NoError(t, err)

	pnl, err := l.CloseLeveraged(pos.ID, 100)
	require.NoError(t, err)
	require.InDelta(t, 0, pnl, 0.01)
	require.InDelta(t, 50_000, l.Cash, 0.01)
	require.Empty(t, l.Leveraged)
}

func TestLeveragedCloseRealizesAmplifiedPnL(t *testing.T) {
	l := New(50_000, Config{})
	pos, err := l.BuyWithLeverage("NMBS", 10, 100, 5)
	require.NoError(t, err)

	// +10% on the asset is +50% on the 200 equity stake.
	pnl, err := l.CloseLeveraged(pos.ID, 110)
	require.NoError(t, err)
	require.InDelta(t, 100, pnl, 0.01)
	require.InDelta(t, 50_100, l.Cash, 0.01)
}

func TestShortCollateralRule(t *testing.T) {
	l := New(1_000, Config{})

	// Proceeds 900 <= cash 1000: allowed.
	_, err := l.ShortSell("NMBS", 9, 100)
	require.NoError(t, err)
	require.Equal(t, 1_900.0, l.Cash)

	// Another 1100 would put committed proceeds (2000) over cash at open
	// time (1900)... 900+1100=2000 > 1900: rejected, nothing mutated.
	_, err = l.ShortSell("NMBS", 11, 100)
	require.ErrorIs(t, err, ErrShortCollateral)
	require.Equal(t, 1_900.0, l.Cash)
	require.Len(t, l.Shorts, 1)
}

func TestShortSqueezeDetection(t *testing.T) {
	l := New(10_000, Config{})
	_, err := l.ShortSell("DOGE2", 100, 10) // received 1000
	require.NoError(t, err)

	// Liability 1000 at price 10: flat, no squeeze.
	require.Equal(t, ReasonNone, l.CheckSolvency(map[string]float64{"DOGE2": 10}))

	// Price doubles: liability 2000 > received 1000.
	require.Equal(t, ReasonShortSqueezed, l.CheckSolvency(map[string]float64{"DOGE2": 20}))
}

func TestShortSqueezeToleranceBuffer(t *testing.T) {
	l := New(10_000, Config{SqueezeTolerance: 500})
	_, err := l.ShortSell("DOGE2", 100, 10)
	require.NoError(t, err)

	// Liability 1400: 400 over received, inside the 500 buffer.
	require.Equal(t, ReasonNone, l.CheckSolvency(map[string]float64{"DOGE2": 14}))
	// Liability 1600: over the buffer.
	require.Equal(t, ReasonShortSqueezed, l.CheckSolvency(map[string]float64{"DOGE2": 16}))
}

func TestCoverShortRealizesPnL(t *testing.T) {
	l := New(10_000, Config{})
	pos, err := l.ShortSell("DOGE2", 100, 10)
	require.NoError(t, err)

	pnl, err := l.CoverShort(pos.ID, 6)
	require.NoError(t, err)
	require.InDelta(t, 400, pnl, 0.01)
	require.InDelta(t, 10_400, l.Cash, 0.01)
	require.Empty(t, l.Shorts)
}

func TestSpotBuySellAveraging(t *testing.T) {
	l := New(10_000, Config{})
	require.NoError(t, l.Buy("NMBS", 10, 100))
	require.NoError(t, l.Buy("NMBS", 10, 200))
	require.InDelta(t, 150, l.Spot["NMBS"].AvgEntry, 0.001)

	pnl, err := l.Sell("NMBS", 20, 175)
	require.NoError(t, err)
	require.InDelta(t, 500, pnl, 0.01)
	require.NotContains(t, l.Spot, "NMBS")
}

func TestPreconditionsDoNotMutate(t *testing.T) {
	l := New(100, Config{})

	require.ErrorIs(t, l.Buy("NMBS", 10, 100), ErrInsufficientCash)
	require.ErrorIs(t, l.Buy("NMBS", -1, 100), ErrInvalidQuantity)
	_, err := l.Sell("NMBS", 1, 100)
	require.ErrorIs(t, err, ErrInsufficientQuantity)
	_, err = l.BuyWithLeverage("NMBS", 1, 100, 1)
	require.ErrorIs(t, err, ErrInvalidLeverage)
	_, err = l.BuyWithLeverage("NMBS", 1, 100, 50)
	require.ErrorIs(t, err, ErrInvalidLeverage)
	_, err = l.CloseLeveraged("nope", 100)
	require.ErrorIs(t, err, ErrPositionNotFound)

	require.Equal(t, 100.0, l.Cash)
	require.Empty(t, l.Spot)
	require.Empty(t, l.Leveraged)
	require.Empty(t, l.Shorts)
}

func TestNetWorthMarksEverything(t *testing.T) {
	l := New(10_000, Config{})
	require.NoError(t, l.Buy("NMBS", 10, 100))     // cash 9000, spot 1000
	_, err := l.BuyWithLeverage("GOLD", 1, 1000, 2) // upfront 500, debt 500
	require.NoError(t, err)
	_, err = l.ShortSell("DOGE2", 100, 10) // +1000 cash, liability floats
	require.NoError(t, err)

	prices := map[string]float64{"NMBS": 100, "GOLD": 1000, "DOGE2": 10}
	// cash 9500, spot 1000, lev equity 500, short -1000.
	require.InDelta(t, 10_000, l.NetWorth(prices), 0.01)
}

func TestRoundCents(t *testing.T) {
	require.Equal(t, 10.56, RoundCents(10.556))
	require.Equal(t, 10.55, RoundCents(10.554))
	require.Equal(t, -2.50, RoundCents(-2.499999999))
}
