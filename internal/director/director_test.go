package director

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/candlefield/trading-game/internal/catalog"
)

func testConfig() Config {
	return Config{
		BigSwingPct:      0.15,
		MomentumAlpha:    0.3,
		BaselineWindow:   5,
		ComebackMomentum: -0.5,
		ComebackDebtDays: 5,
		BoostModifier:    2.0,
		SuppressModifier: 0.5,
		TensionSettle:    0.15,
	}
}

func TestPhaseCurve(t *testing.T) {
	cases := []struct {
		day  int
		want Phase
	}{
		{day: 1, want: PhaseSetup},
		{day: 19, want: PhaseSetup},
		{day: 20, want: PhaseRising},
		{day: 49, want: PhaseRising},
		{day: 50, want: PhaseComplication},
		{day: 74, want: PhaseComplication},
		{day: 75, want: PhaseClimax},
		{day: 89, want: PhaseClimax},
		{day: 90, want: PhaseResolution},
		{day: 100, want: PhaseResolution},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, PhaseFor(tc.day, 100), "day %d", tc.day)
	}
}

func TestDopamineDebtAccrualAndReset(t *testing.T) {
	cfg := testConfig()
	st := New(100_000)

	// Three flat days accrue debt.
	nw := 100_000.0
	for day := 1; day <= 3; day++ {
		st = Advance(st, Outcome{Day: day, Duration: 60, NetWorth: nw, PrevNetWorth: nw}, cfg)
	}
	require.Equal(t, 3, st.DopamineDebtDays)

	// A 20% swing resets it.
	st = Advance(st, Outcome{Day: 4, Duration: 60, NetWorth: 120_000, PrevNetWorth: 100_000}, cfg)
	require.Equal(t, 0, st.DopamineDebtDays)
}

func TestMomentumTracksTrendAndStaysBounded(t *testing.T) {
	cfg := testConfig()
	st := New(100_000)

	nw := 100_000.0
	for day := 1; day <= 20; day++ {
		nw *= 1.30
		st = Advance(st, Outcome{Day: day, Duration: 60, NetWorth: nw, PrevNetWorth: nw / 1.30}, cfg)
	}
	require.Greater(t, st.Momentum, 0.5)
	require.LessOrEqual(t, st.Momentum, 1.0)

	for day := 21; day <= 40; day++ {
		prev := nw
		nw *= 0.60
		st = Advance(st, Outcome{Day: day, Duration: 60, NetWorth: nw, PrevNetWorth: prev}, cfg)
	}
	require.Less(t, st.Momentum, -0.5)
	require.GreaterOrEqual(t, st.Momentum, -1.0)
}

func TestTensionRisesOnBigEvents(t *testing.T) {
	cfg := testConfig()
	st := New(100_000)

	quiet := Advance(st, Outcome{Day: 5, Duration: 60, NetWorth: 100_000, PrevNetWorth: 100_000}, cfg)
	loud := Advance(st, Outcome{Day: 5, Duration: 60, NetWorth: 100_000, PrevNetWorth: 100_000, EventMagnitude: 0.5}, cfg)
	require.Greater(t, loud.Tension, quiet.Tension)
	require.LessOrEqual(t, loud.Tension, 1.0)
}

func TestComebackAssistModifiers(t *testing.T) {
	cfg := testConfig()
	st := State{Momentum: -0.8, DopamineDebtDays: 6, Phase: PhaseComplication, Tension: 0.7}

	m := GetEventModifiers(st, cfg)
	require.True(t, m.ComebackAssist)
	require.Equal(t, cfg.BoostModifier, m.Category[catalog.CategoryComeback])
	require.Equal(t, cfg.SuppressModifier, m.CrashDamp)
	require.Equal(t, 1.0, m.MoonDamp)
}

func TestChallengeModifiers(t *testing.T) {
	cfg := testConfig()
	st := State{Momentum: 0.8, DopamineDebtDays: 6}

	m := GetEventModifiers(st, cfg)
	require.True(t, m.ChallengeDue)
	require.Equal(t, cfg.SuppressModifier, m.MoonDamp)
	require.Equal(t, 1.0, m.CrashDamp)
	require.NotContains(t, m.Category, catalog.CategoryComeback)
}

func TestNeutralStateYieldsNeutralModifiers(t *testing.T) {
	cfg := testConfig()
	m := GetEventModifiers(New(100_000), cfg)
	require.False(t, m.ComebackAssist)
	require.False(t, m.ChallengeDue)
	require.Equal(t, 1.0, m.CrashDamp)
	require.Equal(t, 1.0, m.MoonDamp)
	require.Empty(t, m.Category)
}

// Advancing the same outcome log twice from the same start must produce
// identical state sequences: the director has no hidden inputs.
func TestReplayDeterminism(t *testing.T) {
	cfg := testConfig()
	outcomes := []Outcome{
		{Day: 1, Duration: 60, NetWorth: 102_000, PrevNetWorth: 100_000, EventMagnitude: 0.02},
		{Day: 2, Duration: 60, NetWorth: 90_000, PrevNetWorth: 102_000, EventMagnitude: 0.30},
		{Day: 3, Duration: 60, NetWorth: 91_000, PrevNetWorth: 90_000},
		{Day: 4, Duration: 60, NetWorth: 130_000, PrevNetWorth: 91_000, EventMagnitude: 0.45},
		{Day: 5, Duration: 60, NetWorth: 129_500, PrevNetWorth: 130_000},
	}

	run := func() []State {
		st := New(100_000)
		var states []State
		for _, o := range outcomes {
			st = Advance(st, o, cfg)
			states = append(states, st)
		}
		return states
	}

	a, b := run(), run()
	for i := range a {
		require.Equal(t, a[i].Momentum, b[i].Momentum, "day %d", i+1)
		require.Equal(t, a[i].Tension, b[i].Tension, "day %d", i+1)
		require.Equal(t, a[i].DopamineDebtDays, b[i].DopamineDebtDays, "day %d", i+1)
		require.Equal(t, a[i].Phase, b[i].Phase, "day %d", i+1)
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	cfg := testConfig()
	st := New(100_000)
	before := st.DopamineDebtDays
	baselineLen := len(st.Baseline)

	_ = Advance(st, Outcome{Day: 1, Duration: 60, NetWorth: 100_000, PrevNetWorth: 100_000}, cfg)
	require.Equal(t, before, st.DopamineDebtDays)
	require.Len(t, st.Baseline, baselineLen)
}
