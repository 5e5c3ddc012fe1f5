// Package encounter implements the binary-choice high-stakes events. A
// machine rolls at most one trigger per eligible day; resolution is a pure
// function of (choice, context, rng) so outcomes are replayable.
//
// Lifecycle: idle -> eligible -> triggered (Pending set) -> resolved.
package encounter

import (
	"errors"
	"math"

	"github.com/candlefield/trading-game/internal/ledger"
	"github.com/candlefield/trading-game/internal/observ"
	"github.com/candlefield/trading-game/internal/rng"
)

// Type identifies an encounter.
type Type string

const (
	TypeSEC      Type = "sec"
	TypeDivorce  Type = "divorce"
	TypeShitcoin Type = "shitcoin"
	TypeKidney   Type = "kidney"
	TypeRoulette Type = "roulette"
	TypeTax      Type = "tax"
)

var (
	ErrNoPending     = errors.New("no encounter awaiting resolution")
	ErrWrongType     = errors.New("pending encounter is a different type")
	ErrUnknownChoice = errors.New("unknown choice for encounter")
)

// Config mirrors config.Encounter.
type Config struct {
	MaxPerGame        int
	MinDay            int
	EndBufferDays     int
	CooldownDays      int
	EarlyChance       float64
	MidChance         float64
	LateChance        float64
	DesperationFloor  float64
	TaxShelterSkipPct float64
}

// State is one session's encounter memory. One-shot flags never reset
// within a game.
type State struct {
	Count         int
	LastDay       int // 0 = never
	UsedSEC       bool
	UsedKidney    bool
	UsedTax       bool
	DivorceCount  int
	FBIHeat       float64 // 0-100, drives the sec roll
	WifeSuspicion float64 // 0-100, drives the divorce roll
	Pending       *Pending
}

// Pending is a triggered encounter awaiting the player's choice.
type Pending struct {
	Type      Type
	Day       int
	Headline  string
	Choices   []string
	BetAmount float64 // roulette only
}

// Context carries everything resolution needs. Exposed net worth is net
// worth minus any protected trust-fund balance; all percentage outcomes
// apply to it, floored to whole units.
type Context struct {
	NetWorth    float64
	Protected   float64
	Cash        float64
	OwnsShelter bool
	BetAmount   float64
	Choice      string
}

func (c Context) exposed() float64 {
	e := c.NetWorth - c.Protected
	if e < 0 {
		return 0
	}
	return e
}

// Result of resolving an encounter. CashChange may push cash negative only
// when LiquidationRequired is set, in which case the session demands an
// asset selection covering the shortfall before applying it.
type Result struct {
	Headline            string
	CashChange          float64
	GameOver            bool
	Reason              ledger.Reason
	LiquidationRequired float64
}

// Machine rolls triggers and applies resolutions.
type Machine struct {
	cfg Config
}

func NewMachine(cfg Config) *Machine {
	return &Machine{cfg: cfg}
}

// Eligible reports whether a new encounter may trigger today.
func (m *Machine) Eligible(s *State, day, duration int) bool {
	if s.Pending != nil {
		return false
	}
	if s.Count >= m.cfg.MaxPerGame {
		return false
	}
	if day < m.cfg.MinDay || day > duration-m.cfg.EndBufferDays {
		return false
	}
	if s.LastDay != 0 && day-s.LastDay < m.cfg.CooldownDays {
		return false
	}
	return true
}

// heatChance is the independent exponential roll for the heat-driven types:
// P = 0.5 * (heat/90)^3.
func heatChance(heat float64) float64 {
	x := heat / 90
	return 0.5 * x * x * x
}

// Roll checks the heat-driven types first, then the generic pool. It mutates
// the state only when a trigger fires (Pending, Count, LastDay).
func (m *Machine) Roll(s *State, day, duration int, netWorth float64, ownsShelter bool, r rng.RNG) *Pending {
	if !m.Eligible(s, day, duration) {
		return nil
	}

	// Heat-driven rolls run before the generic pool.
	if !s.UsedSEC && r.Float64() < heatChance(s.FBIHeat) {
		return m.trigger(s, day, TypeSEC, 0)
	}
	if r.Float64() < heatChance(s.WifeSuspicion) {
		return m.trigger(s, day, TypeDivorce, 0)
	}

	chance := m.poolChance(s, day, duration)
	if r.Float64() >= chance {
		return nil
	}

	pool := m.pool(s, netWorth)
	if len(pool) == 0 {
		return nil
	}
	pick := pool[r.Intn(len(pool))]

	// A shelter holding sometimes makes the auditors look elsewhere.
	if pick == TypeTax && ownsShelter && r.Float64() < m.cfg.TaxShelterSkipPct {
		replaced := without(pool, TypeTax)
		if len(replaced) == 0 {
			return nil
		}
		pick = replaced[r.Intn(len(replaced))]
	}

	bet := 0.0
	if pick == TypeRoulette {
		bet = 1000
	}
	return m.trigger(s, day, pick, bet)
}

func (m *Machine) poolChance(s *State, day, duration int) float64 {
	if s.Count > 0 {
		return m.cfg.EarlyChance
	}
	progress := float64(day) / float64(duration)
	switch {
	case progress < 0.33:
		return m.cfg.EarlyChance
	case progress < 0.66:
		return m.cfg.MidChance
	default:
		return m.cfg.LateChance
	}
}

func (m *Machine) pool(s *State, netWorth float64) []Type {
	pool := []Type{TypeShitcoin, TypeRoulette}
	if !s.UsedKidney && netWorth < m.cfg.DesperationFloor {
		pool = append(pool, TypeKidney)
	}
	if !s.UsedTax {
		pool = append(pool, TypeTax)
	}
	return pool
}

func (m *Machine) trigger(s *State, day int, t Type, bet float64) *Pending {
	p := &Pending{Type: t, Day: day, Headline: offerHeadline(t), Choices: choicesFor(t), BetAmount: bet}
	s.Pending = p
	s.Count++
	s.LastDay = day
	switch t {
	case TypeSEC:
		s.UsedSEC = true
		s.FBIHeat = 0
	case TypeDivorce:
		s.DivorceCount++
		s.WifeSuspicion = 0
	case TypeKidney:
		s.UsedKidney = true
	case TypeTax:
		s.UsedTax = true
	}
	observ.IncCounter("encounters_triggered_total", map[string]string{"type": string(t)})
	return p
}

// Resolve applies the player's choice to the pending encounter. The pending
// slot is cleared on success; preconditions reject without mutating.
func (m *Machine) Resolve(s *State, t Type, ctx Context, r rng.RNG) (Result, error) {
	if s.Pending == nil {
		return Result{}, ErrNoPending
	}
	if s.Pending.Type != t {
		return Result{}, ErrWrongType
	}
	if ctx.BetAmount == 0 {
		ctx.BetAmount = s.Pending.BetAmount
	}

	res, err := resolve(t, ctx, r)
	if err != nil {
		return Result{}, err
	}
	s.Pending = nil
	observ.IncCounter("encounters_resolved_total", map[string]string{"type": string(t), "choice": ctx.Choice})
	return res, nil
}

// AccrueHeat feeds the day's activity into the heat stats. Leveraged and
// short exposure draw regulatory attention; big swings and late nights at
// the terminal draw marital attention. Capped at 100.
func AccrueHeat(s *State, leveragedCount, shortCount int, bigSwing bool) {
	s.FBIHeat += 1.5 * float64(leveragedCount+shortCount)
	s.WifeSuspicion += 1
	if bigSwing {
		s.FBIHeat += 4
		s.WifeSuspicion += 5
	}
	s.FBIHeat = math.Min(s.FBIHeat, 100)
	s.WifeSuspicion = math.Min(s.WifeSuspicion, 100)
}

func without(pool []Type, t Type) []Type {
	var out []Type
	for _, p := range pool {
		if p != t {
			out = append(out, p)
		}
	}
	return out
}
