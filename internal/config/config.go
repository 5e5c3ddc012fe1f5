package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Scheduler struct {
	SpikeChance    float64 `yaml:"spike_chance"`     // per-day chance of scheduling a spike
	RumorChance    float64 `yaml:"rumor_chance"`     // chance a scheduled spike gets a rumor
	QuietDayChance float64 `yaml:"quiet_day_chance"` // chance a day has no flavor news
	ModifierMin    float64 `yaml:"modifier_min"`     // clamp on director*ripple combined modifier
	ModifierMax    float64 `yaml:"modifier_max"`
}

type Director struct {
	BigSwingPct      float64 `yaml:"big_swing_pct"`      // single-day net-worth move that counts as "big"
	MomentumAlpha    float64 `yaml:"momentum_alpha"`     // smoothing factor for the momentum EWMA
	BaselineWindow   int     `yaml:"baseline_window"`    // days in the rolling net-worth baseline
	ComebackMomentum float64 `yaml:"comeback_momentum"`  // momentum at or below which assistance kicks in
	ComebackDebtDays int     `yaml:"comeback_debt_days"` // dopamine debt needed for assistance
	BoostModifier    float64 `yaml:"boost_modifier"`     // comeback-category probability boost
	SuppressModifier float64 `yaml:"suppress_modifier"`  // floor for pile-on categories
	TensionSettle    float64 `yaml:"tension_settle"`     // per-day pull toward the phase target
}

type Ripple struct {
	ActivationChance float64 `yaml:"activation_chance"`
	InitialStrength  float64 `yaml:"initial_strength"`
	DecayPerDay      float64 `yaml:"decay_per_day"` // exponential retain factor per day
	MinStrength      float64 `yaml:"min_strength"`  // prune threshold
	MaxBoost         float64 `yaml:"max_boost"`
	MinSuppression   float64 `yaml:"min_suppression"`
	MaxVolBoost      float64 `yaml:"max_vol_boost"`
}

type Encounter struct {
	MaxPerGame        int     `yaml:"max_per_game"`
	MinDay            int     `yaml:"min_day"`
	EndBufferDays     int     `yaml:"end_buffer_days"`
	CooldownDays      int     `yaml:"cooldown_days"`
	EarlyChance       float64 `yaml:"early_chance"`
	MidChance         float64 `yaml:"mid_chance"`
	LateChance        float64 `yaml:"late_chance"`
	DesperationFloor  float64 `yaml:"desperation_floor"`    // net worth below which the kidney offer appears
	TaxShelterSkipPct float64 `yaml:"tax_shelter_skip_pct"` // chance the shelter asset deflects a tax audit
}

type Ledger struct {
	MinPrice         float64 `yaml:"min_price"`
	MaxLeverage      float64 `yaml:"max_leverage"`
	MarginFlagOnly   bool    `yaml:"margin_flag_only"`  // flag underwater positions instead of ending the game
	SqueezeTolerance float64 `yaml:"squeeze_tolerance"` // absolute buffer before a short squeeze terminates
}

type Root struct {
	GameDurationDays int       `yaml:"game_duration_days"`
	StartingCash     float64   `yaml:"starting_cash"`
	Seed             int64     `yaml:"seed"`
	Scheduler        Scheduler `yaml:"scheduler"`
	Director         Director  `yaml:"director"`
	Ripple           Ripple    `yaml:"ripple"`
	Encounter        Encounter `yaml:"encounter"`
	Ledger           Ledger    `yaml:"ledger"`
}

// Default returns the built-in tuning.
func Default() Root {
	var c Root
	c.applyDefaults()
	return c
}

// Load reads a yaml config and backfills defaults for anything unset.
func Load(path string) (Root, error) {
	var c Root
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.applyDefaults()
	return c, nil
}

func (c *Root) applyDefaults() {
	if c.GameDurationDays == 0 {
		c.GameDurationDays = 60
	}
	if c.StartingCash == 0 {
		c.StartingCash = 50_000
	}

	if c.Scheduler.SpikeChance == 0 {
		c.Scheduler.SpikeChance = 0.08
	}
	if c.Scheduler.RumorChance == 0 {
		c.Scheduler.RumorChance = 0.60
	}
	if c.Scheduler.QuietDayChance == 0 {
		c.Scheduler.QuietDayChance = 0.15
	}
	if c.Scheduler.ModifierMin == 0 {
		c.Scheduler.ModifierMin = 0.1
	}
	if c.Scheduler.ModifierMax == 0 {
		c.Scheduler.ModifierMax = 4.0
	}

	if c.Director.BigSwingPct == 0 {
		c.Director.BigSwingPct = 0.15
	}
	if c.Director.MomentumAlpha == 0 {
		c.Director.MomentumAlpha = 0.3
	}
	if c.Director.BaselineWindow == 0 {
		c.Director.BaselineWindow = 5
	}
	if c.Director.ComebackMomentum == 0 {
		c.Director.ComebackMomentum = -0.5
	}
	if c.Director.ComebackDebtDays == 0 {
		c.Director.ComebackDebtDays = 5
	}
	if c.Director.BoostModifier == 0 {
		c.Director.BoostModifier = 2.0
	}
	if c.Director.SuppressModifier == 0 {
		c.Director.SuppressModifier = 0.5
	}
	if c.Director.TensionSettle == 0 {
		c.Director.TensionSettle = 0.15
	}

	if c.Ripple.ActivationChance == 0 {
		c.Ripple.ActivationChance = 0.7
	}
	if c.Ripple.InitialStrength == 0 {
		c.Ripple.InitialStrength = 1.0
	}
	if c.Ripple.DecayPerDay == 0 {
		c.Ripple.DecayPerDay = 0.65
	}
	if c.Ripple.MinStrength == 0 {
		c.Ripple.MinStrength = 0.05
	}
	if c.Ripple.MaxBoost == 0 {
		c.Ripple.MaxBoost = 3.0
	}
	if c.Ripple.MinSuppression == 0 {
		c.Ripple.MinSuppression = 0.25
	}
	if c.Ripple.MaxVolBoost == 0 {
		c.Ripple.MaxVolBoost = 2.0
	}

	if c.Encounter.MaxPerGame == 0 {
		c.Encounter.MaxPerGame = 2
	}
	if c.Encounter.MinDay == 0 {
		c.Encounter.MinDay = 3
	}
	if c.Encounter.EndBufferDays == 0 {
		c.Encounter.EndBufferDays = 3
	}
	if c.Encounter.CooldownDays == 0 {
		c.Encounter.CooldownDays = 8
	}
	if c.Encounter.EarlyChance == 0 {
		c.Encounter.EarlyChance = 0.10
	}
	if c.Encounter.MidChance == 0 {
		c.Encounter.MidChance = 0.15
	}
	if c.Encounter.LateChance == 0 {
		c.Encounter.LateChance = 0.25
	}
	if c.Encounter.DesperationFloor == 0 {
		c.Encounter.DesperationFloor = 10_000
	}
	if c.Encounter.TaxShelterSkipPct == 0 {
		c.Encounter.TaxShelterSkipPct = 0.20
	}

	if c.Ledger.MinPrice == 0 {
		c.Ledger.MinPrice = 0.01
	}
	if c.Ledger.MaxLeverage == 0 {
		c.Ledger.MaxLeverage = 10
	}
}
