// Package scheduler owns the spike schedule and the daily news selection.
// Spikes are pre-generated for the whole game at session start so rumors are
// guaranteed consistent with a real future spike and the run is auditable.
package scheduler

import (
	"github.com/candlefield/trading-game/internal/catalog"
	"github.com/candlefield/trading-game/internal/observ"
	"github.com/candlefield/trading-game/internal/rng"
)

// Config mirrors config.Scheduler.
type Config struct {
	SpikeChance    float64
	RumorChance    float64
	QuietDayChance float64
	ModifierMin    float64
	ModifierMax    float64
}

// ScheduledSpike pins an event to a day. RumorDay == 0 means no rumor;
// otherwise 1 <= RumorDay < Day.
type ScheduledSpike struct {
	Day      int
	EventID  string
	RumorDay int
}

// Scheduler holds one session's schedule and consumed-headline bookkeeping.
type Scheduler struct {
	cfg      Config
	cat      *catalog.Catalog
	schedule []ScheduledSpike
	usedFlav map[string]bool
}

// New rolls the full spike schedule for days 2..duration. Each day hits
// independently with cfg.SpikeChance; a hit draws an unused event uniformly
// and, with cfg.RumorChance, plants a rumor 1-2 days earlier (clamped to
// day 1). An event id is scheduled at most once per game.
func New(cat *catalog.Catalog, duration int, cfg Config, r rng.RNG) *Scheduler {
	s := &Scheduler{cfg: cfg, cat: cat, usedFlav: map[string]bool{}}

	unused := make([]catalog.SpikeEvent, len(cat.Spikes))
	copy(unused, cat.Spikes)

	for day := 2; day <= duration; day++ {
		if len(unused) == 0 {
			break
		}
		if r.Float64() >= cfg.SpikeChance {
			continue
		}
		i := r.Intn(len(unused))
		ev := unused[i]
		unused = append(unused[:i], unused[i+1:]...)

		sp := ScheduledSpike{Day: day, EventID: ev.ID}
		if ev.Rumor != "" && r.Float64() < cfg.RumorChance {
			rumorDay := day - 1 - r.Intn(2) // 1 or 2 days before
			if rumorDay < 1 {
				rumorDay = 1
			}
			sp.RumorDay = rumorDay
		}
		s.schedule = append(s.schedule, sp)
		observ.IncCounter("spikes_scheduled_total", map[string]string{"tier": string(ev.Tier)})
	}
	return s
}

// Schedule returns a copy of the full spike schedule, for auditing and tests.
func (s *Scheduler) Schedule() []ScheduledSpike {
	cp := make([]ScheduledSpike, len(s.schedule))
	copy(cp, s.schedule)
	return cp
}

func (s *Scheduler) spikeOn(day int) (ScheduledSpike, bool) {
	for _, sp := range s.schedule {
		if sp.Day == day {
			return sp, true
		}
	}
	return ScheduledSpike{}, false
}

func (s *Scheduler) rumorsOn(day int) []ScheduledSpike {
	var out []ScheduledSpike
	for _, sp := range s.schedule {
		if sp.RumorDay == day {
			out = append(out, sp)
		}
	}
	return out
}
