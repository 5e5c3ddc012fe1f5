package observ

import (
	"sort"
	"strings"
	"sync"
)

type registry struct {
	mu       sync.Mutex
	counters map[string]map[string]int64   // name -> labelsKey -> count
	gauges   map[string]map[string]float64 // name -> labelsKey -> value
	hist     map[string]map[string][]float64
}

var reg = &registry{
	counters: map[string]map[string]int64{},
	gauges:   map[string]map[string]float64{},
	hist:     map[string]map[string][]float64{},
}

// canonicalize label map so key order is stable
func canonLabels(lbl map[string]string) string {
	if len(lbl) == 0 {
		return ""
	}
	keys := make([]string, 0, len(lbl))
	for k := range lbl {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(lbl[k])
	}
	return b.String()
}

func IncCounter(name string, labels map[string]string) {
	IncCounterBy(name, labels, 1)
}

func IncCounterBy(name string, labels map[string]string, value int64) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	m, ok := reg.counters[name]
	if !ok {
		m = map[string]int64{}
		reg.counters[name] = m
	}
	m[canonLabels(labels)] += value
}

func SetGauge(name string, value float64, labels map[string]string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	m, ok := reg.gauges[name]
	if !ok {
		m = map[string]float64{}
		reg.gauges[name] = m
	}
	m[canonLabels(labels)] = value
}

func Observe(name string, value float64, labels map[string]string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	m, ok := reg.hist[name]
	if !ok {
		m = map[string][]float64{}
		reg.hist[name] = m
	}
	k := canonLabels(labels)
	m[k] = append(m[k], value)
}

// Snapshot is a point-in-time copy of all registered metrics, used by tests
// and the telemetry accessors instead of an HTTP scrape surface.
type Snapshot struct {
	Counters map[string]map[string]int64
	Gauges   map[string]map[string]float64
	Hist     map[string]map[string][]float64
}

func Snap() Snapshot {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	s := Snapshot{
		Counters: map[string]map[string]int64{},
		Gauges:   map[string]map[string]float64{},
		Hist:     map[string]map[string][]float64{},
	}
	for name, m := range reg.counters {
		cp := map[string]int64{}
		for k, v := range m {
			cp[k] = v
		}
		s.Counters[name] = cp
	}
	for name, m := range reg.gauges {
		cp := map[string]float64{}
		for k, v := range m {
			cp[k] = v
		}
		s.Gauges[name] = cp
	}
	for name, m := range reg.hist {
		cp := map[string][]float64{}
		for k, v := range m {
			vs := make([]float64, len(v))
			copy(vs, v)
			cp[k] = vs
		}
		s.Hist[name] = cp
	}
	return s
}

// CounterValue sums a counter across all label sets.
func CounterValue(name string) int64 {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	var total int64
	for _, v := range reg.counters[name] {
		total += v
	}
	return total
}

// Reset clears the registry. Tests only.
func Reset() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.counters = map[string]map[string]int64{}
	reg.gauges = map[string]map[string]float64{}
	reg.hist = map[string]map[string][]float64{}
}
