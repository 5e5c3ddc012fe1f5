package rng

// Scripted is a test double that replays queued values. Float64 and
// NormFloat64 pop from their queues and repeat the last value once
// exhausted (0 if never filled); Intn returns queued ints modulo n.
type Scripted struct {
	Floats []float64
	Norms  []float64
	Ints   []int

	fi, ni, ii int
}

func (s *Scripted) Float64() float64 {
	return pop(s.Floats, &s.fi)
}

func (s *Scripted) NormFloat64() float64 {
	return pop(s.Norms, &s.ni)
}

func (s *Scripted) Intn(n int) int {
	if len(s.Ints) == 0 {
		return 0
	}
	i := s.ii
	if i >= len(s.Ints) {
		i = len(s.Ints) - 1
	}
	s.ii++
	return s.Ints[i] % n
}

func (s *Scripted) Shuffle(n int, swap func(i, j int)) {}

func pop(vals []float64, idx *int) float64 {
	if len(vals) == 0 {
		return 0
	}
	i := *idx
	if i >= len(vals) {
		i = len(vals) - 1
	}
	*idx++
	return vals[i]
}
