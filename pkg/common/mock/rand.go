package mock

// Rand is a scripted random source for tests.
// Queued values are consumed first; once drained Float64 returns Float and
// Intn returns n-1 when Max is set, otherwise Int clamped into [0, n).
type Rand struct {
	Floats []float64
	Ints   []int
	Float  float64
	Int    int
	Max    bool

	FloatCalls int
	IntCalls   int
}

func (r *Rand) Float64() float64 {
	r.FloatCalls++
	if len(r.Floats) > 0 {
		v := r.Floats[0]
		r.Floats = r.Floats[1:]
		return v
	}
	return r.Float
}

func (r *Rand) Intn(n int) int {
	r.IntCalls++
	if len(r.Ints) > 0 {
		v := r.Ints[0]
		r.Ints = r.Ints[1:]
		return clamp(v, n)
	}
	if r.Max {
		return n - 1
	}
	return clamp(r.Int, n)
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
