package dsp

import "math"

// DesignLowpassFIR returns a real-valued windowed-sinc low-pass FIR of
// length L with normalized cutoff fc in [0, 0.5] cycles/sample. Each tap
// is sinc(2*pi*fc*(i-M/2)) * blackman(i, M), M = L-1, and the whole
// filter is scaled so the taps sum to 1 (unity DC gain). Violating the
// preconditions is a programming error and panics.
func DesignLowpassFIR(fc float64, length int) []float64 {
	if fc < 0 || fc > 0.5 {
		panic("dsp: cutoff must be in [0, 0.5]")
	}
	if length <= 0 {
		panic("dsp: FIR length must be positive")
	}

	m := float64(length - 1)
	taps := make([]float64, length)
	sum := 0.0
	for i := 0; i < length; i++ {
		taps[i] = sinc(2*math.Pi*fc*(float64(i)-m/2)) * blackman(i, length-1)
		sum += taps[i]
	}
	for i := range taps {
		taps[i] /= sum
	}
	return taps
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}

func blackman(i, m int) float64 {
	return 0.42 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(m)) +
		0.08*math.Cos(4*math.Pi*float64(i)/float64(m))
}

// ComplexFIR is a stateful complex-valued FIR filter driven one sample
// at a time via Push/Execute.
type ComplexFIR struct {
	taps  []float64
	ring  []complex128
	pos   int
	count int
}

// NewComplexFIR builds a ComplexFIR from real-valued taps.
func NewComplexFIR(taps []float64) *ComplexFIR {
	if len(taps) == 0 {
		panic("dsp: FIR must have at least one tap")
	}
	return &ComplexFIR{
		taps: taps,
		ring: make([]complex128, len(taps)),
	}
}

// Push feeds one sample into the filter's history.
func (f *ComplexFIR) Push(sample complex128) {
	f.ring[f.pos] = sample
	f.pos = (f.pos + 1) % len(f.ring)
	if f.count < len(f.ring) {
		f.count++
	}
}

// Execute returns the current filtered output given all samples pushed
// so far (positions never pushed are treated as zero, matching a
// freshly-constructed hardware FIR).
func (f *ComplexFIR) Execute() complex128 {
	var acc complex128
	n := len(f.taps)
	for i, tap := range f.taps {
		// ring[pos-1] is the most recent sample, so tap[0] convolves with
		// the newest input, matching the push/execute ordering above.
		idx := (f.pos - 1 - i%n + n) % n
		acc += f.ring[idx] * complex(tap, 0)
	}
	return acc
}
