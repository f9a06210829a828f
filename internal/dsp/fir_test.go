package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDesignLowpassFIRUnityDCGain(t *testing.T) {
	taps := DesignLowpassFIR(0.1, 65)
	sum := 0.0
	for _, tap := range taps {
		sum += tap
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestDesignLowpassFIRPanicsOnBadCutoff(t *testing.T) {
	assert.Panics(t, func() { DesignLowpassFIR(0.6, 10) })
	assert.Panics(t, func() { DesignLowpassFIR(-0.1, 10) })
}

func TestDesignLowpassFIRPanicsOnBadLength(t *testing.T) {
	assert.Panics(t, func() { DesignLowpassFIR(0.1, 0) })
}

func TestComplexFIRDCResponse(t *testing.T) {
	taps := DesignLowpassFIR(0.1, 33)
	f := NewComplexFIR(taps)
	var out complex128
	for i := 0; i < 100; i++ {
		f.Push(complex(1, 0))
		out = f.Execute()
	}
	assert.InDelta(t, 1.0, real(out), 1e-3)
	assert.InDelta(t, 0.0, imag(out), 1e-6)
}

func TestSincZero(t *testing.T) {
	assert.Equal(t, 1.0, sinc(0))
	assert.InDelta(t, math.Sin(1)/1, sinc(1), 1e-12)
}
