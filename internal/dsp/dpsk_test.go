package dsp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsciiBitsIgnoresNonBitBytes(t *testing.T) {
	src := NewAsciiBits(strings.NewReader("x1y0 0\n1"))
	want := []bool{true, false, false, true}
	for _, w := range want {
		assert.False(t, src.IsEOF())
		assert.Equal(t, w, src.NextBit())
	}
	assert.False(t, src.NextBit()) // hits EOF, returns zero-valued bit
	assert.True(t, src.IsEOF())
}

func TestAsciiBitsEmptyIsImmediatelyEOF(t *testing.T) {
	src := NewAsciiBits(strings.NewReader(""))
	assert.False(t, src.NextBit())
	assert.True(t, src.IsEOF())
}

func TestDPSKShortReadSetsStickyEOF(t *testing.T) {
	// Fewer than one input chunk's worth of samples.
	d := NewDPSK(bytes.NewReader(make([]byte, 100)))
	for !d.IsEOF() {
		d.NextBit()
	}
	assert.True(t, d.IsEOF())
	// Further pulls keep returning a zero-valued bit rather than blocking.
	assert.False(t, d.NextBit())
}
