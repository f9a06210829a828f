package framer

import (
	"fmt"
	"testing"

	"github.com/bartgrantham/goredsea/internal/rds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceBits is a minimal bitSource backed by a fixed slice, used to feed
// synthetic bit streams into the framer under test.
type sliceBits struct {
	bits []bool
	pos  int
}

func (s *sliceBits) NextBit() bool {
	if s.pos >= len(s.bits) {
		return false
	}
	b := s.bits[s.pos]
	s.pos++
	return b
}

func (s *sliceBits) IsEOF() bool {
	return s.pos >= len(s.bits)
}

func encodeBlock(info uint16, offset rds.Offset) []bool {
	check := checkwordFor(info, offset)
	bits := make([]bool, 0, blockBits)
	for i := infoBits - 1; i >= 0; i-- {
		bits = append(bits, (info>>uint(i))&1 == 1)
	}
	for i := checkBits - 1; i >= 0; i-- {
		bits = append(bits, (check>>uint(i))&1 == 1)
	}
	return bits
}

func encodeGroup(b1, b2, b3, b4 uint16, ab rds.AB) []bool {
	c3 := rds.OffsetC
	if ab == rds.TypeB {
		c3 = rds.OffsetCp
	}
	var out []bool
	out = append(out, encodeBlock(b1, rds.OffsetA)...)
	out = append(out, encodeBlock(b2, rds.OffsetB)...)
	out = append(out, encodeBlock(b3, c3)...)
	out = append(out, encodeBlock(b4, rds.OffsetD)...)
	return out
}

func groupTypeCode(num int, ab rds.AB) uint16 {
	code := uint16(num<<1) | uint16(ab)
	return code << 11
}

func TestFramerRecoversCleanGroup(t *testing.T) {
	block2 := groupTypeCode(0, rds.TypeA) | 0x0010 // TP=0, PTY bits, TA bit set
	bits := encodeGroup(0x1234, block2, 0x5678, 0x9ABC, rds.TypeA)

	f := New(&sliceBits{bits: bits}, nil)
	group, ok := f.NextGroup()
	require.True(t, ok)
	assert.Equal(t, 4, group.NumBlocks)
	assert.Equal(t, uint16(0x1234), group.Block1)
	assert.Equal(t, block2, group.Block2)
	assert.Equal(t, uint16(0x5678), group.Block3)
	assert.Equal(t, uint16(0x9ABC), group.Block4)
	assert.Equal(t, rds.GroupType{Num: 0, AB: rds.TypeA}, group.Type)
}

func TestFramerCorrectsSingleBitError(t *testing.T) {
	block2 := groupTypeCode(2, rds.TypeA)
	bits := encodeGroup(0x1234, block2, 0x0001, 0x0002, rds.TypeA)

	// Flip one bit inside block1's info field.
	bits[3] = !bits[3]

	f := New(&sliceBits{bits: bits}, nil)
	group, ok := f.NextGroup()
	require.True(t, ok)
	assert.Equal(t, uint16(0x1234), group.Block1)
	assert.Equal(t, 4, group.NumBlocks)
}

func TestFramerFindsSyncAfterLeadingGarbage(t *testing.T) {
	block2 := groupTypeCode(2, rds.TypeA)
	group := encodeGroup(0x1234, block2, 0x0001, 0x0002, rds.TypeA)
	garbage := []bool{true, false, true, true, false, false, true, false, true, true}
	bits := append(garbage, group...)

	f := New(&sliceBits{bits: bits}, nil)
	got, ok := f.NextGroup()
	require.True(t, ok)
	assert.Equal(t, uint16(0x1234), got.Block1)
}

func TestFramerDeliversPartialGroupOnTruncation(t *testing.T) {
	block2 := groupTypeCode(0, rds.TypeA)
	full := encodeGroup(0x1234, block2, 0x0001, 0x0002, rds.TypeA)
	truncated := full[:blockBits*2] // only blocks A and B

	f := New(&sliceBits{bits: truncated}, nil)
	group, ok := f.NextGroup()
	require.True(t, ok)
	assert.Equal(t, 2, group.NumBlocks)
	assert.Equal(t, uint16(0), group.Block3)
	assert.Equal(t, uint16(0), group.Block4)
}

func TestFramerEOFWithNoValidBlockReturnsFalse(t *testing.T) {
	f := New(&sliceBits{bits: make([]bool, 10)}, nil)
	_, ok := f.NextGroup()
	assert.False(t, ok)
}

func TestSyndromeOfZeroBlockIsZero(t *testing.T) {
	assert.Equal(t, uint16(0), syndromeOf(0))
}

// fakeLogger records every Debugf/Warnf call for assertion.
type fakeLogger struct {
	debugs, warns []string
}

func (l *fakeLogger) Debugf(format string, args ...interface{}) {
	l.debugs = append(l.debugs, fmt.Sprintf(format, args...))
}

func (l *fakeLogger) Warnf(format string, args ...interface{}) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func TestCorrectionRateTracksRecentCorrections(t *testing.T) {
	block2 := groupTypeCode(0, rds.TypeA)
	clean := encodeGroup(0x1234, block2, 0x0001, 0x0002, rds.TypeA)
	bits := append([]bool{}, clean...)
	bits = append(bits, clean...)
	// Flip one bit of block1 in the third group to force a correction.
	third := append([]bool{}, clean...)
	third[3] = !third[3]
	bits = append(bits, third...)

	f := New(&sliceBits{bits: bits}, nil)
	for i := 0; i < 3; i++ {
		_, ok := f.NextGroup()
		require.True(t, ok)
	}
	rate := f.CorrectionRate()
	assert.Greater(t, rate, 0.0)
	assert.Less(t, rate, 1.0)
}

func TestCorrectionRateIsZeroBeforeAnyGroup(t *testing.T) {
	f := New(&sliceBits{bits: make([]bool, 10)}, nil)
	assert.Equal(t, 0.0, f.CorrectionRate())
}

func TestFramerLogsResyncAndLostSync(t *testing.T) {
	block2 := groupTypeCode(0, rds.TypeA)
	good := encodeGroup(0x1234, block2, 0x0001, 0x0002, rds.TypeA)
	garbage := []bool{true, false, true, true, false, false, true, false, true, true}

	// Corrupt block D badly enough that no single-bit fix applies.
	bad := append([]bool{}, good...)
	for i := blockBits * 3; i < blockBits*4; i += 2 {
		bad[i] = !bad[i]
	}

	bits := append([]bool{}, good...)
	bits = append(bits, bad...)
	bits = append(bits, garbage...)
	bits = append(bits, good...)

	logger := &fakeLogger{}
	f := New(&sliceBits{bits: bits}, logger)

	_, ok := f.NextGroup()
	require.True(t, ok)
	_, ok = f.NextGroup()
	require.True(t, ok)
	_, ok = f.NextGroup()
	require.True(t, ok)

	assert.NotEmpty(t, logger.warns, "expected a lost-sync warning after the corrupted block D group")
	assert.NotEmpty(t, logger.debugs, "expected a resync debug message after scanning past garbage")
}
