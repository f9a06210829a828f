package rdsstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsEmptyWithBlankSnapshot(t *testing.T) {
	s := New(8)
	assert.Equal(t, 0, s.LengthReceived())
	assert.Equal(t, 8, s.LengthExpected())
	assert.Equal(t, "        ", s.LastComplete())
}

func TestSetAtSequentialRunCompletes(t *testing.T) {
	s := New(4)
	s.SetAt(0, 'A')
	s.SetAt(1, 'B')
	require.False(t, s.IsComplete())
	assert.Equal(t, 2, s.LengthReceived())

	s.SetAt(2, 'C')
	s.SetAt(3, 'D')
	require.True(t, s.IsComplete())
	assert.Equal(t, "ABCD", s.LastComplete())
}

// TestSetAtNonContiguousWriteClearsCurrentPosition exercises the exact
// ordering SetAt documents: a write that doesn't continue the previous
// run clears every sequential flag, including the position just
// written, before marking that position sequential again. So a single
// non-contiguous write never leaves LengthReceived greater than 1, even
// though the byte itself is stored immediately.
func TestSetAtNonContiguousWriteClearsCurrentPosition(t *testing.T) {
	s := New(4)
	s.SetAt(0, 'A')
	s.SetAt(1, 'B')
	require.Equal(t, 2, s.LengthReceived())

	// Jump to position 3, skipping 2: pos (3) != prevPos+1 (2), so every
	// flag clears, then only position 3 is marked sequential. Since
	// position 3 isn't position 0, LengthReceived is 0, not 1.
	s.SetAt(3, 'D')
	assert.Equal(t, 0, s.LengthReceived())
	assert.False(t, s.IsComplete())

	// Restarting at position 0 is itself non-contiguous (prevPos is 3), so
	// it clears position 3's flag again: the prefix stops at 3 until
	// position 3 is written once more in sequence.
	s.SetAt(0, 'A')
	assert.Equal(t, 1, s.LengthReceived())
	s.SetAt(1, 'B')
	s.SetAt(2, 'C')
	assert.Equal(t, 3, s.LengthReceived())
	s.SetAt(3, 'D')
	require.Equal(t, 4, s.LengthReceived())
	assert.Equal(t, "ABCD", s.LastComplete())
}

func TestLastCompleteSnapshotIsIndependentOfLaterWrites(t *testing.T) {
	s := New(4)
	s.SetAt(0, 'A')
	s.SetAt(1, 'B')
	s.SetAt(2, 'C')
	s.SetAt(3, 'D')
	require.Equal(t, "ABCD", s.LastComplete())

	// A non-contiguous write breaks the run and drops completeness, but
	// the last snapshot doesn't change until the next completion.
	s.SetAt(3, 'X')
	assert.False(t, s.IsComplete())
	assert.Equal(t, "ABCD", s.LastComplete())
}

func TestLengthExpectedStopsAtCarriageReturn(t *testing.T) {
	s := New(8)
	s.SetAt(0, 'H')
	s.SetAt(1, 'I')
	s.SetAt(2, CR)
	assert.Equal(t, 2, s.LengthExpected())
	assert.True(t, s.IsComplete())
	assert.Equal(t, "HI", s.LastComplete())
}

func TestClearBreaksRunAndRerendersSnapshot(t *testing.T) {
	s := New(4)
	s.SetAt(0, 'A')
	s.SetAt(1, 'B')
	s.SetAt(2, 'C')
	s.SetAt(3, 'D')
	require.Equal(t, "ABCD", s.LastComplete())

	s.Clear()
	assert.Equal(t, 0, s.LengthReceived())
	assert.Equal(t, "    ", s.LastComplete())
}

func TestSetAtOutOfRangeIsIgnored(t *testing.T) {
	s := New(4)
	s.SetAt(-1, 'Z')
	s.SetAt(4, 'Z')
	assert.Equal(t, 0, s.LengthReceived())
}
