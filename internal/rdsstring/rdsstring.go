// Package rdsstring implements the incrementally-assembled, fixed-capacity
// character array used for the programme-service name and radiotext
// fields, with an independent snapshot of the last fully-received string.
package rdsstring

import "github.com/bartgrantham/goredsea/internal/tables"

// CR is the radiotext carriage-return terminator.
const CR = 0x0D

// String is a fixed-capacity, incrementally-written character array. The
// zero value is not usable; construct with New.
type String struct {
	chars        []byte
	isSequential []bool
	prevPos      int
	lastComplete string
}

// New returns a String with the given capacity (8 for PS, 64 for RT).
func New(capacity int) *String {
	if capacity <= 0 {
		panic("rdsstring: capacity must be positive")
	}
	s := &String{
		chars:        make([]byte, capacity),
		isSequential: make([]bool, capacity),
		prevPos:      -1,
	}
	s.lastComplete = s.render()
	return s
}

// SetAt writes a byte at position pos. Out-of-range positions are ignored.
//
// Writing a position that does not continue the previous run (pos !=
// prevPos+1) first clears every sequential flag, INCLUDING the position
// about to be written, before marking pos as sequential again — this
// exact ordering must be preserved; it governs which prefix counts as
// "received" after a non-contiguous write.
func (s *String) SetAt(pos int, ch byte) {
	if pos < 0 || pos >= len(s.chars) {
		return
	}

	s.chars[pos] = ch

	if pos != s.prevPos+1 {
		for i := range s.isSequential {
			s.isSequential[i] = false
		}
	}
	s.isSequential[pos] = true

	if s.IsComplete() {
		s.lastComplete = s.render()
	}

	s.prevPos = pos
}

// LengthReceived is the length of the longest contiguous sequential
// prefix starting at position 0.
func (s *String) LengthReceived() int {
	result := 0
	for i, ok := range s.isSequential {
		if !ok {
			break
		}
		result = i + 1
	}
	return result
}

// LengthExpected is the capacity, or the index of the first CR byte if
// one has been written.
func (s *String) LengthExpected() int {
	result := len(s.chars)
	for i, c := range s.chars {
		if c == CR {
			result = i
			break
		}
	}
	return result
}

// IsComplete reports whether the received prefix covers the expected
// length.
func (s *String) IsComplete() bool {
	return s.LengthReceived() >= s.LengthExpected()
}

// render renders the string up to LengthExpected, substituting a space
// for any position not yet part of the sequential run.
func (s *String) render() string {
	n := s.LengthExpected()
	buf := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		if s.isSequential[i] {
			buf = append(buf, []byte(tables.LCDChar(s.chars[i]))...)
		} else {
			buf = append(buf, ' ')
		}
	}
	return string(buf)
}

// LastComplete returns the most recent snapshot captured when IsComplete
// transitioned false->true. It is an independent value, unaffected by
// subsequent writes until the next completion.
func (s *String) LastComplete() string {
	return s.lastComplete
}

// Clear resets every sequential flag (the run is considered broken) and
// recomputes the snapshot from the now-entirely-non-sequential state.
func (s *String) Clear() {
	for i := range s.isSequential {
		s.isSequential[i] = false
	}
	s.lastComplete = s.render()
}
