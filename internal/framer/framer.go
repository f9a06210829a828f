// Package framer implements block synchronisation and offset-word
// detection: it turns the demodulator's raw bit stream into
// error-corrected RDS groups, using the RDS/RBDS standard's published
// offset words and generator polynomial, in the same table-driven shape
// as a CRC-16 lookup table.
package framer

import "github.com/bartgrantham/goredsea/internal/rds"

const (
	blockBits = 26
	infoBits  = 16
	checkBits = 10
	// generatorPoly is the 10 low-order taps of the RDS/RBDS (26,16)
	// cyclic code's generator polynomial g(x) = x^10+x^8+x^7+x^5+x^4+x^3+1
	// (the x^10 term is implicit in the shift register).
	generatorPoly = 0x1B9
)

// offsetWords holds the 10-bit offset word associated with each block
// position, per the RDS/RBDS standard.
var offsetWords = map[rds.Offset]uint16{
	rds.OffsetA:  0x0FC,
	rds.OffsetB:  0x198,
	rds.OffsetC:  0x168,
	rds.OffsetCp: 0x350,
	rds.OffsetD:  0x1B4,
}

// syndromeOf computes the 10-bit CRC syndrome of a 26-bit block (16 info
// bits followed by 10 check bits) against generatorPoly, using the
// standard bit-serial polynomial-division shift register.
func syndromeOf(block uint32) uint16 {
	reg := uint32(0)
	for i := blockBits - 1; i >= 0; i-- {
		reg = (reg << 1) | ((block >> uint(i)) & 1)
		if reg&(1<<checkBits) != 0 {
			reg ^= (1 << checkBits) | generatorPoly
		}
	}
	return uint16(reg)
}

// singleErrorSyndromes maps a syndrome value to the bit position (0 =
// MSB of the 26-bit block) whose flip produces it, precomputed once so a
// single detected bit error can be corrected in O(1).
var singleErrorSyndromes = buildSingleErrorTable()

func buildSingleErrorTable() map[uint16]int {
	table := make(map[uint16]int, blockBits)
	for pos := 0; pos < blockBits; pos++ {
		table[syndromeOf(uint32(1)<<uint(blockBits-1-pos))] = pos
	}
	return table
}

// checkwordFor computes the 10-bit transmitted checkword for a 16-bit
// info word at the given offset: the CRC remainder of info followed by
// checkBits zero bits, XORed with the offset word. This is used only by
// tests to synthesize valid bit streams; the framer itself never needs
// to encode.
func checkwordFor(info uint16, offset rds.Offset) uint16 {
	remainder := syndromeOf(uint32(info) << checkBits)
	return remainder ^ offsetWords[offset]
}

// correctBlock validates a received 26-bit block against the expected
// offset, correcting a single bit error if present. It returns the
// recovered 16-bit info word, whether a bit was flipped to get there,
// and whether the block was accepted at all.
func correctBlock(block uint32, offset rds.Offset) (info uint16, corrected bool, ok bool) {
	syndrome := syndromeOf(block) ^ offsetWords[offset]
	if syndrome == 0 {
		return uint16(block >> checkBits), false, true
	}
	if pos, ok := singleErrorSyndromes[syndrome]; ok {
		fixed := block ^ (uint32(1) << uint(blockBits-1-pos))
		return uint16(fixed >> checkBits), true, true
	}
	return 0, false, false
}

// Logger receives resync events. Satisfied by *config.Logger.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Warnf(format string, args ...interface{})  {}

// correctionWindow bounds how far back CorrectionRate looks.
const correctionWindow = 64

// Framer consumes a bit stream and produces error-corrected Groups.
type Framer struct {
	src    bitSource
	logger Logger
	synced bool

	correctionRing  [correctionWindow]bool
	correctionPos   int
	correctionCount int
	correctedCount  int
}

type bitSource interface {
	NextBit() bool
	IsEOF() bool
}

// New builds a Framer over the given bit source (a dsp.DPSK or
// dsp.AsciiBits, or anything satisfying the same interface). logger may
// be nil, in which case resync events are discarded.
func New(src bitSource, logger Logger) *Framer {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Framer{src: src, logger: logger}
}

// CorrectionRate returns the fraction of the most recent validated
// blocks (up to a 64-block window) that needed a single-bit correction,
// for a signal-quality indicator. It is 0 before any block has been
// validated.
func (f *Framer) CorrectionRate() float64 {
	if f.correctionCount == 0 {
		return 0
	}
	return float64(f.correctedCount) / float64(f.correctionCount)
}

// shiftIn accumulates one bit into a rolling 26-bit window.
func (f *Framer) shiftIn(reg *uint32) bool {
	if f.src.IsEOF() {
		return false
	}
	bit := uint32(0)
	if f.src.NextBit() {
		bit = 1
	}
	*reg = ((*reg << 1) | bit) & ((1 << blockBits) - 1)
	return true
}

func (f *Framer) readBlock(reg *uint32) bool {
	for i := 0; i < blockBits; i++ {
		if !f.shiftIn(reg) {
			return false
		}
	}
	return true
}

// resync slides one bit at a time until a valid (or single-bit
// correctable) A block is found, filling reg with that block's 26 bits.
func (f *Framer) resync(reg *uint32) (uint16, bool) {
	var window uint32
	if !f.readBlock(&window) {
		return 0, false
	}
	shifted := 0
	for {
		if info, corrected, ok := correctBlock(window, rds.OffsetA); ok {
			f.recordBlock(corrected)
			if shifted > 0 {
				f.logger.Debugf("framer: resynced on block A after shifting %d bits", shifted)
			}
			*reg = window
			return info, true
		}
		if !f.shiftIn(&window) {
			return 0, false
		}
		shifted++
	}
}

// recordBlock slides one successfully validated block into the
// correction-rate window CorrectionRate reports from.
func (f *Framer) recordBlock(corrected bool) {
	if f.correctionCount == correctionWindow {
		if f.correctionRing[f.correctionPos] {
			f.correctedCount--
		}
	} else {
		f.correctionCount++
	}
	f.correctionRing[f.correctionPos] = corrected
	if corrected {
		f.correctedCount++
	}
	f.correctionPos = (f.correctionPos + 1) % correctionWindow
}

// loseSync logs a warning the first time sync is lost, so a noisy
// stream doesn't emit a warning per group once already unsynced.
func (f *Framer) loseSync(reason string) {
	if f.synced {
		f.logger.Warnf("framer: lost sync: %s", reason)
	}
	f.synced = false
}

// NextGroup returns the next successfully framed Group. The second
// return value is false only on end of input; a corrupt block1 never
// produces a Group — the framer silently resyncs and tries again.
func (f *Framer) NextGroup() (rds.Group, bool) {
	for {
		var reg uint32
		pi, ok := f.resync(&reg)
		if !ok {
			return rds.Group{}, false
		}
		group := rds.Group{Block1: pi, NumBlocks: 1}

		var blockB uint32
		if !f.readBlock(&blockB) {
			return rds.Group{}, false
		}
		infoB, correctedB, okB := correctBlock(blockB, rds.OffsetB)
		if !okB {
			// Could not confirm block B: too few blocks to deliver a
			// group. Resync from scratch.
			f.loseSync("block B failed correction")
			continue
		}
		f.recordBlock(correctedB)
		group.Block2 = infoB
		group.NumBlocks = 2
		group.Type = rds.NewGroupType(rds.Bits(infoB, 11, 5))

		var blockC uint32
		if !f.readBlock(&blockC) {
			return group, true
		}
		wantCp := group.Type.AB == rds.TypeB
		var infoC uint16
		var correctedC, okC bool
		if wantCp {
			infoC, correctedC, okC = correctBlock(blockC, rds.OffsetCp)
		} else {
			infoC, correctedC, okC = correctBlock(blockC, rds.OffsetC)
		}
		if !okC {
			f.loseSync("block C failed correction")
			return group, true
		}
		f.recordBlock(correctedC)
		group.Block3 = infoC
		group.NumBlocks = 3

		var blockD uint32
		if !f.readBlock(&blockD) {
			return group, true
		}
		infoD, correctedD, okD := correctBlock(blockD, rds.OffsetD)
		if !okD {
			f.loseSync("block D failed correction")
			return group, true
		}
		f.recordBlock(correctedD)
		group.Block4 = infoD
		group.NumBlocks = 4

		f.synced = true
		return group, true
	}
}
