// Package dsp implements the MPX-to-bits demodulator: windowed-sinc FIR
// design, a fixed-capacity bit ring buffer, and the differential
// phase-shift-keyed (DPSK) demodulator that turns 228 kHz 16-bit PCM
// samples into a 1187.5 bit/s raw bit stream, plus the ASCII bit-stream
// stand-in source used for testing without real audio.
package dsp

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
)

// Fixed demodulator parameters.
const (
	SampleRateHz     = 228000
	SubcarrierHz     = 57000
	inputChunkLen    = 4096
	antialiasFIRLen  = 512
	antialiasCutoff  = 1500.0 / SampleRateHz
	phaseFIRLen      = 64
	phaseFIRCutoff   = 1200.0 * 12 / SampleRateHz
	decimationFactor = 12
	clockDivisor     = 16
	phaseDelayTaps   = 17
	agcBandwidth     = 1e-3
)

// BitSource is the interface both the DPSK demodulator and the ASCII
// bit-stream source implement: pull-based, cooperative, EOF sticky.
type BitSource interface {
	NextBit() bool
	IsEOF() bool
}

// DPSK demodulates raw 16-bit little-endian PCM samples at 228000 Hz
// into a stream of raw bits.
type DPSK struct {
	r *bufio.Reader

	nco        *nco
	antialias  *ComplexFIR
	agc        *agc
	phaseDelay *phaseDelay
	phaseFIR   *ComplexFIR

	numSamples  int
	clockPhase  int
	bits        *BitRing
	isEOF       bool
	readScratch []byte
}

// NewDPSK constructs a DPSK demodulator reading raw PCM from r.
func NewDPSK(r io.Reader) *DPSK {
	d := &DPSK{
		r:           bufio.NewReaderSize(r, inputChunkLen*2),
		nco:         newNCO(SubcarrierHz, SampleRateHz),
		antialias:   NewComplexFIR(DesignLowpassFIR(antialiasCutoff, antialiasFIRLen)),
		agc:         newAGC(agcBandwidth),
		phaseDelay:  newPhaseDelay(phaseDelayTaps),
		phaseFIR:    NewComplexFIR(DesignLowpassFIR(phaseFIRCutoff, phaseFIRLen)),
		bits:        NewBitRing(1024),
		readScratch: make([]byte, inputChunkLen*2),
	}
	return d
}

// IsEOF reports whether the sample source has been exhausted. Sticky:
// once set, further pulls return zero-valued bits.
func (d *DPSK) IsEOF() bool {
	return d.isEOF
}

// NextBit pulls enough input samples to leave at least one bit buffered,
// then pops and returns it.
func (d *DPSK) NextBit() bool {
	for d.bits.FillCount() < 1 && !d.isEOF {
		d.demodulateMore()
	}
	if d.bits.FillCount() > 0 {
		return d.bits.Next()
	}
	return false
}

// demodulateMore reads one chunk of PCM samples and runs the full
// mix-down / anti-alias / AGC / differential-phase / symbol-shaping /
// clock-decimation chain over each one.
func (d *DPSK) demodulateMore() {
	n, err := io.ReadFull(d.r, d.readScratch)
	nSamples := n / 2
	if err != nil || n < len(d.readScratch) {
		d.isEOF = true
	}
	for i := 0; i < nSamples; i++ {
		sample := int16(binary.LittleEndian.Uint16(d.readScratch[i*2 : i*2+2]))
		d.processSample(float64(sample))
	}
}

func (d *DPSK) processSample(sample float64) {
	down := d.nco.mixDown(sample)

	d.antialias.Push(down)
	shapedUnnorm := d.antialias.Execute()

	shaped := d.agc.execute(shapedUnnorm)

	if d.numSamples%decimationFactor == 0 {
		phi1 := math.Atan2(imag(shaped), real(shaped))
		phi0 := d.phaseDelay.push(phi1)
		dphi := phi1 - phi0
		if dphi > math.Pi {
			dphi -= 2 * math.Pi
		}
		if dphi < -math.Pi {
			dphi += 2 * math.Pi
		}
		dphi = math.Abs(dphi) - math.Pi/2

		d.phaseFIR.Push(complex(dphi, 0))
		lpf := d.phaseFIR.Execute()

		bitVal := real(lpf) >= 0

		if d.clockPhase%clockDivisor == 0 {
			d.bits.Append(bitVal)
		}

		d.clockPhase++
	}

	d.nco.step()
	d.numSamples++
}

// AsciiBits reads characters from r, ignoring everything except '0' and
// '1', and returns the corresponding bit. It is an alternate input
// source, used to drive the framer and station decoder without a real
// DPSK signal.
type AsciiBits struct {
	r     *bufio.Reader
	isEOF bool
}

// NewAsciiBits constructs an AsciiBits source reading from r.
func NewAsciiBits(r io.Reader) *AsciiBits {
	return &AsciiBits{r: bufio.NewReader(r)}
}

// NextBit reads and discards bytes until it finds '0', '1' or EOF.
func (a *AsciiBits) NextBit() bool {
	for {
		b, err := a.r.ReadByte()
		if err != nil {
			a.isEOF = true
			return false
		}
		switch b {
		case '0':
			return false
		case '1':
			return true
		}
	}
}

// IsEOF reports whether the input has been exhausted.
func (a *AsciiBits) IsEOF() bool {
	return a.isEOF
}
