// Package config assembles the CLI-level knobs (input mode, TUI, log
// verbosity) into the BitSource the core pipeline pulls from, keeping
// flag state in a small struct that command handlers pass around
// explicitly.
package config

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/bartgrantham/goredsea/internal/dsp"
)

// InputMode selects how raw bits are recovered from the input stream.
type InputMode string

const (
	// InputPCM reads signed 16-bit little-endian PCM at 228 000 Hz and
	// runs it through the DPSK demodulator.
	InputPCM InputMode = "pcm"
	// InputASCII reads a '0'/'1' bit stream directly, skipping the
	// demodulator entirely.
	InputASCII InputMode = "ascii"
	// InputWAV reads a WAV container and demodulates its PCM data the
	// same way InputPCM does. Not selectable directly via --input; it
	// is inferred from a ".wav" file extension on --file.
	InputWAV InputMode = "wav"
)

// ParseInputMode validates a --input flag value. Only "pcm" and "ascii"
// are accepted; InputWAV is detected from the input file's extension,
// not chosen explicitly.
func ParseInputMode(s string) (InputMode, error) {
	switch InputMode(s) {
	case InputPCM, InputASCII:
		return InputMode(s), nil
	default:
		return "", fmt.Errorf("config: unknown input mode %q (want pcm or ascii)", s)
	}
}

// Level is a log verbosity threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel validates a --log-level flag value.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q (want debug, info, warn or error)", s)
	}
}

// Logger is a plain *log.Logger with a minimum level below which
// Debugf/Warnf/Errorf calls are dropped. Calls above the threshold are
// written through unchanged, so the prefix and flags of the embedded
// *log.Logger still apply.
type Logger struct {
	*log.Logger
	min Level
}

func newLogger(min Level) *Logger {
	return &Logger{Logger: log.New(os.Stderr, "goredsea: ", log.LstdFlags), min: min}
}

func (l *Logger) logf(lvl Level, format string, args ...interface{}) {
	if lvl < l.min {
		return
	}
	l.Logger.Printf(format, args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(LevelError, format, args...) }

// Config holds everything the command needs to build and run one
// pipeline instance.
type Config struct {
	Mode InputMode
	Path string // "" or "-" means stdin

	TUI            bool
	BigFontPath    string
	MediumFontPath string

	LogLevel string

	Logger *Logger
}

// New returns a Config with a plain stderr logger at the "info" level
// and the PCM input mode, matching the core's default external
// interface.
func New() *Config {
	return &Config{
		Mode:     InputPCM,
		LogLevel: "info",
		Logger:   newLogger(LevelInfo),
	}
}

// ApplyLogLevel parses LogLevel and, if valid, lowers or raises the
// Logger's threshold to match. Call it once flags are parsed.
func (c *Config) ApplyLogLevel() error {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	c.Logger.min = lvl
	return nil
}

// effectiveMode returns InputWAV whenever Path ends in ".wav",
// overriding Mode, per the CLI's "sniff the container by extension"
// contract; otherwise it returns Mode unchanged.
func (c *Config) effectiveMode() InputMode {
	if strings.HasSuffix(strings.ToLower(c.Path), ".wav") {
		return InputWAV
	}
	return c.Mode
}

// OpenBitSource opens the configured input and wraps it in the
// appropriate dsp.BitSource. The returned closer must be called by the
// caller once the pipeline is done pulling.
func (c *Config) OpenBitSource() (dsp.BitSource, io.Closer, error) {
	r, closer, err := c.openReader()
	if err != nil {
		return nil, nil, err
	}

	switch c.effectiveMode() {
	case InputASCII:
		return dsp.NewAsciiBits(r), closer, nil
	case InputPCM:
		return dsp.NewDPSK(r), closer, nil
	case InputWAV:
		pcm, err := wavToPCMReader(r)
		if err != nil {
			closer.Close()
			return nil, nil, err
		}
		return dsp.NewDPSK(pcm), closer, nil
	default:
		closer.Close()
		return nil, nil, fmt.Errorf("config: unknown input mode %q", c.Mode)
	}
}

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

func (c *Config) openReader() (io.ReadSeeker, io.Closer, error) {
	if c.Path == "" || c.Path == "-" {
		return os.Stdin, nopCloser{}, nil
	}
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("config: open input %s: %w", c.Path, err)
	}
	return f, f, nil
}

// wavToPCMReader decodes a WAV container fully into memory and returns
// an io.Reader emitting its samples as signed 16-bit little-endian
// values, the wire format the DPSK demodulator expects.
func wavToPCMReader(r io.ReadSeeker) (io.Reader, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("config: not a valid WAV file")
	}
	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("config: seek to PCM data: %w", err)
	}
	if decoder.BitDepth != 16 {
		return nil, fmt.Errorf("config: WAV must be 16-bit PCM, got %d-bit", decoder.BitDepth)
	}

	var out []byte
	buf := &audio.IntBuffer{Format: decoder.Format(), Data: make([]int, 4096)}
	for {
		n, err := decoder.PCMBuffer(buf)
		if n > 0 {
			for i := 0; i < n; i += int(decoder.NumChans) {
				var b [2]byte
				binary.LittleEndian.PutUint16(b[:], uint16(int16(buf.Data[i])))
				out = append(out, b[:]...)
			}
		}
		if err == io.EOF || n == 0 {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("config: read WAV PCM: %w", err)
		}
	}
	return &byteReader{data: out}, nil
}

type byteReader struct {
	data []byte
	pos  int
}

func (b *byteReader) Read(p []byte) (int, error) {
	if b.pos >= len(b.data) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += n
	return n, nil
}
