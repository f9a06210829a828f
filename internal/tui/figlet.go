package tui

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// FIGFont is a parsed FIGlet font (see figfont.txt), used to render the
// PI and PS fields as large text in the terminal view.
type FIGFont struct {
	Name      string
	Height    int
	hardblank byte
	baseline  int
	maxlen    int
	oldlayout int
	comments  int
	direction int
	layout    int
	codetags  int
	chars     map[rune][]string
}

// ErrInvalidFont is returned when a file's magic header does not match
// the FIGlet format.
var ErrInvalidFont = errors.New("tui: invalid FIGlet font")

var charOrder = ` !"#$%&'()*+,-./` + `0123456789:;<=>?` + `@ABCDEFGHIJKLMNO` +
	`PQRSTUVWXYZ[\]^_` + "`abcdefghijklmno" + "pqrstuvwxyz{|}~" +
	"\xc4\xd6\xdc\xe4\xf6\xfc\xdf"

func (f *FIGFont) String() string { return f.Name }

// NewFIGFont parses a FIGlet .flf font definition.
func NewFIGFont(r io.Reader) (*FIGFont, error) {
	var lines, header []string
	var params []int

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) == 0 {
		return nil, ErrInvalidFont
	}

	header = strings.Fields(lines[0])
	if len(header[0]) < 6 || header[0][0:5] != "flf2a" {
		return nil, ErrInvalidFont
	}

	for _, s := range header[1:] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		params = append(params, n)
	}

	f := &FIGFont{hardblank: header[0][5]}
	if len(params) > 0 {
		f.Height = params[0]
	}
	if len(params) > 1 {
		f.baseline = params[1]
	}
	if len(params) > 2 {
		f.maxlen = params[2]
	}
	if len(params) > 3 {
		f.oldlayout = params[3]
	}
	if len(params) > 4 {
		f.comments = params[4]
	}
	if len(params) > 5 {
		f.direction = params[5]
	}
	if len(params) > 6 {
		f.layout = params[6]
	}
	if len(params) > 7 {
		f.codetags = params[7]
	}

	f.chars = map[rune][]string{}
	for i, c := range charOrder {
		idx := 1 + f.comments + i*f.Height
		if idx+f.Height > len(lines) {
			break
		}
		endmark := lines[idx][len(lines[idx])-1:]
		for j := 0; j < f.Height; j++ {
			f.chars[c] = append(f.chars[c], strings.TrimRight(lines[idx+j], endmark))
		}
	}
	return f, nil
}

// Render lays out s as a slice of f.Height lines. It does not implement
// FIGlet's smushing rules; characters are simply concatenated.
func (f *FIGFont) Render(s string) []string {
	out := make([]string, f.Height)

	for _, c := range s {
		fig, ok := f.chars[c]
		if !ok {
			continue
		}
		for i := 0; i < f.Height; i++ {
			out[i] += strings.ReplaceAll(fig[i], string([]byte{f.hardblank}), " ")
		}
	}
	return out
}
