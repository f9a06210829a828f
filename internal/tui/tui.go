// Package tui renders decoded RDS records to a full-screen terminal
// view: a big FIGlet font shows the PI code, a medium one shows PS,
// radiotext is drawn as a plain text line, and a color-interpolated bar
// shows signal quality.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/bartgrantham/goredsea/internal/output"
)

// Viewer owns the terminal screen and the two FIGlet fonts used to lay
// out a record.
type Viewer struct {
	scr    tcell.Screen
	big    *FIGFont
	medium *FIGFont

	freqStyle tcell.Style
	textStyle tcell.Style

	events chan tcell.Event
	quit   chan struct{}
}

// New opens the terminal screen and loads the two FIGlet fonts from the
// given paths (standard .flf files; not bundled with this module).
func New(bigFontPath, mediumFontPath string) (*Viewer, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tui: open screen: %w", err)
	}
	if err := scr.Init(); err != nil {
		return nil, fmt.Errorf("tui: init screen: %w", err)
	}

	big, err := loadFont(bigFontPath)
	if err != nil {
		scr.Fini()
		return nil, err
	}
	medium, err := loadFont(mediumFontPath)
	if err != nil {
		scr.Fini()
		return nil, err
	}

	black := tcell.Color(int32(232))
	white := tcell.Color(int32(255))
	freqStyle := tcell.StyleDefault.Foreground(white).Background(black).Bold(true)

	v := &Viewer{
		scr:       scr,
		big:       big,
		medium:    medium,
		freqStyle: freqStyle,
		textStyle: tcell.StyleDefault,
		events:    make(chan tcell.Event, 1),
		quit:      make(chan struct{}),
	}

	scr.Clear()
	scr.EnableMouse()
	go func() {
		for {
			select {
			case <-v.quit:
				return
			default:
				v.events <- scr.PollEvent()
			}
		}
	}()

	return v, nil
}

// qualityGood and qualityBad anchor the signal-quality bar's color
// interpolation: a clean stream renders green, a heavily-corrected one
// red, with every rate in between blended through RGB space.
var (
	qualityGood = colorful.Color{R: 0.2, G: 0.8, B: 0.2}
	qualityBad  = colorful.Color{R: 0.8, G: 0.15, B: 0.15}
)

// qualityColor maps a block-correction rate in [0,1] to a color between
// qualityGood and qualityBad.
func qualityColor(rate float64) tcell.Color {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	c := qualityGood.BlendRgb(qualityBad, rate)
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func loadFont(path string) (*FIGFont, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tui: open font %s: %w", path, err)
	}
	defer f.Close()
	return NewFIGFont(f)
}

// Closed reports whether the user has requested the view close (Ctrl-C).
func (v *Viewer) Closed() bool {
	select {
	case e := <-v.events:
		if ke, ok := e.(*tcell.EventKey); ok && ke.Key() == tcell.KeyCtrlC {
			return true
		}
	default:
	}
	return false
}

// Close tears down the screen and stops the event pump.
func (v *Viewer) Close() {
	close(v.quit)
	v.scr.Fini()
}

// Show renders one decoded record. correctionRate is the framer's
// recent block-error-correction rate (0 = clean, 1 = every validated
// block needed a fix), drawn as a color-interpolated bar under the
// radiotext banner.
func (v *Viewer) Show(rec *output.Record, ps, radiotext string, correctionRate float64) {
	w, _ := v.scr.Size()

	pi := fmt.Sprintf("0x%04x", rec.PI)
	PI := v.big.Render(pi)
	PS := v.medium.Render(ps)

	xOffset := (w - 60) / 2
	Clear(v.scr, xOffset, 4, v.big.Height+1, 60, ' ', v.freqStyle)
	xOffset = (w - len(PI[0])) / 2
	DrawLines(v.scr, xOffset, 2, v.freqStyle, PI)

	xOffset = (w - 50) / 2
	Clear(v.scr, xOffset, 18, v.medium.Height, 50, ' ', v.textStyle)
	xOffset = (w - len(PS[0])) / 2
	DrawLines(v.scr, xOffset, 15, v.textStyle, PS)

	Clear(v.scr, 0, 24, 1, w, ' ', v.textStyle)
	rt := "- - - = = =  " + radiotext + "  = = = - - -"
	rtX := (w - len(rt)) / 2
	DrawLines(v.scr, rtX, 24, v.textStyle, []string{rt})

	v.showQualityBar(correctionRate, 25, w)

	Clear(v.scr, 0, 26, 1, w, ' ', v.textStyle)
	summary := "(" + rec.ProgType + ")"
	xOffset = (w - len(summary)) / 2
	DrawLines(v.scr, xOffset, 26, v.textStyle, []string{summary})

	v.scr.Show()
}

const qualityBarWidth = 30

// showQualityBar draws a fixed-width bar whose filled portion and color
// both track correctionRate, centered on row y.
func (v *Viewer) showQualityBar(correctionRate float64, y, screenWidth int) {
	filled := int(correctionRate * float64(qualityBarWidth))
	if filled > qualityBarWidth {
		filled = qualityBarWidth
	}
	style := tcell.StyleDefault.Foreground(qualityColor(correctionRate))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", qualityBarWidth-filled)

	Clear(v.scr, 0, y, 1, screenWidth, ' ', v.textStyle)
	x := (screenWidth - qualityBarWidth) / 2
	DrawLines(v.scr, x, y, style, []string{bar})
}

// Clear paints a rectangle with the given rune and style.
func Clear(scr tcell.Screen, x, y, h, w int, c rune, style tcell.Style) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			scr.SetContent(i, j, c, nil, style)
		}
	}
}

// DrawLines writes each line of lines starting at (x, y), one per row.
func DrawLines(scr tcell.Screen, x, y int, style tcell.Style, lines []string) {
	for j, line := range lines {
		for i, c := range line {
			scr.SetContent(x+i, y+j, c, nil, style)
		}
	}
}
