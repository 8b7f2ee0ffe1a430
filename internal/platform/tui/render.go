package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// ansiColors maps cell colours to terminal palette entries. ColorDefault
// has no entry and keeps the terminal's foreground.
var ansiColors = map[core.Color]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorPink:          "205",
	core.ColorPurple:        "129",
}

// cellStyle is the part of a cell that decides its escape sequence.
type cellStyle struct {
	color core.Color
	bold  bool
}

// screenRenderer turns screens into styled text. Styles are built once per
// colour/weight pair. It is not safe for concurrent use; every Model owns one.
type screenRenderer struct {
	styles map[cellStyle]lipgloss.Style
}

func newScreenRenderer() *screenRenderer {
	return &screenRenderer{styles: make(map[cellStyle]lipgloss.Style)}
}

func (r *screenRenderer) style(cs cellStyle) lipgloss.Style {
	if st, ok := r.styles[cs]; ok {
		return st
	}
	st := lipgloss.NewStyle().Bold(cs.bold)
	if c, ok := ansiColors[cs.color]; ok {
		st = st.Foreground(c)
	}
	r.styles[cs] = st
	return st
}

// Render converts a screen to a string, styling runs of cells that share a
// colour and weight together to keep escape sequences short.
func (r *screenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		x := 0
		for x < s.Width() {
			first := s.GetCell(x, y)
			cs := cellStyle{color: first.Color, bold: first.Bold}

			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != cs.color || cell.Bold != cs.bold {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if cs == (cellStyle{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(r.style(cs).Render(run.String()))
		}
	}
	return sb.String()
}
