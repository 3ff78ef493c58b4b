package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tunnels/internal/core"
)

// ansiCodes holds the terminal color for each core.Color, in declaration order.
var ansiCodes = [...]string{
	core.ColorDefault:       "",
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
}

// Palette renders screen colors with one lipgloss renderer. SSH sessions get
// a renderer bound to their own terminal.
type Palette struct {
	styles [len(ansiCodes)]lipgloss.Style
}

// NewPalette builds styles for r. A nil renderer uses the default one.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{}
	for i, code := range ansiCodes {
		p.styles[i] = r.NewStyle()
		if code != "" {
			p.styles[i] = p.styles[i].Foreground(lipgloss.Color(code))
		}
	}
	return p
}

func (p *Palette) style(c core.Color) lipgloss.Style {
	if int(c) >= len(p.styles) {
		return p.styles[core.ColorDefault]
	}
	return p.styles[c]
}

// Render converts a Screen buffer to a styled string. Runs of cells with the
// same color share one escape sequence.
func (p *Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(p.style(color).Render(run.String()))
		}
	}
	return sb.String()
}
