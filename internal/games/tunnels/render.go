package tunnels

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-tunnels/internal/core"
)

const (
	boxW = 14
	boxH = 5

	minScreenW = 3*boxW + 2
	minScreenH = 22
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)

	x0 := (dst.Width() - 3*boxW) / 2
	y0 := 3
	open := g.pos.Openings()

	g.renderTunnel(dst, core.NewRect(x0+boxW, y0, boxW, boxH), "Up", open.Up)
	g.renderTunnel(dst, core.NewRect(x0, y0+boxH, boxW, boxH), "Left", open.Left)
	g.renderTunnel(dst, core.NewRect(x0+2*boxW, y0+boxH, boxW, boxH), "Right", open.Right)
	g.renderTunnel(dst, core.NewRect(x0+boxW, y0+2*boxH, boxW, boxH), "Down", open.Down)
	g.renderCenter(dst, core.NewRect(x0+boxW, y0+boxH, boxW, boxH), open.Forward)

	msgY := y0 + 3*boxH + 1
	if g.message != "" {
		dst.DrawTextCentered(msgY, g.message, g.messageColor())
	}
	if g.mode == ModePractice {
		dst.DrawTextCentered(msgY+1, fmt.Sprintf("at %s, facing %s", g.symbols.Name(g.pos.Cell), g.pos.Orientation), core.ColorHint)
	}

	help := "←↑→↓/WASD turn  Space target  ? solve  P pause  Q quit"
	if g.Over() {
		help = "R new puzzle  B menu  Q quit"
	}
	dst.DrawTextCentered(dst.Height()-1, help, core.ColorHint)

	g.renderOverlay(dst)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCentered(0, g.Title(), core.ColorBrightCyan)

	left := fmt.Sprintf("Stage %d/%d  Strikes %d  Score %d",
		min(g.stage+1, len(g.puzzle.Targets)), len(g.puzzle.Targets), g.strikes, g.Score())
	if limit := g.cfg.Gameplay.MaxStrikes; limit > 0 && g.mode != ModePractice {
		left = fmt.Sprintf("Stage %d/%d  Strikes %d/%d  Score %d",
			min(g.stage+1, len(g.puzzle.Targets)), len(g.puzzle.Targets), g.strikes, limit, g.Score())
	}
	dst.DrawText(1, 1, left)

	target := g.symbols.At(g.Target())
	right := fmt.Sprintf("Target: %c %s", target.Glyph, target.Name)
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(right)-1, 1, right, core.ColorLandmark)
}

func tunnelColor(open bool) core.Color {
	if open {
		return core.ColorTunnel
	}
	return core.ColorWall
}

// drawInBox centers text on a line inside the border of r. Lines past the
// bottom border are dropped.
func drawInBox(dst *core.Screen, r core.Rect, line int, text string, c core.Color) {
	inner := r.Inset(1)
	y := inner.Y + line
	if !inner.Contains(inner.X, y) {
		return
	}
	x := inner.X + core.Clamp((inner.W-utf8.RuneCountInString(text))/2, 0, inner.W)
	dst.DrawTextColored(x, y, text, c)
}

func (g *Game) renderTunnel(dst *core.Screen, r core.Rect, label string, open bool) {
	c := tunnelColor(open)
	dst.DrawBox(r, c)
	drawInBox(dst, r, 0, label, core.ColorDefault)
	if open {
		drawInBox(dst, r, 1, "tunnel", c)
	} else {
		drawInBox(dst, r, 1, "wall", c)
	}
}

func (g *Game) renderCenter(dst *core.Screen, r core.Rect, forwardOpen bool) {
	c := tunnelColor(forwardOpen)
	dst.DrawBox(r, c)

	if g.Visible(g.pos.Cell) {
		sym := g.symbols.At(g.pos.Cell)
		drawInBox(dst, r, 0, string(sym.Glyph), core.ColorLandmark)
		drawInBox(dst, r, 1, sym.Name, core.ColorBrightWhite)
	} else {
		drawInBox(dst, r, 0, "·", core.ColorHint)
	}
	if forwardOpen {
		drawInBox(dst, r, 2, "ahead: open", c)
	} else {
		drawInBox(dst, r, 2, "ahead: wall", c)
	}
}

func (g *Game) messageColor() core.Color {
	switch {
	case g.solved:
		return core.ColorBrightGreen
	case g.failed:
		return core.ColorBrightRed
	case g.alert:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	var title string
	var c core.Color
	switch {
	case g.paused:
		title, c = "PAUSED", core.ColorBrightYellow
	case g.solved && g.assisted:
		title, c = "SOLVED (assisted)", core.ColorBrightGreen
	case g.solved:
		title, c = fmt.Sprintf("SOLVED! Score %d", g.Score()), core.ColorBrightGreen
	case g.failed:
		title, c = "GAME OVER", core.ColorBrightRed
	default:
		return
	}
	w := utf8.RuneCountInString(title) + 6
	r := core.NewRect((dst.Width()-w)/2, dst.Height()/2-1, w, 3)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, y, ' ', core.ColorDefault)
		}
	}
	dst.DrawBox(r, c)
	dst.DrawTextCentered(r.Y+1, title, c)
}
