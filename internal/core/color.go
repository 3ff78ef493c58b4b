package core

// Color is a symbolic foreground color for a screen cell.
// The platform maps it to a terminal style.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Roles used by the tunnel view.
const (
	ColorTunnel   = ColorGreen
	ColorWall     = ColorRed
	ColorLandmark = ColorBrightYellow
	ColorHint     = ColorGray
)
