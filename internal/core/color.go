package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to a themed lipgloss color.
type Color uint8

// Predefined colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// Semantic roles used by the renderer.
const (
	ColorBird   = ColorYellow
	ColorBeak   = ColorOrange
	ColorPipe   = ColorGreen
	ColorGround = ColorGray
	ColorHUD    = ColorWhite
	ColorAlert  = ColorRed
	ColorHint   = ColorCyan
)
