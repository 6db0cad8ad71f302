package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// palette maps core.Color to lipgloss styles for one theme.
type palette map[core.Color]lipgloss.Style

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Dark and light palettes use ANSI 256 codes; the system palette lets
// lipgloss pick per the terminal background.
var palettes = map[config.Theme]palette{
	config.ThemeDark: {
		core.ColorDefault: lipgloss.NewStyle(),
		core.ColorRed:     fg(lipgloss.Color("9")),
		core.ColorGreen:   fg(lipgloss.Color("10")),
		core.ColorYellow:  fg(lipgloss.Color("11")),
		core.ColorBlue:    fg(lipgloss.Color("12")),
		core.ColorCyan:    fg(lipgloss.Color("14")),
		core.ColorWhite:   fg(lipgloss.Color("15")),
		core.ColorOrange:  fg(lipgloss.Color("208")),
		core.ColorGray:    fg(lipgloss.Color("245")),
	},
	config.ThemeLight: {
		core.ColorDefault: lipgloss.NewStyle(),
		core.ColorRed:     fg(lipgloss.Color("1")),
		core.ColorGreen:   fg(lipgloss.Color("28")),
		core.ColorYellow:  fg(lipgloss.Color("136")),
		core.ColorBlue:    fg(lipgloss.Color("4")),
		core.ColorCyan:    fg(lipgloss.Color("30")),
		core.ColorWhite:   fg(lipgloss.Color("0")),
		core.ColorOrange:  fg(lipgloss.Color("166")),
		core.ColorGray:    fg(lipgloss.Color("240")),
	},
	config.ThemeSystem: {
		core.ColorDefault: lipgloss.NewStyle(),
		core.ColorRed:     fg(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}),
		core.ColorGreen:   fg(lipgloss.AdaptiveColor{Light: "28", Dark: "10"}),
		core.ColorYellow:  fg(lipgloss.AdaptiveColor{Light: "136", Dark: "11"}),
		core.ColorBlue:    fg(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}),
		core.ColorCyan:    fg(lipgloss.AdaptiveColor{Light: "30", Dark: "14"}),
		core.ColorWhite:   fg(lipgloss.AdaptiveColor{Light: "0", Dark: "15"}),
		core.ColorOrange:  fg(lipgloss.AdaptiveColor{Light: "166", Dark: "208"}),
		core.ColorGray:    fg(lipgloss.AdaptiveColor{Light: "240", Dark: "245"}),
	},
}

// paletteFor returns the palette for a theme, falling back to system.
func paletteFor(theme config.Theme) palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[config.ThemeSystem]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme config.Theme) string {
	styles := paletteFor(theme)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[startColor]
			if !ok {
				style = styles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
