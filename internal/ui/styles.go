package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorSky       = "#1B1F3B" // Background the hint fades into
	colorWind      = "#A8DADC" // Wind streaks
	colorSwirl     = "#F1FAEE" // Swirl particles
	colorStem      = "#4F9D69" // Stems and leaves
	colorSpecial   = "#FF5FD2" // The interactive flower
	colorHint      = "#FFD93D" // Click hint text
	colorCardText  = "#FFFFFF"
	colorCardFrame = "#FF8FAB"

	// Patch head colors per texture
	textureColors = map[string]string{
		"foreground_flowers.png": "#D98CB3",
		"tulip_red.png":          "#E63946",
		"tulip_yellow.png":       "#FFC300",
	}
	fallbackTextureColor = "#C77DFF"

	// Patch head glyphs per texture
	textureGlyphs = map[string]rune{
		"foreground_flowers.png": '✿',
		"tulip_red.png":          '❀',
		"tulip_yellow.png":       '✾',
	}
	fallbackTextureGlyph = '✽'

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	// Status shown next to the help line
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD93D")).
			Bold(true).
			PaddingLeft(2)

	// Card frame; rendered without colors so it can be spliced into the canvas
	cardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 4).
			Align(lipgloss.Center)
)
