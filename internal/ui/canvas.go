package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// cellStyle is the look of one canvas cell. The zero value is unstyled.
type cellStyle struct {
	fg    string
	faint bool
	bold  bool
}

// canvas is a fixed grid of runes that later draws overwrite. Rendering
// groups runs of equal style so lipgloss renders each run once.
type canvas struct {
	w, h   int
	runes  []rune
	styles []cellStyle
	cache  map[cellStyle]lipgloss.Style
}

func newCanvas(w, h int) *canvas {
	c := &canvas{
		w:      w,
		h:      h,
		runes:  make([]rune, w*h),
		styles: make([]cellStyle, w*h),
		cache:  make(map[cellStyle]lipgloss.Style),
	}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

// set draws r at (x, y); off-canvas coordinates are clipped
func (c *canvas) set(x, y int, r rune, st cellStyle) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y*c.w+x] = r
	c.styles[y*c.w+x] = st
}

// text draws s starting at (x, y)
func (c *canvas) text(x, y int, s string, st cellStyle) {
	for _, r := range s {
		c.set(x, y, r, st)
		x++
	}
}

func (c *canvas) style(st cellStyle) lipgloss.Style {
	if s, ok := c.cache[st]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if st.fg != "" {
		s = s.Foreground(lipgloss.Color(st.fg))
	}
	if st.faint {
		s = s.Faint(true)
	}
	if st.bold {
		s = s.Bold(true)
	}
	c.cache[st] = s
	return s
}

func (c *canvas) render() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		row := c.runes[y*c.w : (y+1)*c.w]
		styles := c.styles[y*c.w : (y+1)*c.w]

		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && styles[x] == styles[start] {
				continue
			}
			run := string(row[start:x])
			if styles[start] == (cellStyle{}) {
				b.WriteString(run)
			} else {
				b.WriteString(c.style(styles[start]).Render(run))
			}
			start = x
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// plain returns the canvas without any styling, one string per row
func (c *canvas) plain() []string {
	rows := make([]string, c.h)
	for y := range rows {
		rows[y] = string(c.runes[y*c.w : (y+1)*c.w])
	}
	return rows
}

// shade scales a hex color's brightness, clamping to the valid range
func shade(hex string, factor float64) string {
	col, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return colorful.Color{R: col.R * factor, G: col.G * factor, B: col.B * factor}.Clamped().Hex()
}

// fade blends a hex color toward the sky; opacity 1 keeps it unchanged
func fade(hex string, opacity float64) string {
	from, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	to, err := colorful.Hex(colorSky)
	if err != nil {
		return hex
	}
	return to.BlendRgb(from, opacity).Clamped().Hex()
}
