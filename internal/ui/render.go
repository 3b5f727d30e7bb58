package ui

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/wind-garden/internal/models"
)

// Layout constants, in terminal cells
const (
	minWidth         = 30
	minHeight        = 12
	patchWidthScale  = 0.35 // patch widths are in pixels-as-percent, terminal cells are wide
	windCellsPerUnit = 8.0  // wind line width units per cell
	specialStem      = 5    // rows between the ground and the special flower head
	swirlFrameTime   = 150 * time.Millisecond
	hintTextRow      = 3 // hint rows above the flower head
	hintIconRow      = 2
)

var swirlFrames = []rune{'.', 'o', 'O', '@', 'O', 'o'}

// View renders the current scene
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.width < minWidth || m.height < minHeight {
		return helpStyle.Render("Terminal too small for the garden")
	}

	c := newCanvas(m.width, m.height-1)
	now := m.sched.Now()

	m.drawGarden(c, now)
	m.drawWind(c, now)
	m.drawFlower(c)
	m.drawCard(c)

	return c.render() + "\n" + m.footer()
}

// groundRow is the last row of the canvas, where stems are rooted
func groundRow(c *canvas) int {
	return c.h - 1
}

func (m Model) drawGarden(c *canvas, now time.Duration) {
	patches := append([]models.FlowerPatch(nil), m.patches...)
	sort.SliceStable(patches, func(i, j int) bool {
		if patches[i].ZIndex != patches[j].ZIndex {
			return patches[i].ZIndex < patches[j].ZIndex
		}
		return patches[i].Index < patches[j].Index
	})

	for _, p := range patches {
		drawPatch(c, p, now)
	}
}

func drawPatch(c *canvas, p models.FlowerPatch, now time.Duration) {
	gardenRows := float64(c.h) / 2
	ground := groundRow(c)

	x0 := int(math.Round(p.Left / 100 * float64(c.w)))
	cells := max(3, int(math.Round(p.Width/100*float64(c.w)*patchWidthScale)))
	rows := max(2, int(math.Round(p.Height/100*gardenRows)))
	sink := int(math.Round(-p.Bottom / 100 * gardenRows))
	top := ground - rows + 1 + sink

	glyph, ok := textureGlyphs[p.Texture]
	if !ok {
		glyph = fallbackTextureGlyph
	}
	base, ok := textureColors[p.Texture]
	if !ok {
		base = fallbackTextureColor
	}

	faint := p.Blur > 1
	head := cellStyle{fg: shade(base, p.Brightness*p.FinalOpacity), faint: faint}
	stem := cellStyle{fg: shade(colorStem, p.Brightness), faint: faint}

	sway := 0
	if p.SwayDuration > 0 {
		phase := 2*math.Pi*now.Seconds()/p.SwayDuration.Seconds() + float64(p.Index)
		sway = int(math.Round(math.Sin(phase) * p.SwayAmount))
	}

	for dx := 0; dx < cells; dx += 2 {
		x := x0 + dx
		y := top + (dx/2+p.Index)%2
		for sy := y + 1; sy <= ground; sy++ {
			c.set(x, sy, '|', stem)
		}
		c.set(x+sway, y, glyph, head)
	}
}

func (m Model) drawWind(c *canvas, now time.Duration) {
	line := cellStyle{fg: colorWind}
	tail := cellStyle{fg: colorWind, faint: true}

	for _, l := range m.scene.sortedLines() {
		age := now - l.born - l.line.Delay
		if age < 0 || l.line.Duration <= 0 {
			continue
		}
		progress := math.Min(1, float64(age)/float64(l.line.Duration))
		length := max(2, int(math.Round(l.line.Width/windCellsPerUnit)))
		x := int(math.Round(-float64(length) + progress*float64(c.w+length)))
		y := int(math.Round(l.line.Top / 100 * float64(c.h-1)))

		for i := 0; i < length; i++ {
			st := line
			if i == 0 || i == length-1 {
				st = tail
			}
			c.set(x+i, y, '─', st)
		}
	}

	particle := cellStyle{fg: colorSwirl}
	for _, s := range m.scene.sortedSwirls() {
		age := now - s.born
		if age < 0 || s.swirl.Duration <= 0 {
			continue
		}
		progress := math.Min(1, float64(age)/float64(s.swirl.Duration))
		x := int(math.Round(progress * float64(c.w)))
		y := int(math.Round(s.swirl.Top/100*float64(c.h-1) + math.Sin(progress*4*math.Pi)*1.5))
		frame := int(age/swirlFrameTime) % len(swirlFrames)

		c.set(x, y, swirlFrames[frame], particle)
		c.set(x-2, y+1, swirlFrames[(frame+2)%len(swirlFrames)], cellStyle{fg: colorSwirl, faint: true})
	}
}

// flowerAnchor returns the column and head row of the special flower for a
// canvas of the given size
func flowerAnchor(w, h int) (x, y int) {
	return w * 7 / 10, h - 1 - specialStem
}

func (m Model) drawFlower(c *canvas) {
	fx, fy := flowerAnchor(c.w, c.h)
	ground := groundRow(c)

	stem := cellStyle{fg: colorStem, bold: true}
	for y := fy + 1; y <= ground; y++ {
		c.set(fx, y, '┃', stem)
	}
	c.set(fx-1, fy+3, '╲', stem)
	c.set(fx+1, fy+2, '╱', stem)
	c.text(fx-1, fy, "(❁)", cellStyle{fg: colorSpecial, bold: true})

	if m.flower.Hint.Removed {
		return
	}
	hint := cellStyle{fg: fade(colorHint, m.flower.HintOpacity()), bold: true}
	text := m.flower.Hint.Text
	c.text(fx-lipgloss.Width(text)/2, fy-hintTextRow, text, hint)
	c.text(fx, fy-hintIconRow, m.spinner.View(), hint)
}

func (m Model) drawCard(c *canvas) {
	card := m.flower.Card
	if !card.Displayed || !card.Visible {
		return
	}

	lines := m.cfg.Card
	shown := int(math.Ceil(card.Progress() * float64(len(lines))))
	shown = min(max(shown, 0), len(lines))

	textWidth := 0
	for _, l := range lines {
		textWidth = max(textWidth, lipgloss.Width(l))
	}
	content := make([]string, len(lines))
	copy(content, lines[:shown])

	box := cardFrameStyle.Width(textWidth + 8).Render(strings.Join(content, "\n"))
	rows := strings.Split(box, "\n")
	bw := lipgloss.Width(rows[0])
	x0 := (c.w - bw) / 2
	y0 := max(0, (c.h-len(rows))/2)
	if !card.Centered {
		x0, y0 = 0, 0
	}

	frame := cellStyle{fg: colorCardFrame, bold: true}
	text := cellStyle{fg: colorCardText, bold: true}
	// One rune per cell, so the right border is the row's last rune
	// even when the text holds wide runes
	for i, row := range rows {
		runes := []rune(row)
		for j, r := range runes {
			st := text
			if i == 0 || i == len(rows)-1 || j == 0 || j == len(runes)-1 {
				st = frame
			}
			c.set(x0+j, y0+i, r, st)
		}
	}
}

func (m Model) footer() string {
	status := "♪ " + m.flower.Audio().String()
	if m.scene.hidden {
		status += " · gusts paused"
	}
	return m.help.View(m.keys) + statusStyle.Render(status)
}
