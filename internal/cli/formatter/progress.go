package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderMeter draws pct (clamped to 0..100) as a bar of at least two cells
// followed by the percentage: [████░░░░]  45%.
func RenderMeter(pct, width int, style lipgloss.Style) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)
	filled := pct * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// RenderProgress colors schedule progress by thirds: red, yellow, green.
func RenderProgress(pct, width int) string {
	styles := []lipgloss.Style{StyleRed, StyleYellow, StyleGreen}
	third := min(max(pct, 0)/33, 2)
	return RenderMeter(pct, width, styles[third])
}
