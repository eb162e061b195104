package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable lays rows out under styled headers with a rule between them.
// Widths are measured on visible text, so pre-styled cells line up. Columns
// whose cells are all quantities (hours, percentages, lag days) are right
// aligned; everything else is left aligned.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	right := make([]bool, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
		right[i] = len(rows) > 0
	}
	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := cellAt(row, i)
			widths[i] = max(widths[i], lipgloss.Width(cell))
			if !isQuantity(cell) {
				right[i] = false
			}
		}
	}

	var b strings.Builder
	line := func(cells []string, style func(...string) string) {
		for i := 0; i < cols; i++ {
			cell := cellAt(cells, i)
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if style != nil {
				cell = style(cell)
			}
			last := i == cols-1
			switch {
			case right[i]:
				b.WriteString(pad + cell)
			case last:
				b.WriteString(cell)
			default:
				b.WriteString(cell + pad)
			}
			if !last {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	line(headers, StyleHeader.Render)
	rule := make([]string, cols)
	for i, w := range widths {
		rule[i] = strings.Repeat("─", w)
	}
	line(rule, StyleDim.Render)
	for _, row := range rows {
		line(row, nil)
	}
	return b.String()
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// isQuantity reports whether a plain cell reads as a number with a unit
// suffix ("16h", "7.5h", "40%", "2d") or is the "-" placeholder. Bare numbers
// are left alone since WBS codes look like them.
func isQuantity(cell string) bool {
	if cell == "-" {
		return true
	}
	s := strings.TrimRight(cell, "hd%")
	if s == "" || len(cell)-len(s) != 1 {
		return false
	}
	dot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot && i > 0:
			dot = true
		case r == '-' && i == 0 && len(s) > 1:
		default:
			return false
		}
	}
	return true
}
