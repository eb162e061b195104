package formatter

import (
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/gantry/internal/gantt"
	"github.com/charmbracelet/lipgloss"
)

const (
	barRune      = '░'
	progressRune = '█'
	todayRune    = '│'
	weekendRune  = '·'
	arrowRune    = '▶'
	minGanttCols = 20
)

type ganttCell struct {
	r     rune
	color string
	bold  bool
}

// ganttGrid rasterizes draw commands onto a character grid: one line for the
// header and one per row, cols characters wide.
type ganttGrid struct {
	cells     [][]ganttCell
	highlight []bool
	sx        float64
	headerH   float64
	rowH      float64
	labelCols int
}

// RenderGantt draws a chart's commands as text, cols characters wide. Bars
// show progress as solid blocks over a shaded span; connector curves are
// reduced to an arrowhead in front of the successor's bar.
func RenderGantt(cmds []gantt.DrawCommand, width, height float64, cols int) string {
	if width <= 0 || len(cmds) == 0 {
		return ""
	}
	if cols < minGanttCols {
		cols = minGanttCols
	}

	g := newGanttGrid(cmds, width, height, cols)
	for _, c := range cmds {
		g.draw(c)
	}
	return g.String()
}

func newGanttGrid(cmds []gantt.DrawCommand, width, height float64, cols int) *ganttGrid {
	g := &ganttGrid{sx: float64(cols) / width, headerH: height}

	var rowYs []float64
	for _, c := range cmds {
		switch c.Role {
		case gantt.RoleRow:
			rowYs = append(rowYs, c.Y)
			g.rowH = c.Height
		case gantt.RoleLabelColumn:
			if c.Kind == gantt.KindRect {
				g.labelCols = int(math.Round(c.Width * g.sx))
			}
		}
	}
	sort.Float64s(rowYs)

	lines := 1
	if len(rowYs) > 0 && g.rowH > 0 {
		g.headerH = rowYs[0]
		lines += int(math.Round((height - g.headerH) / g.rowH))
	}

	g.cells = make([][]ganttCell, lines)
	for i := range g.cells {
		g.cells[i] = make([]ganttCell, cols)
		for j := range g.cells[i] {
			g.cells[i][j].r = ' '
		}
		if g.labelCols > 0 && g.labelCols < cols {
			g.cells[i][g.labelCols] = ganttCell{r: '│', color: string(ColorDim)}
		}
	}
	g.highlight = make([]bool, lines)
	return g
}

func (g *ganttGrid) col(x float64) int {
	c := int(math.Floor(x * g.sx))
	return max(0, min(c, len(g.cells[0])-1))
}

func (g *ganttGrid) line(y float64) int {
	if y < g.headerH || g.rowH <= 0 {
		return 0
	}
	l := 1 + int((y-g.headerH)/g.rowH)
	return min(l, len(g.cells)-1)
}

// span returns the chart-area columns covered by [x, x+w), at least one.
func (g *ganttGrid) span(x, w float64) (int, int) {
	c0 := max(g.col(x), g.labelCols+1)
	c1 := int(math.Ceil((x + w) * g.sx))
	c1 = min(c1, len(g.cells[0]))
	if c1 <= c0 {
		c1 = c0 + 1
	}
	return c0, min(c1, len(g.cells[0]))
}

func (g *ganttGrid) draw(c gantt.DrawCommand) {
	switch c.Role {
	case gantt.RoleHighlight:
		g.highlight[g.line(c.Y+c.Height/2)] = true
	case gantt.RoleWeekend:
		c0, c1 := g.span(c.X, c.Width)
		for l := 1; l < len(g.cells); l++ {
			for i := c0; i < c1; i++ {
				if g.cells[l][i].r == ' ' {
					g.cells[l][i] = ganttCell{r: weekendRune, color: string(ColorDim)}
				}
			}
		}
	case gantt.RoleToday:
		x := g.col(c.X)
		if x <= g.labelCols {
			return
		}
		for l := 1; l < len(g.cells); l++ {
			g.cells[l][x] = ganttCell{r: todayRune, color: c.Stroke}
		}
	case gantt.RoleHeaderLabel:
		runes := []rune(c.Text)
		start := g.col(c.X) - len(runes)/2
		if start <= g.labelCols || start+len(runes) > len(g.cells[0]) {
			return
		}
		for i := range runes {
			if g.cells[0][start+i].r != ' ' {
				return
			}
		}
		g.write(0, start, len(runes), c.Text, string(ColorDim), false)
	case gantt.RoleGlyph, gantt.RoleLabel:
		start := g.col(c.X)
		g.write(g.line(c.Y-1), start, g.labelCols-1-start, c.Text, c.Fill, c.Bold)
	case gantt.RoleBar, gantt.RoleProgress:
		r := barRune
		if c.Role == gantt.RoleProgress {
			r = progressRune
		}
		l := g.line(c.Y + c.Height/2)
		c0, c1 := g.span(c.X, c.Width)
		for i := c0; i < c1; i++ {
			g.cells[l][i] = ganttCell{r: r, color: c.Fill}
		}
	case gantt.RoleArrowhead:
		x0, y0, _, y1 := c.Bounds()
		l, x := g.line((y0+y1)/2), g.col(x0)
		if x > g.labelCols && g.cells[l][x].r == ' ' {
			g.cells[l][x] = ganttCell{r: arrowRune, color: c.Fill}
		}
	}
}

// write places text at line l from column start, using at most n cells.
func (g *ganttGrid) write(l, start, n int, text, color string, bold bool) {
	i := start
	for _, r := range text {
		if i >= start+n || i >= len(g.cells[l]) {
			return
		}
		g.cells[l][i] = ganttCell{r: r, color: color, bold: bold}
		i++
	}
}

func (g *ganttGrid) String() string {
	var b strings.Builder
	for l, row := range g.cells {
		end := len(row)
		for end > 0 && row[end-1].r == ' ' {
			end--
		}
		var run strings.Builder
		cur := ganttCell{}
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().Bold(cur.bold)
			if cur.color != "" {
				style = style.Foreground(lipgloss.Color(cur.color))
			}
			if g.highlight[l] {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for i := 0; i < end; i++ {
			c := row[i]
			if c.color != cur.color || c.bold != cur.bold {
				flush()
				cur = c
			}
			run.WriteRune(c.r)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}
