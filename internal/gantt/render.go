package gantt

import (
	"math"
	"time"
)

// Rendering constants, in drawing units unless noted.
const (
	LabelMaxRunes  = 15 // title runes shown before the ellipsis
	MinBarWidth    = 8.0
	BarInset       = 8.0 // vertical gap between row edge and bar
	HandleWidth    = 6.0
	IndentPerLevel = 12.0
	GlyphSize      = 12.0
	TooltipWidth   = 120.0
	TooltipHeight  = 24.0
)

// Overlay is caller-owned interaction state that only affects emphasis.
type Overlay struct {
	HoveredID  string
	SelectedID string
}

// RenderInput gathers the products of the earlier pipeline stages.
type RenderInput struct {
	Model        *Model
	Rows         []*ScheduleItem
	Headers      []HeaderCell
	Dependencies []Dependency
	Mapper       *Mapper
	Expanded     IDSet
	Now          time.Time
	Theme        Theme
	Overlay      Overlay

	// Reschedulable adds resize handles to every visible bar and makes the
	// bar body a move region.
	Reschedulable bool
}

// SurfaceSize returns the width and height of the drawable area: the label
// column plus the visible part of the time area, and the header plus rows.
func SurfaceSize(mapper *Mapper) (float64, float64) {
	return visibleRight(mapper), mapper.ChartHeight()
}

func visibleRight(mapper *Mapper) float64 {
	d := mapper.Dimensions()
	end := d.LabelWidth + mapper.ChartWidth() - mapper.ScrollOffset()
	return math.Max(d.LabelWidth, math.Min(mapper.ViewportRight(), end))
}

// Render emits the draw commands for a chart, back to front. Header cells and
// bars outside the horizontal viewport are culled and all geometry is clipped
// to it, so no command ever carries a negative width.
func Render(in RenderInput) []DrawCommand {
	mp := in.Mapper
	th := in.Theme
	if th.Background == "" {
		th = LightTheme()
	}
	d := mp.Dimensions()
	left, right := mp.ViewportLeft(), visibleRight(mp)
	height := mp.ChartHeight()
	unit := mp.UnitWidth()

	cmds := make([]DrawCommand, 0, 16+len(in.Headers)*2+len(in.Rows)*8)
	add := func(c DrawCommand) {
		if c.Opacity == 0 {
			c.Opacity = 1
		}
		cmds = append(cmds, c)
	}

	add(DrawCommand{Kind: KindRect, Role: RoleBackground, Width: right, Height: height, Fill: th.Background})

	// Row strips and caller overlay.
	for i, item := range in.Rows {
		strip := DrawCommand{Kind: KindRect, Role: RoleRow, Y: mp.RowToY(i), Width: right, Height: d.RowHeight,
			Fill: th.Background, ItemID: item.ID}
		if i%2 == 1 {
			strip.Fill, strip.Opacity = th.LabelBg, 0.6
		}
		add(strip)
		if item.ID == in.Overlay.HoveredID || item.ID == in.Overlay.SelectedID {
			add(DrawCommand{Kind: KindRect, Role: RoleHighlight, Y: mp.RowToY(i), Width: right, Height: d.RowHeight,
				Fill: th.HoverBg, Opacity: 0.5, ItemID: item.ID})
		}
	}

	if right > left {
		add(DrawCommand{Kind: KindRect, Role: RoleHeader, X: left, Width: right - left, Height: d.HeaderHeight, Fill: th.HeaderBg})
	}

	for _, cell := range in.Headers {
		x, next := mp.CellSpan(cell)
		if cell.IsWeekend {
			if x0, x1 := math.Max(x, left), math.Min(next, right); x1 > x0 {
				add(DrawCommand{Kind: KindRect, Role: RoleWeekend, X: x0, Y: d.HeaderHeight, Width: x1 - x0,
					Height: height - d.HeaderHeight, Fill: th.WeekendBg, Opacity: 0.3})
			}
		}
		if x < left || x > right {
			continue
		}
		if cell.GridLine {
			add(DrawCommand{Kind: KindLine, Role: RoleGrid, X: x, Y: d.HeaderHeight, X2: x, Y2: height,
				Stroke: th.GridLine, StrokeWidth: 0.5})
		}
		if cell.Label != "" {
			add(DrawCommand{Kind: KindText, Role: RoleHeaderLabel, X: (x + next) / 2, Y: d.HeaderHeight - 10,
				Text: cell.Label, Anchor: AnchorMiddle, FontSize: 10, Fill: th.TextSecondary})
		}
	}

	for i := range in.Rows {
		y := mp.RowToY(i + 1)
		add(DrawCommand{Kind: KindLine, Role: RoleRowSeparator, Y: y, X2: right, Y2: y, Stroke: th.GridLine, StrokeWidth: 0.5})
	}

	if tx := mp.DateToX(in.Now); tx >= left && tx <= right {
		add(DrawCommand{Kind: KindLine, Role: RoleToday, X: tx, Y: d.HeaderHeight, X2: tx, Y2: height,
			Stroke: th.Today, StrokeWidth: 2, Dash: "4,2"})
	}

	// Label column.
	add(DrawCommand{Kind: KindRect, Role: RoleLabelColumn, Width: d.LabelWidth, Height: height, Fill: th.LabelBg})
	add(DrawCommand{Kind: KindLine, Role: RoleLabelColumn, X: d.LabelWidth, X2: d.LabelWidth, Y2: height,
		Stroke: th.GridLine, StrokeWidth: 1})

	for i, item := range in.Rows {
		cy := mp.RowCenterY(i)
		indent := float64(item.Level) * IndentPerLevel
		labelX := 20 + indent
		if item.HasChildren() {
			glyph := "▶"
			if in.Expanded.Has(item.ID) {
				glyph = "▼"
			}
			add(DrawCommand{Kind: KindText, Role: RoleGlyph, X: 4 + indent, Y: cy + GlyphSize/2, Width: GlyphSize,
				Height: GlyphSize, Text: glyph, Anchor: AnchorStart, FontSize: 10, Fill: th.TextSecondary,
				ItemID: item.ID, Action: ActionToggleExpand})
			labelX += GlyphSize
		}
		fill := th.TextPrimary
		if item.IsCritical {
			fill = th.Critical
		}
		add(DrawCommand{Kind: KindText, Role: RoleLabel, X: labelX, Y: cy + 4, Width: math.Max(0, d.LabelWidth-labelX),
			Height: 14, Text: RowLabel(item), Anchor: AnchorStart, FontSize: 11, Bold: item.IsCritical, Fill: fill,
			ItemID: item.ID, Action: ActionActivate})
	}

	for _, c := range RouteAll(in.Dependencies, in.Model, mp) {
		// Control points share the endpoints' x range, so the curve does too.
		if math.Max(c.From.X, c.To.X) < left || math.Min(c.From.X, c.To.X) > right {
			continue
		}
		stroke, dash, opacity := th.Neutral, "4,2", 0.6
		if c.Critical {
			stroke, dash, opacity = th.Critical, "", 1
		}
		add(DrawCommand{Kind: KindPath, Role: RoleConnector, X: c.From.X, Y: c.From.Y, X2: c.To.X, Y2: c.To.Y,
			Path: c.Path(), Stroke: stroke, StrokeWidth: 1.5, Dash: dash, Opacity: opacity,
			ItemID: c.SuccessorID})
		add(DrawCommand{Kind: KindPolygon, Role: RoleArrowhead, Points: c.Arrowhead(), Fill: stroke, Opacity: opacity,
			ItemID: c.SuccessorID})
	}

	var tooltip []DrawCommand
	for i, item := range in.Rows {
		x := mp.DateToX(item.Start)
		width := math.Max(MinBarWidth, DaysBetween(item.Start, item.End)*unit)
		if x+width < left || x > right {
			continue
		}
		x0, x1 := math.Max(left, x), math.Min(right, x+width)
		if x1 <= x0 {
			continue
		}
		y := mp.RowToY(i) + BarInset
		h := math.Max(0, d.RowHeight-2*BarInset)

		color := th.StatusColor(item.Status)
		if item.IsCritical {
			color = th.Critical
		}
		barAction := ActionActivate
		if in.Reschedulable {
			barAction = ActionMove
		}
		add(DrawCommand{Kind: KindRect, Role: RoleBar, X: x0, Y: y, Width: x1 - x0, Height: h, Radius: 4,
			Fill: color, Opacity: 0.7, ItemID: item.ID, Action: barAction})

		if pw := math.Min(x+width*float64(item.Progress)/100, x1) - x0; pw > 0 {
			add(DrawCommand{Kind: KindRect, Role: RoleProgress, X: x0, Y: y, Width: pw, Height: h, Radius: 4,
				Fill: color, ItemID: item.ID, Action: barAction})
		}
		if item.IsCritical {
			add(DrawCommand{Kind: KindRect, Role: RoleCriticalBorder, X: x0, Y: y, Width: x1 - x0, Height: h, Radius: 4,
				Stroke: th.Critical, StrokeWidth: 2, ItemID: item.ID})
		}
		if in.Reschedulable {
			if x >= left {
				add(DrawCommand{Kind: KindRect, Role: RoleHandle, X: x0, Y: y, Width: math.Min(HandleWidth, x1-x0),
					Height: h, Opacity: 0.6, ItemID: item.ID, Action: ActionResizeStart})
			}
			if x+width <= right {
				hx := math.Max(x0, x1-HandleWidth)
				add(DrawCommand{Kind: KindRect, Role: RoleHandle, X: hx, Y: y, Width: x1 - hx,
					Height: h, Opacity: 0.6, ItemID: item.ID, Action: ActionResizeEnd})
			}
		}

		if item.ID == in.Overlay.HoveredID {
			tx := x + width/2
			tooltip = append(tooltip,
				DrawCommand{Kind: KindRect, Role: RoleTooltip, X: tx - TooltipWidth/2, Y: y - 30, Width: TooltipWidth,
					Height: TooltipHeight, Radius: 4, Fill: th.TooltipBg, Stroke: th.TooltipBorder, StrokeWidth: 1, Opacity: 1,
					ItemID: item.ID},
				DrawCommand{Kind: KindText, Role: RoleTooltip, X: tx, Y: y - 13, Text: DateRangeLabel(item.Start, item.End),
					Anchor: AnchorMiddle, FontSize: 10, Fill: th.TextPrimary, Opacity: 1, ItemID: item.ID})
		}
	}
	// Tooltips sit above every bar.
	cmds = append(cmds, tooltip...)
	return cmds
}

// RowLabel is the text shown in the label column: the code followed by the
// title, truncated to LabelMaxRunes runes with an ellipsis.
func RowLabel(item *ScheduleItem) string {
	return item.Code + " " + Truncate(item.Title, LabelMaxRunes)
}

// Truncate shortens s to n runes, appending "..." when it was cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// DateRangeLabel formats a bar's span for tooltips, e.g. "Jun 3 - Jun 7".
func DateRangeLabel(start, end time.Time) string {
	return start.Format("Jan 2") + " - " + end.Format("Jan 2")
}
