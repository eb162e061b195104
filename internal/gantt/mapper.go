package gantt

import (
	"math"
	"time"
)

// Dimensions are the fixed geometry constants of a chart, in drawing units.
type Dimensions struct {
	LabelWidth    float64
	HeaderHeight  float64
	RowHeight     float64
	ViewportWidth float64
}

// DefaultDimensions returns the stock chart geometry.
func DefaultDimensions() Dimensions {
	return Dimensions{
		LabelWidth:    200,
		HeaderHeight:  50,
		RowHeight:     36,
		ViewportWidth: 800,
	}
}

// withDefaults replaces non-positive fields with the stock values.
func (d Dimensions) withDefaults() Dimensions {
	def := DefaultDimensions()
	if d.LabelWidth <= 0 {
		d.LabelWidth = def.LabelWidth
	}
	if d.HeaderHeight <= 0 {
		d.HeaderHeight = def.HeaderHeight
	}
	if d.RowHeight <= 0 {
		d.RowHeight = def.RowHeight
	}
	if d.ViewportWidth <= 0 {
		d.ViewportWidth = def.ViewportWidth
	}
	return d
}

// Mapper converts dates and row indices to drawing coordinates and back. It
// also owns the row table used for hit-testing, so drawing and picking share
// one source of truth.
type Mapper struct {
	window    Window
	unitWidth float64
	scroll    float64
	dims      Dimensions
	rows      []*ScheduleItem
	rowIndex  map[string]int
}

// NewMapper builds a mapper for the given window and visible rows. The scroll
// offset is clamped to [0, ChartWidth-ViewportWidth].
func NewMapper(w Window, g Granularity, scroll float64, dims Dimensions, rows []*ScheduleItem) *Mapper {
	dims = dims.withDefaults()
	m := &Mapper{
		window:    w,
		unitWidth: g.UnitWidth(),
		dims:      dims,
		rows:      rows,
		rowIndex:  make(map[string]int, len(rows)),
	}
	for i, r := range rows {
		m.rowIndex[r.ID] = i
	}
	m.scroll = ClampScroll(scroll, m.ChartWidth(), dims.ViewportWidth)
	return m
}

// ClampScroll bounds a horizontal scroll offset to [0, chartWidth-viewportWidth].
// When the chart is narrower than the viewport the only valid offset is 0.
func ClampScroll(offset, chartWidth, viewportWidth float64) float64 {
	limit := math.Max(0, chartWidth-viewportWidth)
	if math.IsNaN(offset) || offset < 0 {
		return 0
	}
	if offset > limit {
		return limit
	}
	return offset
}

// DaysBetween returns the fractional number of days from a to b.
func DaysBetween(a, b time.Time) float64 {
	return float64(b.Sub(a)) / float64(Day)
}

func (m *Mapper) Window() Window         { return m.window }
func (m *Mapper) Dimensions() Dimensions { return m.dims }
func (m *Mapper) UnitWidth() float64     { return m.unitWidth }
func (m *Mapper) ScrollOffset() float64  { return m.scroll }
func (m *Mapper) Rows() []*ScheduleItem  { return m.rows }

// ChartWidth is the unscrolled width of the time area.
func (m *Mapper) ChartWidth() float64 {
	return float64(m.window.TotalDays) * m.unitWidth
}

// ChartHeight covers the header and every visible row.
func (m *Mapper) ChartHeight() float64 {
	return m.dims.HeaderHeight + float64(len(m.rows))*m.dims.RowHeight
}

// ViewportLeft and ViewportRight bound the visible part of the time area.
func (m *Mapper) ViewportLeft() float64 { return m.dims.LabelWidth }

func (m *Mapper) ViewportRight() float64 { return m.dims.LabelWidth + m.dims.ViewportWidth }

// DateToX maps a date to a horizontal coordinate.
func (m *Mapper) DateToX(t time.Time) float64 {
	return m.dims.LabelWidth + DaysBetween(m.window.MinDate, t)*m.unitWidth - m.scroll
}

// XToDate is the inverse of DateToX.
func (m *Mapper) XToDate(x float64) time.Time {
	days := (x - m.dims.LabelWidth + m.scroll) / m.unitWidth
	return m.window.MinDate.Add(time.Duration(days * float64(Day)))
}

// CellSpan returns the left and right edges of a day header cell, measured
// with DateToX so cells and bars agree across DST changes.
func (m *Mapper) CellSpan(cell HeaderCell) (float64, float64) {
	return m.DateToX(cell.Date), m.DateToX(cell.Date.AddDate(0, 0, 1))
}

// RowToY returns the top edge of row i.
func (m *Mapper) RowToY(i int) float64 {
	return m.dims.HeaderHeight + float64(i)*m.dims.RowHeight
}

// RowCenterY returns the vertical center of row i.
func (m *Mapper) RowCenterY(i int) float64 {
	return m.RowToY(i) + m.dims.RowHeight/2
}

// IndexOf returns the row index of id, or -1 when the item is not visible.
func (m *Mapper) IndexOf(id string) int {
	if i, ok := m.rowIndex[id]; ok {
		return i
	}
	return -1
}

// RowAt resolves a vertical coordinate back to the row it falls in.
func (m *Mapper) RowAt(y float64) (*ScheduleItem, int, bool) {
	if y < m.dims.HeaderHeight {
		return nil, -1, false
	}
	i := int(math.Floor((y - m.dims.HeaderHeight) / m.dims.RowHeight))
	if i < 0 || i >= len(m.rows) {
		return nil, -1, false
	}
	return m.rows[i], i, true
}
