package gantt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// WindowPadding is added before the earliest start and after the latest end.
const WindowPadding = 7 * Day

// EmptyWindowDays is the span used when no rows are visible.
const EmptyWindowDays = 30

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Granularities lists the zoom levels from finest to coarsest.
var Granularities = []Granularity{GranularityDay, GranularityWeek, GranularityMonth}

// ParseGranularity accepts "day", "week" or "month" (case-insensitive).
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return g, nil
	}
	return "", fmt.Errorf("unknown granularity %q (want day, week or month)", s)
}

// UnitWidth returns the horizontal units per calendar day.
func (g Granularity) UnitWidth() float64 {
	switch g {
	case GranularityDay:
		return 40
	case GranularityMonth:
		return 6
	default:
		return 20
	}
}

// Next cycles to the next coarser granularity, wrapping month back to day.
func (g Granularity) Next() Granularity {
	for i, cur := range Granularities {
		if cur == g {
			return Granularities[(i+1)%len(Granularities)]
		}
	}
	return GranularityWeek
}

// Window is the visible date range.
type Window struct {
	MinDate   time.Time
	MaxDate   time.Time
	TotalDays int
}

// ComputeWindow derives the date range covering rows, padded on both ends.
// With no rows it spans EmptyWindowDays starting at now.
func ComputeWindow(rows []*ScheduleItem, now time.Time) Window {
	if len(rows) == 0 {
		return Window{
			MinDate:   now,
			MaxDate:   now.AddDate(0, 0, EmptyWindowDays),
			TotalDays: EmptyWindowDays,
		}
	}

	lo, hi := rows[0].Start, rows[0].End
	for _, r := range rows[1:] {
		if r.Start.Before(lo) {
			lo = r.Start
		}
		if r.End.After(hi) {
			hi = r.End
		}
	}
	lo = lo.Add(-WindowPadding)
	hi = hi.Add(WindowPadding)

	return Window{
		MinDate:   lo,
		MaxDate:   hi,
		TotalDays: int(math.Ceil(float64(hi.Sub(lo)) / float64(Day))),
	}
}

// HeaderCell describes one calendar day of the date header.
type HeaderCell struct {
	Index     int
	Date      time.Time
	Label     string
	IsWeekend bool
	GridLine  bool
}

// BuildHeaders emits one cell per calendar day from MinDate through MaxDate.
// Labels and grid lines depend on the granularity.
func BuildHeaders(w Window, g Granularity) []HeaderCell {
	if w.MaxDate.Before(w.MinDate) {
		return nil
	}
	cells := make([]HeaderCell, 0, w.TotalDays+1)
	for i, cur := 0, w.MinDate; !cur.After(w.MaxDate); i, cur = i+1, cur.AddDate(0, 0, 1) {
		wd := cur.Weekday()
		cell := HeaderCell{
			Index:     i,
			Date:      cur,
			IsWeekend: wd == time.Saturday || wd == time.Sunday,
		}
		switch g {
		case GranularityDay:
			cell.Label = strconv.Itoa(cur.Day())
			cell.GridLine = true
		case GranularityMonth:
			if cur.Day() == 1 {
				cell.Label = cur.Format("Jan")
				cell.GridLine = true
			}
		default:
			if wd == time.Monday || cur.Day() == 1 {
				cell.Label = cur.Format("Jan 2")
			}
			cell.GridLine = i%7 == 0
		}
		cells = append(cells, cell)
	}
	return cells
}
