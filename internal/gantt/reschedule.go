package gantt

import (
	"math"
	"time"
)

// DragKind is the gesture being previewed.
type DragKind string

const (
	DragMove        DragKind = "move"
	DragResizeStart DragKind = "resize-start"
	DragResizeEnd   DragKind = "resize-end"
)

// DragKindFor maps a hit action to the drag it starts.
func DragKindFor(a Action) (DragKind, bool) {
	switch a {
	case ActionMove:
		return DragMove, true
	case ActionResizeStart:
		return DragResizeStart, true
	case ActionResizeEnd:
		return DragResizeEnd, true
	}
	return "", false
}

// DragPreview returns the dates a gesture of deltaX units proposes. The
// offset is rounded to whole days. Resizing never lets an item collapse:
// a start pushed past the end lands one day before it, and an end pulled
// before the start lands one day after it.
func DragPreview(kind DragKind, origStart, origEnd time.Time, deltaX, unitWidth float64) (time.Time, time.Time) {
	days := 0
	if unitWidth > 0 && !math.IsNaN(deltaX) {
		days = int(math.Round(deltaX / unitWidth))
	}
	start, end := origStart, origEnd
	switch kind {
	case DragMove:
		start = origStart.AddDate(0, 0, days)
		end = origEnd.AddDate(0, 0, days)
	case DragResizeStart:
		start = origStart.AddDate(0, 0, days)
		if !start.Before(end) {
			start = end.AddDate(0, 0, -1)
		}
	case DragResizeEnd:
		end = origEnd.AddDate(0, 0, days)
		if !end.After(start) {
			end = start.AddDate(0, 0, 1)
		}
	}
	return start, end
}

// ShiftDays moves an item by whole days, keeping its duration.
func ShiftDays(item *ScheduleItem, days int) (time.Time, time.Time) {
	return item.Start.AddDate(0, 0, days), item.End.AddDate(0, 0, days)
}
