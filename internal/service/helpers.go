package service

import (
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/gantt"
)

const dateLayout = "2006-01-02"

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nowOr(override *time.Time) time.Time {
	if override != nil {
		return override.UTC()
	}
	return time.Now().UTC()
}

// derefItems copies repository rows into the value slice the ccpm package
// works on.
func derefItems(items []*domain.WBSItem) []domain.WBSItem {
	out := make([]domain.WBSItem, len(items))
	for i, w := range items {
		out[i] = *w
	}
	return out
}

// toRawItems maps stored WBS items onto engine input records. The plain
// estimate sizes undated bars, falling back to the aggressive one.
func toRawItems(items []*domain.WBSItem) []gantt.RawItem {
	raw := make([]gantt.RawItem, len(items))
	for i, w := range items {
		var hours *float64
		if h := domain.FirstPositive(w.EstimatedHours, w.AggressiveHours, w.SafeHours); h > 0 {
			hours = &h
		}
		raw[i] = gantt.RawItem{
			ID:                     w.ID,
			Code:                   w.Code,
			Title:                  w.Title,
			ParentID:               w.ParentIDValue(),
			Status:                 gantt.Status(w.Status),
			PlannedStart:           w.PlannedStart,
			PlannedEnd:             w.PlannedEnd,
			EstimatedDurationHours: hours,
		}
	}
	return raw
}

func toGanttDeps(deps []domain.Dependency) []gantt.Dependency {
	out := make([]gantt.Dependency, len(deps))
	for i, d := range deps {
		out[i] = gantt.Dependency{PredecessorID: d.PredecessorID, SuccessorID: d.SuccessorID}
	}
	return out
}

// resolveExpanded turns item codes or ids into an id set. With all set every
// item that has children is included.
func resolveExpanded(items []*domain.WBSItem, refs []string, all bool) gantt.IDSet {
	set := gantt.IDSet{}
	byCode := make(map[string]string, len(items))
	for _, w := range items {
		byCode[w.Code] = w.ID
		if all && w.ParentID != nil {
			set[*w.ParentID] = struct{}{}
		}
	}
	for _, ref := range refs {
		if id, ok := byCode[ref]; ok {
			set[id] = struct{}{}
			continue
		}
		set[ref] = struct{}{}
	}
	return set
}
