package domain

import (
	"strconv"
	"time"
)

// WBSItem is one node of a project's work-breakdown structure. Durations are
// in hours: the aggressive estimate drives the critical chain, the safe one
// sizes the project buffer.
type WBSItem struct {
	ID        string
	ProjectID string
	ParentID  *string
	Code      string
	Title     string
	Type      ItemType
	Status    ItemStatus

	EstimatedHours  *float64
	AggressiveHours *float64
	SafeHours       *float64
	ActualHours     *float64

	PlannedStart *time.Time
	PlannedEnd   *time.Time

	Assignee  string
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWork reports whether the item is schedulable work (task or subtask)
// rather than a grouping node.
func (w *WBSItem) IsWork() bool {
	return w.Type.Work()
}

// AggressiveDuration is the aggressive estimate, falling back to the
// plain estimate.
func (w *WBSItem) AggressiveDuration() float64 {
	return FirstPositive(w.AggressiveHours, w.EstimatedHours)
}

// SafeDuration is the safe estimate, falling back to the plain estimate.
func (w *WBSItem) SafeDuration() float64 {
	return FirstPositive(w.SafeHours, w.EstimatedHours)
}

// ParentIDValue returns the parent id, or "" for top-level items.
func (w *WBSItem) ParentIDValue() string {
	if w.ParentID == nil {
		return ""
	}
	return *w.ParentID
}

// Reschedule sets new planned dates.
func (w *WBSItem) Reschedule(start, end, now time.Time) {
	w.PlannedStart = &start
	w.PlannedEnd = &end
	w.UpdatedAt = now
}

// ChildCode returns the code of the next child under parentCode given how
// many children already exist. Top-level items pass an empty parentCode.
func ChildCode(parentCode string, existing int) string {
	n := strconv.Itoa(existing + 1)
	if parentCode == "" {
		return n
	}
	return parentCode + "." + n
}

// Dependency is a finish-to-start edge between two WBS items. LagDays may
// be negative.
type Dependency struct {
	PredecessorID string
	SuccessorID   string
	LagDays       int
	CreatedAt     time.Time
}
