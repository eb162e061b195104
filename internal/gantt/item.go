// Package gantt turns a flat work-breakdown structure with dependencies into a
// time-indexed chart layout: tree reconstruction, date-range inference,
// coordinate mapping, connector routing and neutral draw commands.
//
// Every entry point is a pure function of its inputs. The current instant is
// always passed in explicitly; nothing here reads the clock.
package gantt

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
)

// Day is the calendar unit used by every date computation in the package.
const Day = 24 * time.Hour

// DefaultDurationHours is assumed when an item carries no usable estimate.
// Eight working hours map to one calendar day.
const DefaultDurationHours = 8.0

// MaxDurationDays caps an estimate-derived bar. Larger or non-finite
// estimates are replaced by the default duration.
const MaxDurationDays = 3650

// ErrInvalidItem is returned by Build when an input record cannot be placed in
// the model at all (missing or duplicate id).
var ErrInvalidItem = errors.New("invalid schedule item")

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusBlocked    Status = "blocked"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	}
	return false
}

// Progress maps a status to its displayed completion percentage.
func (s Status) Progress() int {
	switch s {
	case StatusCompleted:
		return 100
	case StatusInProgress:
		return 50
	default:
		return 0
	}
}

// RawItem is a WBS record as supplied by the data source.
type RawItem struct {
	ID                     string
	Code                   string
	Title                  string
	ParentID               string
	Status                 Status
	PlannedStart           *time.Time
	PlannedEnd             *time.Time
	EstimatedDurationHours *float64
}

// ScheduleItem is the derived, tree-friendly form of a RawItem.
type ScheduleItem struct {
	ID       string
	Code     string
	Title    string
	Start    time.Time
	End      time.Time
	Progress int
	Status   Status

	IsCritical bool
	Level      int

	// ParentID is the effective parent ("" for roots). DeclaredParentID keeps
	// the value from the source even when it was unknown or cyclic.
	ParentID         string
	DeclaredParentID string
	Children         []string

	// Index is the insertion position in the input slice.
	Index int
}

// HasChildren reports whether the item has at least one child row.
func (s *ScheduleItem) HasChildren() bool {
	return len(s.Children) > 0
}

// Duration returns End - Start.
func (s *ScheduleItem) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// WarningKind classifies a data-quality problem found while building a model.
type WarningKind string

const (
	WarnCyclicParent   WarningKind = "cyclic_parent"
	WarnUnknownParent  WarningKind = "unknown_parent"
	WarnMissingCode    WarningKind = "missing_code"
	WarnUnknownStatus  WarningKind = "unknown_status"
	WarnEndBeforeStart WarningKind = "end_before_start"
	WarnBadEstimate    WarningKind = "bad_estimate"
)

// Warning is a non-fatal data-quality finding. The affected item is still
// part of the model, repaired as described by Kind.
type Warning struct {
	Kind   WarningKind
	ItemID string
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: item %s: %s", w.Kind, w.ItemID, w.Detail)
}

// Model is the arena of schedule items keyed by id.
type Model struct {
	Items    map[string]*ScheduleItem
	Order    []string // ids in insertion order
	Warnings []Warning
}

// Get returns the item with the given id, or nil.
func (m *Model) Get(id string) *ScheduleItem {
	if m == nil {
		return nil
	}
	return m.Items[id]
}

// Len returns the number of items in the model.
func (m *Model) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Order)
}

type buildConfig struct {
	logger *slog.Logger
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

// WithLogger reports data-quality warnings through logger in addition to
// Model.Warnings.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(c *buildConfig) {
		c.logger = logger
	}
}

// Build normalizes raw items into a Model. Explicit planned dates win; missing
// dates fall back to now + insertion index days with a duration of
// ceil(hours/8) days. Cyclic or self-referential parents are cut so that the
// item becomes a root.
func Build(items []RawItem, critical IDSet, now time.Time, opts ...BuildOption) (*Model, error) {
	cfg := buildConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Model{
		Items: make(map[string]*ScheduleItem, len(items)),
		Order: make([]string, 0, len(items)),
	}

	// First pass: create all items.
	for i, raw := range items {
		if strings.TrimSpace(raw.ID) == "" {
			return nil, fmt.Errorf("item at index %d: empty id: %w", i, ErrInvalidItem)
		}
		if _, dup := m.Items[raw.ID]; dup {
			return nil, fmt.Errorf("item at index %d: duplicate id %q: %w", i, raw.ID, ErrInvalidItem)
		}

		status := raw.Status
		if !status.Valid() {
			m.warn(Warning{Kind: WarnUnknownStatus, ItemID: raw.ID,
				Detail: fmt.Sprintf("status %q treated as pending", raw.Status)})
			status = StatusPending
		}
		if raw.Code == "" {
			m.warn(Warning{Kind: WarnMissingCode, ItemID: raw.ID, Detail: "rendered at level 0"})
		}

		if h := raw.EstimatedDurationHours; h != nil && !(*h <= 0) && !usableEstimate(*h) {
			m.warn(Warning{Kind: WarnBadEstimate, ItemID: raw.ID,
				Detail: fmt.Sprintf("estimate %vh replaced by %vh", *h, DefaultDurationHours)})
		}
		start, end := deriveDates(raw, len(m.Order), now)
		if end.Before(start) {
			m.warn(Warning{Kind: WarnEndBeforeStart, ItemID: raw.ID,
				Detail: fmt.Sprintf("end %s clamped to start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))})
			end = start
		}

		m.Items[raw.ID] = &ScheduleItem{
			ID:               raw.ID,
			Code:             raw.Code,
			Title:            raw.Title,
			Start:            start,
			End:              end,
			Progress:         status.Progress(),
			Status:           status,
			IsCritical:       critical.Has(raw.ID),
			Level:            CodeLevel(raw.Code),
			DeclaredParentID: raw.ParentID,
			Index:            i,
		}
		m.Order = append(m.Order, raw.ID)
	}

	// Resolve effective parents.
	for _, id := range m.Order {
		item := m.Items[id]
		if item.DeclaredParentID == "" {
			continue
		}
		if _, ok := m.Items[item.DeclaredParentID]; !ok {
			m.warn(Warning{Kind: WarnUnknownParent, ItemID: id,
				Detail: fmt.Sprintf("parent %q not found, treated as root", item.DeclaredParentID)})
			continue
		}
		item.ParentID = item.DeclaredParentID
	}

	// Cut cycles: walking up from an item's parent must never reach the item.
	for _, id := range m.Order {
		item := m.Items[id]
		if item.ParentID == "" {
			continue
		}
		if m.reaches(item.ParentID, id) {
			m.warn(Warning{Kind: WarnCyclicParent, ItemID: id,
				Detail: fmt.Sprintf("parent %q forms a cycle, treated as root", item.ParentID)})
			item.ParentID = ""
		}
	}

	// Second pass: link children in encounter order.
	for _, id := range m.Order {
		item := m.Items[id]
		if item.ParentID == "" {
			continue
		}
		parent := m.Items[item.ParentID]
		parent.Children = append(parent.Children, id)
	}

	if cfg.logger != nil {
		for _, w := range m.Warnings {
			cfg.logger.Warn("schedule data quality",
				"kind", string(w.Kind), "item_id", w.ItemID, "detail", w.Detail)
		}
	}
	return m, nil
}

// reaches walks the effective parent chain starting at from and reports
// whether target is encountered. A visited set bounds the walk when the chain
// loops without passing through target.
func (m *Model) reaches(from, target string) bool {
	visited := make(map[string]bool)
	for cur := from; cur != ""; cur = m.Items[cur].ParentID {
		if cur == target {
			return true
		}
		if visited[cur] {
			return false
		}
		visited[cur] = true
	}
	return false
}

func (m *Model) warn(w Warning) {
	m.Warnings = append(m.Warnings, w)
}

func deriveDates(raw RawItem, seen int, now time.Time) (time.Time, time.Time) {
	hours := DefaultDurationHours
	if h := raw.EstimatedDurationHours; h != nil && usableEstimate(*h) {
		hours = *h
	}
	days := int(math.Ceil(hours / DefaultDurationHours))

	var start time.Time
	if raw.PlannedStart != nil {
		start = *raw.PlannedStart
	} else {
		start = now.AddDate(0, 0, seen)
	}

	var end time.Time
	if raw.PlannedEnd != nil {
		end = *raw.PlannedEnd
	} else {
		end = start.AddDate(0, 0, days)
	}
	return start, end
}

// usableEstimate is false for NaN, infinities, non-positive hours and
// estimates past MaxDurationDays.
func usableEstimate(hours float64) bool {
	return hours > 0 && hours/DefaultDurationHours <= MaxDurationDays
}

// CodeLevel returns the hierarchy depth encoded in a dotted WBS code:
// "1" is 0, "1.2" is 1. An empty code is level 0.
func CodeLevel(code string) int {
	if code == "" {
		return 0
	}
	return len(strings.Split(code, ".")) - 1
}

// IDSet is a set of item ids.
type IDSet map[string]struct{}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership. A nil set is empty.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Toggle returns a copy of s with id added or removed.
func (s IDSet) Toggle(id string) IDSet {
	next := make(IDSet, len(s)+1)
	for k := range s {
		next[k] = struct{}{}
	}
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return next
}

// Slice returns the ids in no particular order.
func (s IDSet) Slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}
