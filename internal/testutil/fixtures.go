package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithPlannedStart(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.PlannedStart = &d
	}
}

func WithPlannedEnd(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.PlannedEnd = &d
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithBufferRatio(r float64) ProjectOption {
	return func(p *domain.Project) {
		p.BufferRatio = r
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:          uuid.New().String(),
		ShortID:     defaultShortID(name),
		Name:        name,
		Status:      domain.ProjectActive,
		BufferRatio: domain.DefaultBufferRatio,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WBSItem options
type ItemOption func(*domain.WBSItem)

func WithParent(id string) ItemOption {
	return func(w *domain.WBSItem) {
		w.ParentID = &id
	}
}

func WithItemType(t domain.ItemType) ItemOption {
	return func(w *domain.WBSItem) {
		w.Type = t
	}
}

func WithItemStatus(s domain.ItemStatus) ItemOption {
	return func(w *domain.WBSItem) {
		w.Status = s
	}
}

// WithDates sets the planned start and end.
func WithDates(start, end time.Time) ItemOption {
	return func(w *domain.WBSItem) {
		w.PlannedStart = &start
		w.PlannedEnd = &end
	}
}

// WithHours sets the aggressive and safe estimates.
func WithHours(aggressive, safe float64) ItemOption {
	return func(w *domain.WBSItem) {
		w.AggressiveHours = &aggressive
		w.SafeHours = &safe
	}
}

func WithEstimate(h float64) ItemOption {
	return func(w *domain.WBSItem) {
		w.EstimatedHours = &h
	}
}

func WithActual(h float64) ItemOption {
	return func(w *domain.WBSItem) {
		w.ActualHours = &h
	}
}

func WithSortOrder(i int) ItemOption {
	return func(w *domain.WBSItem) {
		w.SortOrder = i
	}
}

func WithAssignee(a string) ItemOption {
	return func(w *domain.WBSItem) {
		w.Assignee = a
	}
}

// NewTestItem builds a pending task. The code is used verbatim, so callers
// keep it consistent with any parent they set.
func NewTestItem(projectID, code, title string, opts ...ItemOption) *domain.WBSItem {
	now := time.Now().UTC().Truncate(time.Second)
	w := &domain.WBSItem{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Code:      code,
		Title:     title,
		Type:      domain.ItemTypeTask,
		Status:    domain.ItemPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func NewTestDependency(predecessorID, successorID string, lagDays int) *domain.Dependency {
	return &domain.Dependency{
		PredecessorID: predecessorID,
		SuccessorID:   successorID,
		LagDays:       lagDays,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
