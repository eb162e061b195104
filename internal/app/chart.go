package app

import (
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/gantt"
)

type ChartRequest struct {
	ProjectID    string
	Granularity  gantt.Granularity
	Expanded     []string
	ExpandAll    bool
	ScrollOffset float64
	Now          *time.Time
	Dimensions   gantt.Dimensions
	Theme        string
	Overlay      gantt.Overlay

	Reschedulable bool
	LexicalOrder  bool
	// SkipCritical renders without running the critical chain analysis.
	SkipCritical bool
}

func NewChartRequest(projectID string) ChartRequest {
	return ChartRequest{
		ProjectID:   projectID,
		Granularity: gantt.GranularityWeek,
		Dimensions:  gantt.DefaultDimensions(),
		Theme:       "light",
	}
}

type ChartResponse struct {
	Project  *domain.Project
	Layout   *gantt.Layout
	Critical []string
	// Expanded is the effective expansion set, so hosts can toggle from it.
	Expanded gantt.IDSet
	Warnings []string
}
