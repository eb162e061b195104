package app

import (
	"time"

	"github.com/alexanderramin/gantry/internal/ccpm"
	"github.com/alexanderramin/gantry/internal/domain"
)

type ChainRequest struct {
	ProjectID string
	Now       *time.Time
	// Record appends the current buffer state to the project's fever history.
	Record       bool
	HistoryLimit int
}

func NewChainRequest(projectID string) ChainRequest {
	return ChainRequest{ProjectID: projectID, HistoryLimit: 10}
}

type ChainLink struct {
	Item     ItemRef
	Duration float64
	Start    float64
	Finish   float64
}

type ChainResponse struct {
	Project    *domain.Project
	Chain      []ChainLink
	TotalHours float64
	Buffer     ccpm.BufferStatus
	History    []*domain.BufferSnapshot
}
