package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/gantry/internal/app"
	"github.com/alexanderramin/gantry/internal/ccpm"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/google/uuid"
)

type chainService struct {
	projects repository.ProjectRepo
	items    repository.WBSItemRepo
	deps     repository.DependencyRepo
	history  repository.BufferHistoryRepo
	observer UseCaseObserver
}

func NewChainService(
	projects repository.ProjectRepo,
	items repository.WBSItemRepo,
	deps repository.DependencyRepo,
	history repository.BufferHistoryRepo,
	observers ...UseCaseObserver,
) ChainService {
	return &chainService{
		projects: projects,
		items:    items,
		deps:     deps,
		history:  history,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *chainService) Chain(ctx context.Context, req app.ChainRequest) (resp *app.ChainResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": req.ProjectID, "record": req.Record}
	defer func() { observe(ctx, s.observer, "critical-chain", startedAt, fields, err) }()

	if req.ProjectID == "" {
		return nil, &app.UseCaseError{Code: app.ErrInvalidRequest, Message: "project id is required"}
	}

	project, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	deps, err := s.deps.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	values := derefItems(items)
	analysis, err := ccpm.Analyze(values, deps)
	if err != nil {
		if errors.Is(err, ccpm.ErrCycle) {
			return nil, &app.UseCaseError{Code: app.ErrCyclicGraph, Message: err.Error()}
		}
		return nil, err
	}

	byID := make(map[string]*domain.WBSItem, len(items))
	for _, w := range items {
		byID[w.ID] = w
	}

	resp = &app.ChainResponse{
		Project:    project,
		TotalHours: analysis.TotalHours,
		Buffer:     ccpm.Buffers(values, project.BufferRatio),
	}
	for _, id := range analysis.Chain {
		ts := analysis.Tasks[id]
		resp.Chain = append(resp.Chain, app.ChainLink{
			Item:     app.RefOf(byID[id]),
			Duration: ts.Duration,
			Start:    ts.ES,
			Finish:   ts.EF,
		})
	}
	fields["chain_length"] = len(resp.Chain)
	fields["fever"] = string(resp.Buffer.Fever)

	if req.Record {
		snap := &domain.BufferSnapshot{
			ID:              uuid.New().String(),
			ProjectID:       project.ID,
			ConsumedPercent: resp.Buffer.ConsumedPercent,
			ProgressPercent: resp.Buffer.ProgressPercent,
			Fever:           string(resp.Buffer.Fever),
			RecordedAt:      nowOr(req.Now),
		}
		if err = s.history.Record(ctx, snap); err != nil {
			return nil, err
		}
	}

	if req.HistoryLimit > 0 {
		resp.History, err = s.history.ListByProject(ctx, project.ID, req.HistoryLimit)
		if err != nil {
			return nil, err
		}
	}
	return resp, nil
}
