package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/gantry/internal/app"
	"github.com/alexanderramin/gantry/internal/ccpm"
	"github.com/alexanderramin/gantry/internal/gantt"
	"github.com/alexanderramin/gantry/internal/repository"
)

type chartService struct {
	projects repository.ProjectRepo
	items    repository.WBSItemRepo
	deps     repository.DependencyRepo
	logger   *slog.Logger
	observer UseCaseObserver
}

// NewChartService builds charts from the store. logger receives data-quality
// warnings from the layout engine; nil discards them.
func NewChartService(
	projects repository.ProjectRepo,
	items repository.WBSItemRepo,
	deps repository.DependencyRepo,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) ChartService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &chartService{
		projects: projects,
		items:    items,
		deps:     deps,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *chartService) Chart(ctx context.Context, req app.ChartRequest) (resp *app.ChartResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": req.ProjectID, "granularity": string(req.Granularity)}
	defer func() { observe(ctx, s.observer, "chart", startedAt, fields, err) }()

	if req.ProjectID == "" {
		return nil, &app.UseCaseError{Code: app.ErrInvalidRequest, Message: "project id is required"}
	}
	if req.Granularity != "" {
		if _, perr := gantt.ParseGranularity(string(req.Granularity)); perr != nil {
			return nil, &app.UseCaseError{Code: app.ErrInvalidRequest, Message: perr.Error()}
		}
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

	resp = &app.ChartResponse{Project: project}

	critical := gantt.IDSet{}
	if !req.SkipCritical {
		analysis, aerr := ccpm.Analyze(derefItems(items), deps)
		switch {
		case errors.Is(aerr, ccpm.ErrCycle):
			s.logger.WarnContext(ctx, "critical chain unavailable", "project", project.ShortID, "error", aerr)
			resp.Warnings = append(resp.Warnings, "critical chain unavailable: "+aerr.Error())
		case aerr != nil:
			return nil, aerr
		default:
			critical = gantt.NewIDSet(analysis.Chain...)
			resp.Critical = analysis.Chain
		}
	}

	resp.Expanded = resolveExpanded(items, req.Expanded, req.ExpandAll)

	layout, err := gantt.Compute(gantt.Input{
		Items:         toRawItems(items),
		Dependencies:  toGanttDeps(deps),
		Critical:      critical,
		Expanded:      resp.Expanded,
		Granularity:   req.Granularity,
		ScrollOffset:  req.ScrollOffset,
		Dimensions:    req.Dimensions,
		Now:           nowOr(req.Now),
		Theme:         gantt.ThemeByName(req.Theme),
		Overlay:       req.Overlay,
		Reschedulable: req.Reschedulable,
		LexicalOrder:  req.LexicalOrder,
		Logger:        s.logger,
	})
	if err != nil {
		return nil, err
	}
	resp.Layout = layout
	for _, w := range layout.Model.Warnings {
		resp.Warnings = append(resp.Warnings, w.String())
	}

	fields["rows"] = len(layout.Rows)
	fields["critical"] = len(resp.Critical)
	return resp, nil
}
