package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/app"
	"github.com/alexanderramin/gantry/internal/gantt"
	"github.com/alexanderramin/gantry/internal/repository"
)

type rescheduleService struct {
	items    repository.WBSItemRepo
	observer UseCaseObserver
}

func NewRescheduleService(items repository.WBSItemRepo, observers ...UseCaseObserver) RescheduleService {
	return &rescheduleService{items: items, observer: useCaseObserverOrNoop(observers)}
}

// Reschedule stores new planned dates for an item. A shift request moves the
// span the chart currently shows, so undated items get dates derived the same
// way the layout engine derives them.
func (s *rescheduleService) Reschedule(ctx context.Context, req app.RescheduleRequest) (resp *app.RescheduleResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"item_id": req.ItemID, "shift": req.Shift}
	defer func() { observe(ctx, s.observer, "reschedule", startedAt, fields, err) }()

	if req.ItemID == "" {
		return nil, &app.UseCaseError{Code: app.ErrInvalidRequest, Message: "item id is required"}
	}
	now := nowOr(req.Now)

	item, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	resp = &app.RescheduleResponse{PreviousStart: item.PlannedStart, PreviousEnd: item.PlannedEnd}

	start, end := req.Start, req.End
	if req.Shift != 0 {
		siblings, err := s.items.ListByProject(ctx, item.ProjectID)
		if err != nil {
			return nil, err
		}
		model, err := gantt.Build(toRawItems(siblings), nil, now)
		if err != nil {
			return nil, fmt.Errorf("deriving current dates: %w", err)
		}
		shown := model.Get(item.ID)
		if shown == nil {
			return nil, &app.UseCaseError{Code: app.ErrItemNotFound, Message: item.Code}
		}
		start, end = gantt.ShiftDays(shown, req.Shift)
	}

	if start.IsZero() || end.IsZero() {
		return nil, &app.UseCaseError{Code: app.ErrInvalidRequest, Message: "start and end dates are required"}
	}
	if !end.After(start) {
		return nil, &app.UseCaseError{Code: app.ErrInvalidRequest,
			Message: fmt.Sprintf("end %s must be after start %s", end.Format(dateLayout), start.Format(dateLayout))}
	}

	item.Reschedule(start.UTC(), end.UTC(), now)
	if err = s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	fields["start"] = start.Format(dateLayout)
	fields["end"] = end.Format(dateLayout)
	resp.Item = item
	return resp, nil
}
