package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/google/uuid"
)

type wbsService struct {
	items    repository.WBSItemRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewWBSService(items repository.WBSItemRepo, uow db.UnitOfWork, observers ...UseCaseObserver) WBSService {
	return &wbsService{items: items, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *wbsService) Create(ctx context.Context, in CreateItemInput) (item *domain.WBSItem, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": in.ProjectID, "parent_id": in.ParentID}
	defer func() { observe(ctx, s.observer, "create-wbs-item", startedAt, fields, err) }()

	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("item title is required")
	}
	itemType := domain.Coalesce(in.Type, domain.ItemTypeTask)
	if !itemType.Valid() {
		return nil, fmt.Errorf("invalid item type %q", itemType)
	}
	status := domain.Coalesce(in.Status, domain.ItemPending)
	if !status.Valid() {
		return nil, fmt.Errorf("invalid item status %q", status)
	}
	start, err := parseOptionalDate(in.PlannedStart)
	if err != nil {
		return nil, fmt.Errorf("parsing start date: %w", err)
	}
	end, err := parseOptionalDate(in.PlannedEnd)
	if err != nil {
		return nil, fmt.Errorf("parsing end date: %w", err)
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, fmt.Errorf("end date %s is before start date %s", end.Format(dateLayout), start.Format(dateLayout))
	}

	now := time.Now().UTC()
	item = &domain.WBSItem{
		ID:              uuid.New().String(),
		ProjectID:       in.ProjectID,
		Title:           in.Title,
		Type:            itemType,
		Status:          status,
		EstimatedHours:  in.EstimatedHours,
		AggressiveHours: in.AggressiveHours,
		SafeHours:       in.SafeHours,
		PlannedStart:    start,
		PlannedEnd:      end,
		Assignee:        in.Assignee,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWBSItemRepo(tx)

		parentCode := ""
		if in.ParentID != "" {
			parent, err := txItems.GetByID(ctx, in.ParentID)
			if err != nil {
				return fmt.Errorf("loading parent: %w", err)
			}
			if parent.ProjectID != in.ProjectID {
				return fmt.Errorf("parent %s belongs to another project", parent.Code)
			}
			parentCode = parent.Code
			pid := parent.ID
			item.ParentID = &pid
		}

		count, err := txItems.CountChildren(ctx, in.ProjectID, in.ParentID)
		if err != nil {
			return err
		}
		item.Code = domain.ChildCode(parentCode, count)
		item.SortOrder = count
		return txItems.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	fields["code"] = item.Code
	return item, nil
}

func (s *wbsService) GetByID(ctx context.Context, id string) (*domain.WBSItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *wbsService) Resolve(ctx context.Context, projectID, ref string) (*domain.WBSItem, error) {
	w, err := s.items.GetByCode(ctx, projectID, ref)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	w, err = s.items.GetByID(ctx, ref)
	if err == nil && w.ProjectID == projectID {
		return w, nil
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return nil, fmt.Errorf("item %q: %w", ref, repository.ErrNotFound)
}

func (s *wbsService) ListByProject(ctx context.Context, projectID string) ([]*domain.WBSItem, error) {
	return s.items.ListByProject(ctx, projectID)
}

func (s *wbsService) Update(ctx context.Context, w *domain.WBSItem) error {
	if !w.Type.Valid() {
		return fmt.Errorf("invalid item type %q", w.Type)
	}
	if !w.Status.Valid() {
		return fmt.Errorf("invalid item status %q", w.Status)
	}
	w.UpdatedAt = time.Now().UTC()
	return s.items.Update(ctx, w)
}

func (s *wbsService) SetStatus(ctx context.Context, id string, status domain.ItemStatus, actualHours *float64) (item *domain.WBSItem, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"item_id": id, "status": string(status)}
	defer func() { observe(ctx, s.observer, "set-item-status", startedAt, fields, err) }()

	if !status.Valid() {
		return nil, fmt.Errorf("invalid item status %q", status)
	}
	if actualHours != nil && *actualHours < 0 {
		return nil, fmt.Errorf("actual hours must not be negative")
	}
	item, err = s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Status = status
	if actualHours != nil {
		item.ActualHours = actualHours
	}
	item.UpdatedAt = time.Now().UTC()
	if err = s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *wbsService) Move(ctx context.Context, id, newParentID string) (item *domain.WBSItem, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"item_id": id, "parent_id": newParentID}
	defer func() { observe(ctx, s.observer, "move-wbs-item", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWBSItemRepo(tx)

		var err error
		item, err = txItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if item.ParentIDValue() == newParentID {
			return nil
		}

		all, err := txItems.ListByProject(ctx, item.ProjectID)
		if err != nil {
			return err
		}
		byID := make(map[string]*domain.WBSItem, len(all))
		for _, w := range all {
			byID[w.ID] = w
		}

		parentCode := ""
		if newParentID != "" {
			parent, ok := byID[newParentID]
			if !ok {
				return fmt.Errorf("new parent %q: %w", newParentID, repository.ErrNotFound)
			}
			for cur, steps := parent, 0; cur != nil && steps <= len(all); cur, steps = byID[cur.ParentIDValue()], steps+1 {
				if cur.ID == item.ID {
					return fmt.Errorf("cannot move %s under itself or its descendant %s", item.Code, parent.Code)
				}
			}
			parentCode = parent.Code
		}

		count, err := txItems.CountChildren(ctx, item.ProjectID, newParentID)
		if err != nil {
			return err
		}
		oldCode := item.Code
		newCode := domain.ChildCode(parentCode, count)
		now := time.Now().UTC()

		if newParentID == "" {
			item.ParentID = nil
		} else {
			pid := newParentID
			item.ParentID = &pid
		}
		item.Code = newCode
		item.SortOrder = count
		item.UpdatedAt = now
		if err := txItems.Update(ctx, item); err != nil {
			return err
		}

		for _, w := range descendantsOf(all, item.ID) {
			if !strings.HasPrefix(w.Code, oldCode+".") {
				continue
			}
			w.Code = newCode + strings.TrimPrefix(w.Code, oldCode)
			w.UpdatedAt = now
			if err := txItems.Update(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *wbsService) Delete(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}

// descendantsOf returns every item below rootID, walking parent links.
func descendantsOf(all []*domain.WBSItem, rootID string) []*domain.WBSItem {
	children := make(map[string][]*domain.WBSItem)
	for _, w := range all {
		if w.ParentID != nil {
			children[*w.ParentID] = append(children[*w.ParentID], w)
		}
	}
	var out []*domain.WBSItem
	seen := map[string]bool{rootID: true}
	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, c := range children[id] {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			out = append(out, c)
			queue = append(queue, c.ID)
		}
	}
	return out
}
