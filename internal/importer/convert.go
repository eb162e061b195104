package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/google/uuid"
)

// ImportedProject is a converted import file, ready for persistence.
type ImportedProject struct {
	Project      *domain.Project
	Items        []*domain.WBSItem
	Dependencies []domain.Dependency
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, now time.Time) (*ImportedProject, error) {
	now = now.UTC()

	project := &domain.Project{
		ID:           uuid.New().String(),
		ShortID:      strings.ToUpper(schema.Project.ShortID),
		Name:         schema.Project.Name,
		Description:  schema.Project.Description,
		Status:       domain.ProjectActive,
		PlannedStart: parseOptionalDate(schema.Project.PlannedStart),
		PlannedEnd:   parseOptionalDate(schema.Project.PlannedEnd),
		BufferRatio:  domain.ValueOr(schema.Project.BufferRatio, domain.DefaultBufferRatio),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	refMap := make(map[string]*domain.WBSItem) // ref -> converted item
	childCount := make(map[string]int)         // parent id ("" for top level) -> children so far

	items := make([]*domain.WBSItem, 0, len(schema.Items))
	for _, it := range schema.Items {
		var parent *domain.WBSItem
		if it.ParentRef != nil && *it.ParentRef != "" {
			p, ok := refMap[*it.ParentRef]
			if !ok {
				return nil, fmt.Errorf("parent_ref %q not found for item %q", *it.ParentRef, it.Ref)
			}
			parent = p
		}

		parentKey, parentCode := "", ""
		var parentID *string
		if parent != nil {
			parentKey, parentCode = parent.ID, parent.Code
			pid := parent.ID
			parentID = &pid
		}

		code := it.Code
		if code == "" {
			code = domain.ChildCode(parentCode, childCount[parentKey])
		}

		w := &domain.WBSItem{
			ID:              uuid.New().String(),
			ProjectID:       project.ID,
			ParentID:        parentID,
			Code:            code,
			Title:           it.Title,
			Type:            domain.Coalesce(domain.ItemType(it.Type), domain.ItemTypeTask),
			Status:          domain.Coalesce(domain.ItemStatus(it.Status), domain.ItemPending),
			EstimatedHours:  it.EstimatedHours,
			AggressiveHours: it.AggressiveHours,
			SafeHours:       it.SafeHours,
			ActualHours:     it.ActualHours,
			PlannedStart:    parseOptionalDate(it.Start),
			PlannedEnd:      parseOptionalDate(it.End),
			Assignee:        it.Assignee,
			SortOrder:       childCount[parentKey],
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		childCount[parentKey]++
		refMap[it.Ref] = w
		items = append(items, w)
	}

	deps := make([]domain.Dependency, 0, len(schema.Dependencies))
	for _, d := range schema.Dependencies {
		pred, ok := refMap[d.PredecessorRef]
		if !ok {
			return nil, fmt.Errorf("predecessor_ref %q not found", d.PredecessorRef)
		}
		succ, ok := refMap[d.SuccessorRef]
		if !ok {
			return nil, fmt.Errorf("successor_ref %q not found", d.SuccessorRef)
		}
		deps = append(deps, domain.Dependency{
			PredecessorID: pred.ID,
			SuccessorID:   succ.ID,
			LagDays:       d.LagDays,
			CreatedAt:     now,
		})
	}

	return &ImportedProject{
		Project:      project,
		Items:        items,
		Dependencies: deps,
	}, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
