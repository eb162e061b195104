package service

import (
	"context"

	"github.com/alexanderramin/gantry/internal/app"
	"github.com/alexanderramin/gantry/internal/domain"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve finds a project by short ID (case-insensitive) or full ID.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

// CreateItemInput describes a new WBS item. Code and SortOrder are assigned
// from the parent's existing children.
type CreateItemInput struct {
	ProjectID       string
	ParentID        string
	Title           string
	Type            domain.ItemType
	Status          domain.ItemStatus
	EstimatedHours  *float64
	AggressiveHours *float64
	SafeHours       *float64
	Assignee        string
	PlannedStart    *string
	PlannedEnd      *string
}

type WBSService interface {
	Create(ctx context.Context, in CreateItemInput) (*domain.WBSItem, error)
	GetByID(ctx context.Context, id string) (*domain.WBSItem, error)
	// Resolve finds an item of the project by WBS code or full ID.
	Resolve(ctx context.Context, projectID, ref string) (*domain.WBSItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WBSItem, error)
	Update(ctx context.Context, w *domain.WBSItem) error
	SetStatus(ctx context.Context, id string, status domain.ItemStatus, actualHours *float64) (*domain.WBSItem, error)
	// Move reparents an item (empty newParentID for top level) and recodes it
	// and its descendants.
	Move(ctx context.Context, id, newParentID string) (*domain.WBSItem, error)
	Delete(ctx context.Context, id string) error
}

type DependencyService interface {
	Add(ctx context.Context, predecessorID, successorID string, lagDays int) error
	Remove(ctx context.Context, predecessorID, successorID string) error
	ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error)
}

type ImportResult = app.ImportResult

type ImportService interface {
	app.ImportProjectUseCase
}

type ChartService interface {
	app.ChartUseCase
}

type ChainService interface {
	app.ChainUseCase
}

type RescheduleService interface {
	app.RescheduleUseCase
}
