package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/gantry/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type WBSItemRepo interface {
	Create(ctx context.Context, w *domain.WBSItem) error
	GetByID(ctx context.Context, id string) (*domain.WBSItem, error)
	GetByCode(ctx context.Context, projectID, code string) (*domain.WBSItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WBSItem, error)
	ListChildren(ctx context.Context, projectID, parentID string) ([]*domain.WBSItem, error)
	CountChildren(ctx context.Context, projectID, parentID string) (int, error)
	Update(ctx context.Context, w *domain.WBSItem) error
	Delete(ctx context.Context, id string) error
}

type DependencyRepo interface {
	Create(ctx context.Context, d *domain.Dependency) error
	Delete(ctx context.Context, predecessorID, successorID string) error
	ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error)
	ListPredecessors(ctx context.Context, itemID string) ([]domain.Dependency, error)
	ListSuccessors(ctx context.Context, itemID string) ([]domain.Dependency, error)
}

type BufferHistoryRepo interface {
	Record(ctx context.Context, s *domain.BufferSnapshot) error
	ListByProject(ctx context.Context, projectID string, limit int) ([]*domain.BufferSnapshot, error)
}
