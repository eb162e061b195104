package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
)

type dependencyService struct {
	deps     repository.DependencyRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewDependencyService(deps repository.DependencyRepo, uow db.UnitOfWork, observers ...UseCaseObserver) DependencyService {
	return &dependencyService{deps: deps, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Add links two items of the same project. Edges that would close a cycle
// are rejected.
func (s *dependencyService) Add(ctx context.Context, predecessorID, successorID string, lagDays int) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"predecessor_id": predecessorID, "successor_id": successorID, "lag_days": lagDays}
	defer func() { observe(ctx, s.observer, "add-dependency", startedAt, fields, err) }()

	if predecessorID == successorID {
		return fmt.Errorf("an item cannot depend on itself")
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWBSItemRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		pred, err := txItems.GetByID(ctx, predecessorID)
		if err != nil {
			return fmt.Errorf("loading predecessor: %w", err)
		}
		succ, err := txItems.GetByID(ctx, successorID)
		if err != nil {
			return fmt.Errorf("loading successor: %w", err)
		}
		if pred.ProjectID != succ.ProjectID {
			return fmt.Errorf("%s and %s belong to different projects", pred.Code, succ.Code)
		}

		existing, err := txDeps.ListByProject(ctx, pred.ProjectID)
		if err != nil {
			return err
		}
		if reaches(existing, succ.ID, pred.ID) {
			return fmt.Errorf("%s -> %s would create a dependency cycle", pred.Code, succ.Code)
		}

		return txDeps.Create(ctx, &domain.Dependency{
			PredecessorID: pred.ID,
			SuccessorID:   succ.ID,
			LagDays:       lagDays,
			CreatedAt:     time.Now().UTC(),
		})
	})
}

func (s *dependencyService) Remove(ctx context.Context, predecessorID, successorID string) error {
	return s.deps.Delete(ctx, predecessorID, successorID)
}

func (s *dependencyService) ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error) {
	return s.deps.ListByProject(ctx, projectID)
}

// reaches reports whether target is reachable from start along the edges.
func reaches(deps []domain.Dependency, start, target string) bool {
	adj := make(map[string][]string)
	for _, d := range deps {
		adj[d.PredecessorID] = append(adj[d.PredecessorID], d.SuccessorID)
	}
	seen := map[string]bool{start: true}
	stack := []string{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == target {
			return true
		}
		for _, next := range adj[n] {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}
