package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/importer"
	"github.com/alexanderramin/gantry/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportProject(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"short_id": schema.Project.ShortID}
	defer func() { observe(ctx, s.observer, "import-project", startedAt, fields, err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, importer.JoinValidationErrors(errs)
	}

	generated, err := importer.Convert(schema, time.Now())
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}
	fields["item_count"] = len(generated.Items)
	fields["dependency_count"] = len(generated.Dependencies)

	// Persist all entities atomically
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txItems := repository.NewSQLiteWBSItemRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		if err := txProjects.Create(ctx, generated.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for _, w := range generated.Items {
			if err := txItems.Create(ctx, w); err != nil {
				return fmt.Errorf("creating item %s %q: %w", w.Code, w.Title, err)
			}
		}
		for i := range generated.Dependencies {
			if err := txDeps.Create(ctx, &generated.Dependencies[i]); err != nil {
				return fmt.Errorf("creating dependency: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Project:         generated.Project,
		ItemCount:       len(generated.Items),
		DependencyCount: len(generated.Dependencies),
	}, nil
}
