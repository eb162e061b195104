package app

import (
	"context"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/importer"
)

type ChartUseCase interface {
	Chart(ctx context.Context, req ChartRequest) (*ChartResponse, error)
}

type ChainUseCase interface {
	Chain(ctx context.Context, req ChainRequest) (*ChainResponse, error)
}

type RescheduleUseCase interface {
	Reschedule(ctx context.Context, req RescheduleRequest) (*RescheduleResponse, error)
}

type ImportResult struct {
	Project         *domain.Project
	ItemCount       int
	DependencyCount int
}

type ImportProjectUseCase interface {
	ImportProject(ctx context.Context, filePath string) (*ImportResult, error)
	ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
