package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/require"
)

type repos struct {
	projects repository.ProjectRepo
	items    repository.WBSItemRepo
	deps     repository.DependencyRepo
	history  repository.BufferHistoryRepo
	uow      db.UnitOfWork
}

func setupRepos(t *testing.T) repos {
	return setupReposOn(testutil.NewTestDB(t))
}

func setupReposOn(database *sql.DB) repos {
	return repos{
		projects: repository.NewSQLiteProjectRepo(database),
		items:    repository.NewSQLiteWBSItemRepo(database),
		deps:     repository.NewSQLiteDependencyRepo(database),
		history:  repository.NewSQLiteBufferHistoryRepo(database),
		uow:      testutil.NewTestUoW(database),
	}
}

const websiteFixture = "../importer/testdata/website.yaml"

// importWebsite loads the shared YAML fixture and returns its project and
// items keyed by code.
func importWebsite(t *testing.T, r repos) (*domain.Project, map[string]*domain.WBSItem) {
	t.Helper()
	ctx := context.Background()
	res, err := NewImportService(r.uow).ImportProject(ctx, websiteFixture)
	require.NoError(t, err)

	items, err := r.items.ListByProject(ctx, res.Project.ID)
	require.NoError(t, err)
	byCode := make(map[string]*domain.WBSItem, len(items))
	for _, w := range items {
		byCode[w.Code] = w
	}
	return res.Project, byCode
}

func ptrFloat(f float64) *float64 { return &f }
func ptrStr(s string) *string     { return &s }
