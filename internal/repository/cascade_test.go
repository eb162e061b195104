package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_ProjectToItems verifies that deleting a project removes its
// WBS items and their dependency edges.
func TestCascadeDelete_ProjectToItems(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projRepo := NewSQLiteProjectRepo(db)
	itemRepo := NewSQLiteWBSItemRepo(db)
	depRepo := NewSQLiteDependencyRepo(db)

	proj := seedProject(t, ctx, projRepo)
	a := testutil.NewTestItem(proj.ID, "1", "A")
	b := testutil.NewTestItem(proj.ID, "2", "B")
	require.NoError(t, itemRepo.Create(ctx, a))
	require.NoError(t, itemRepo.Create(ctx, b))
	require.NoError(t, depRepo.Create(ctx, testutil.NewTestDependency(a.ID, b.ID, 0)))

	require.NoError(t, projRepo.Delete(ctx, proj.ID))

	_, err := itemRepo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound, "item should be cascade-deleted with its project")
	succ, err := depRepo.ListSuccessors(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, succ)
}

// TestCascadeDelete_ParentToChildren verifies wbs_items parent_id cascade.
func TestCascadeDelete_ParentToChildren(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	itemRepo := NewSQLiteWBSItemRepo(db)
	proj := seedProject(t, ctx, NewSQLiteProjectRepo(db))

	phase := testutil.NewTestItem(proj.ID, "1", "Phase", testutil.WithItemType(domain.ItemTypePhase))
	child := testutil.NewTestItem(proj.ID, "1.1", "Child", testutil.WithParent(phase.ID))
	grandchild := testutil.NewTestItem(proj.ID, "1.1.1", "Grandchild",
		testutil.WithParent(child.ID), testutil.WithItemType(domain.ItemTypeSubtask))
	require.NoError(t, itemRepo.Create(ctx, phase))
	require.NoError(t, itemRepo.Create(ctx, child))
	require.NoError(t, itemRepo.Create(ctx, grandchild))

	require.NoError(t, itemRepo.Delete(ctx, phase.ID))

	all, err := itemRepo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, all)
}

// TestCascadeDelete_ItemToDependencies verifies edges go when either end does.
func TestCascadeDelete_ItemToDependencies(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	itemRepo := NewSQLiteWBSItemRepo(db)
	depRepo := NewSQLiteDependencyRepo(db)
	proj := seedProject(t, ctx, NewSQLiteProjectRepo(db))

	a := testutil.NewTestItem(proj.ID, "1", "A")
	b := testutil.NewTestItem(proj.ID, "2", "B")
	require.NoError(t, itemRepo.Create(ctx, a))
	require.NoError(t, itemRepo.Create(ctx, b))
	require.NoError(t, depRepo.Create(ctx, testutil.NewTestDependency(a.ID, b.ID, 0)))

	require.NoError(t, itemRepo.Delete(ctx, b.ID))

	deps, err := depRepo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, deps)
}
