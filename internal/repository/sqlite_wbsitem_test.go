package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProject(t *testing.T, ctx context.Context, repo *SQLiteProjectRepo) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject("Seed")
	require.NoError(t, repo.Create(ctx, p))
	return p
}

func TestWBSItemRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := seedProject(t, ctx, NewSQLiteProjectRepo(db))
	repo := NewSQLiteWBSItemRepo(db)

	start, end := testutil.Date(2026, 3, 2), testutil.Date(2026, 3, 6)
	item := testutil.NewTestItem(proj.ID, "1", "Design",
		testutil.WithDates(start, end),
		testutil.WithHours(16, 24),
		testutil.WithAssignee("kim"),
	)
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Design", got.Title)
	assert.Equal(t, domain.ItemTypeTask, got.Type)
	assert.Equal(t, domain.ItemPending, got.Status)
	assert.Nil(t, got.ParentID)
	assert.Nil(t, got.EstimatedHours)
	require.NotNil(t, got.AggressiveHours)
	assert.Equal(t, 16.0, *got.AggressiveHours)
	assert.Equal(t, 24.0, *got.SafeHours)
	assert.True(t, start.Equal(*got.PlannedStart))
	assert.True(t, end.Equal(*got.PlannedEnd))
	assert.Equal(t, "kim", got.Assignee)

	byCode, err := repo.GetByCode(ctx, proj.ID, "1")
	require.NoError(t, err)
	assert.Equal(t, item.ID, byCode.ID)

	_, err = repo.GetByCode(ctx, proj.ID, "9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWBSItemRepo_ChildrenAndCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := seedProject(t, ctx, NewSQLiteProjectRepo(db))
	repo := NewSQLiteWBSItemRepo(db)

	phase := testutil.NewTestItem(proj.ID, "1", "Phase", testutil.WithItemType(domain.ItemTypePhase))
	require.NoError(t, repo.Create(ctx, phase))
	second := testutil.NewTestItem(proj.ID, "1.2", "Second", testutil.WithParent(phase.ID), testutil.WithSortOrder(1))
	first := testutil.NewTestItem(proj.ID, "1.1", "First", testutil.WithParent(phase.ID), testutil.WithSortOrder(0))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	top, err := repo.ListChildren(ctx, proj.ID, "")
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, phase.ID, top[0].ID)

	kids, err := repo.ListChildren(ctx, proj.ID, phase.ID)
	require.NoError(t, err)
	require.Len(t, kids, 2)
	assert.Equal(t, "First", kids[0].Title)
	assert.Equal(t, "Second", kids[1].Title)

	n, err := repo.CountChildren(ctx, proj.ID, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = repo.CountChildren(ctx, proj.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestWBSItemRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := seedProject(t, ctx, NewSQLiteProjectRepo(db))
	repo := NewSQLiteWBSItemRepo(db)

	item := testutil.NewTestItem(proj.ID, "1", "Build")
	require.NoError(t, repo.Create(ctx, item))

	item.Status = domain.ItemInProgress
	item.Reschedule(testutil.Date(2026, 4, 1), testutil.Date(2026, 4, 3), item.UpdatedAt)
	actual := 5.0
	item.ActualHours = &actual
	require.NoError(t, repo.Update(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemInProgress, got.Status)
	assert.Equal(t, 5.0, *got.ActualHours)
	assert.Equal(t, "2026-04-03", got.PlannedEnd.Format("2006-01-02"))

	require.NoError(t, repo.Delete(ctx, item.ID))
	_, err = repo.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, item.ID), ErrNotFound)
}

func TestWBSItemRepo_RejectsUnknownType(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := seedProject(t, ctx, NewSQLiteProjectRepo(db))
	repo := NewSQLiteWBSItemRepo(db)

	item := testutil.NewTestItem(proj.ID, "1", "Bad", testutil.WithItemType("epic"))
	assert.Error(t, repo.Create(ctx, item), "type CHECK constraint")
}
