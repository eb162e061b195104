package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/gantry/internal/app"
	"github.com/alexanderramin/gantry/internal/ccpm"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainService_Chain(t *testing.T) {
	r := setupRepos(t)
	proj, _ := importWebsite(t, r)
	svc := NewChainService(r.projects, r.items, r.deps, r.history)

	resp, err := svc.Chain(context.Background(), app.NewChainRequest(proj.ID))
	require.NoError(t, err)

	codes := make([]string, len(resp.Chain))
	for i, l := range resp.Chain {
		codes[i] = l.Item.Code
	}
	assert.Equal(t, []string{"1.1", "1.2", "2.1"}, codes)
	// 16 + 24, one lag day, then the 40h plain estimate.
	assert.Equal(t, 88.0, resp.TotalHours)
	assert.Equal(t, 48.0, resp.Chain[2].Start)

	assert.Equal(t, 12.0, resp.Buffer.SizeHours)
	assert.Equal(t, 0.0, resp.Buffer.ConsumedHours)
	assert.Equal(t, ccpm.FeverGreen, resp.Buffer.Fever)
	assert.Empty(t, resp.History)
}

func TestChainService_RecordsHistory(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj, _ := importWebsite(t, r)
	svc := NewChainService(r.projects, r.items, r.deps, r.history)

	for day := 2; day <= 3; day++ {
		req := app.NewChainRequest(proj.ID)
		req.Record = true
		now := testutil.Date(2026, 3, day)
		req.Now = &now
		resp, err := svc.Chain(ctx, req)
		require.NoError(t, err)
		require.Len(t, resp.History, day-1)
		assert.True(t, now.Equal(resp.History[day-2].RecordedAt))
		assert.Equal(t, "green", resp.History[day-2].Fever)
	}
}

func TestChainService_Cycle(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj, byCode := importWebsite(t, r)
	require.NoError(t, r.deps.Create(ctx, &domain.Dependency{PredecessorID: byCode["2.1"].ID, SuccessorID: byCode["1.1"].ID}))

	_, err := NewChainService(r.projects, r.items, r.deps, r.history).Chain(ctx, app.NewChainRequest(proj.ID))
	var ucErr *app.UseCaseError
	require.True(t, errors.As(err, &ucErr))
	assert.Equal(t, app.ErrCyclicGraph, ucErr.Code)
}
