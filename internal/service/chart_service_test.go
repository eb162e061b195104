package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/alexanderramin/gantry/internal/app"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/gantt"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartRequest(projectID string) app.ChartRequest {
	req := app.NewChartRequest(projectID)
	now := testutil.Date(2026, 3, 2)
	req.Now = &now
	return req
}

func rowCodes(rows []*gantt.ScheduleItem) []string {
	codes := make([]string, len(rows))
	for i, r := range rows {
		codes[i] = r.Code
	}
	return codes
}

func TestChartService_Collapsed(t *testing.T) {
	r := setupRepos(t)
	proj, _ := importWebsite(t, r)
	svc := NewChartService(r.projects, r.items, r.deps, nil)

	resp, err := svc.Chart(context.Background(), chartRequest(proj.ID))
	require.NoError(t, err)
	assert.Equal(t, proj.ID, resp.Project.ID)
	assert.Equal(t, []string{"1", "2"}, rowCodes(resp.Layout.Rows))
	assert.Empty(t, resp.Warnings)
	assert.NotEmpty(t, resp.Layout.Commands)
}

func TestChartService_ExpandAllAndCritical(t *testing.T) {
	r := setupRepos(t)
	proj, byCode := importWebsite(t, r)
	svc := NewChartService(r.projects, r.items, r.deps, nil)

	req := chartRequest(proj.ID)
	req.ExpandAll = true
	resp, err := svc.Chart(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "1.1", "1.2", "2", "2.1"}, rowCodes(resp.Layout.Rows))
	assert.Equal(t, []string{byCode["1.1"].ID, byCode["1.2"].ID, byCode["2.1"].ID}, resp.Critical)
	assert.True(t, resp.Layout.Model.Get(byCode["1.2"].ID).IsCritical)
	assert.False(t, resp.Layout.Model.Get(byCode["1"].ID).IsCritical)

	require.Len(t, resp.Layout.Connectors, 2)
	for _, c := range resp.Layout.Connectors {
		assert.True(t, c.Critical, "both edges join critical items")
	}
	assert.True(t, resp.Expanded.Has(byCode["1"].ID))
	assert.True(t, resp.Expanded.Has(byCode["2"].ID))
}

func TestChartService_ExpandByCode(t *testing.T) {
	r := setupRepos(t)
	proj, _ := importWebsite(t, r)
	svc := NewChartService(r.projects, r.items, r.deps, nil)

	req := chartRequest(proj.ID)
	req.Expanded = []string{"1"}
	resp, err := svc.Chart(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "1.1", "1.2", "2"}, rowCodes(resp.Layout.Rows))
}

func TestChartService_CycleDegradesToPlainChart(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj, byCode := importWebsite(t, r)
	require.NoError(t, r.deps.Create(ctx, &domain.Dependency{PredecessorID: byCode["2.1"].ID, SuccessorID: byCode["1.1"].ID}))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	svc := NewChartService(r.projects, r.items, r.deps, logger)

	req := chartRequest(proj.ID)
	req.ExpandAll = true
	resp, err := svc.Chart(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, resp.Critical)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "critical chain unavailable")
	assert.Contains(t, logs.String(), "critical chain unavailable")
	assert.Len(t, resp.Layout.Rows, 5)
}

func TestChartService_SkipCritical(t *testing.T) {
	r := setupRepos(t)
	proj, _ := importWebsite(t, r)
	svc := NewChartService(r.projects, r.items, r.deps, nil)

	req := chartRequest(proj.ID)
	req.SkipCritical = true
	resp, err := svc.Chart(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Critical)
}

func TestChartService_InvalidRequests(t *testing.T) {
	r := setupRepos(t)
	svc := NewChartService(r.projects, r.items, r.deps, nil)
	ctx := context.Background()

	_, err := svc.Chart(ctx, app.ChartRequest{})
	var ucErr *app.UseCaseError
	require.True(t, errors.As(err, &ucErr))
	assert.Equal(t, app.ErrInvalidRequest, ucErr.Code)

	req := chartRequest("p1")
	req.Granularity = "fortnight"
	_, err = svc.Chart(ctx, req)
	require.True(t, errors.As(err, &ucErr))

	_, err = svc.Chart(ctx, chartRequest("missing"))
	assert.Error(t, err)
}

func TestChartService_EmptyProject(t *testing.T) {
	r := setupRepos(t)
	proj := seedProject(t, r)
	svc := NewChartService(r.projects, r.items, r.deps, nil)

	resp, err := svc.Chart(context.Background(), chartRequest(proj.ID))
	require.NoError(t, err)
	assert.Empty(t, resp.Layout.Rows)
	assert.NotEmpty(t, resp.Layout.Commands, "background and header still draw")
}
