package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/gantry/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver_RecordsUseCases(t *testing.T) {
	r := setupRepos(t)
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	_, err := NewImportService(r.uow, obs).ImportProject(context.Background(), websiteFixture)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "service_use_case")
	assert.Contains(t, out, "use_case=import-project")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "item_count=5")
}

func TestLogUseCaseObserver_RecordsFailures(t *testing.T) {
	r := setupRepos(t)
	var buf bytes.Buffer
	svc := NewProjectService(r.projects, NewLogUseCaseObserver(&buf))

	require.Error(t, svc.Delete(context.Background(), "ghost", true))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "success=false")
}

func TestLogUseCaseObserver_RejectedRequestsWarn(t *testing.T) {
	r := setupRepos(t)
	var buf bytes.Buffer
	svc := NewChartService(r.projects, r.items, r.deps, nil, NewLogUseCaseObserver(&buf))

	_, err := svc.Chart(context.Background(), app.ChartRequest{})
	require.Error(t, err)
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "use_case=chart")
	assert.Contains(t, out, "code=INVALID_REQUEST")
	assert.NotContains(t, out, "level=ERROR")
}

func TestLogUseCaseObserver_SortsFields(t *testing.T) {
	var buf bytes.Buffer
	NewLogUseCaseObserver(&buf).ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "chart",
		Success: true,
		Fields:  map[string]any{"rows": 4, "critical": 3, "project_id": "p1"},
	})
	out := buf.String()
	c, p, r := strings.Index(out, "critical="), strings.Index(out, "project_id="), strings.Index(out, "rows=")
	require.True(t, c > 0 && p > 0 && r > 0, out)
	assert.Less(t, c, p)
	assert.Less(t, p, r)
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
