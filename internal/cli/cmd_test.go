package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/gantry/internal/config"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const websiteFixture = "../importer/testdata/website.yaml"

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(db)

	projRepo := repository.NewSQLiteProjectRepo(db)
	itemRepo := repository.NewSQLiteWBSItemRepo(db)
	depRepo := repository.NewSQLiteDependencyRepo(db)
	histRepo := repository.NewSQLiteBufferHistoryRepo(db)

	return &App{
		Projects:   service.NewProjectService(projRepo),
		Items:      service.NewWBSService(itemRepo, uow),
		Deps:       service.NewDependencyService(depRepo, uow),
		Import:     service.NewImportService(uow),
		Charts:     service.NewChartService(projRepo, itemRepo, depRepo, nil),
		Chains:     service.NewChainService(projRepo, itemRepo, depRepo, histRepo),
		Reschedule: service.NewRescheduleService(itemRepo),
		Config:     config.DefaultConfig(),
		Now:        func() time.Time { return testutil.Date(2026, time.March, 2) },
	}
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// importWebsite loads the shared fixture through the CLI.
func importWebsite(t *testing.T, app *App) {
	t.Helper()
	out, err := executeCmd(t, app, "import", websiteFixture)
	require.NoError(t, err)
	require.Contains(t, out, "Imported project Website relaunch [WEB01]: 5 items, 2 dependencies")
}

// --- project ---

func TestProjectCmd_CreateListShow(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "create", "--id", "ops01", "--name", "Ops rollout",
		"--start", "2026-04-01", "--end", "2026-06-30")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Ops rollout [OPS01]")

	out, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "OPS01")
	assert.Contains(t, out, "Ops rollout")

	out, err = executeCmd(t, app, "project", "show", "ops01")
	require.NoError(t, err)
	assert.Contains(t, out, "Ops rollout")
}

func TestProjectCmd_CreateRejects(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "create", "--id", "x", "--name", "Bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short ID")

	_, err = executeCmd(t, app, "project", "create", "--id", "OPS01", "--name", "Backwards",
		"--start", "2026-04-01", "--end", "2026-03-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before --start")

	_, err = executeCmd(t, app, "project", "create", "--id", "OPS01", "--name", "Bad date", "--start", "April")
	require.Error(t, err)
}

func TestProjectCmd_ArchiveThenDelete(t *testing.T) {
	app := testApp(t)
	importWebsite(t, app)

	_, err := executeCmd(t, app, "project", "delete", "WEB01")
	require.Error(t, err, "active projects need --force")

	out, err := executeCmd(t, app, "project", "archive", "WEB01")
	require.NoError(t, err)
	assert.Contains(t, out, "Archived project")

	out, err = executeCmd(t, app, "project", "delete", "WEB01")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted project")

	_, err = executeCmd(t, app, "project", "show", "WEB01")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- import ---

func TestImportCmd_MissingFile(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "import", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// --- wbs ---

func TestWBSCmd_TreeAndTable(t *testing.T) {
	app := testApp(t)
	importWebsite(t, app)

	out, err := executeCmd(t, app, "wbs", "list", "WEB01")
	require.NoError(t, err)
	for _, s := range []string{"Design", "Wireframes", "Mockups", "Build", "Frontend"} {
		assert.Contains(t, out, s)
	}
	assert.Less(t, strings.Index(out, "Wireframes"), strings.Index(out, "Frontend"))

	out, err = executeCmd(t, app, "wbs", "list", "WEB01", "--table")
	require.NoError(t, err)
	assert.Contains(t, out, "2.1")
	assert.Contains(t, out, "Frontend")
}

func TestWBSCmd_AddStatusMoveDelete(t *testing.T) {
	app := testApp(t)
	importWebsite(t, app)
	ctx := context.Background()

	out, err := executeCmd(t, app, "wbs", "add", "Backend", "-p", "WEB01", "--parent", "2",
		"--aggressive", "24", "--safe", "40", "--start", "2026-03-16", "--end", "2026-03-20")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2.2 Backend")

	_, err = executeCmd(t, app, "wbs", "add", "Broken", "-p", "WEB01", "--safe", "-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--safe")

	out, err = executeCmd(t, app, "wbs", "status", "2.2", "in_progress", "-p", "WEB01", "--actual", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "2.2 Backend")

	_, err = executeCmd(t, app, "wbs", "status", "2.2", "done-ish", "-p", "WEB01")
	require.Error(t, err)

	out, err = executeCmd(t, app, "wbs", "move", "2.2", "-p", "WEB01", "--parent", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved 2.2 → 1.3")

	p, err := app.Projects.Resolve(ctx, "WEB01")
	require.NoError(t, err)
	moved, err := app.Items.Resolve(ctx, p.ID, "1.3")
	require.NoError(t, err)
	assert.Equal(t, "Backend", moved.Title)
	require.NotNil(t, moved.ActualHours)
	assert.Equal(t, 6.0, *moved.ActualHours)

	out, err = executeCmd(t, app, "wbs", "delete", "1.3", "-p", "WEB01")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1.3 Backend")
	_, err = app.Items.Resolve(ctx, p.ID, "1.3")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWBSCmd_ProjectRequired(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "wbs", "add", "Orphan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project")
}

// --- dep ---

func TestDepCmd_AddListRemove(t *testing.T) {
	app := testApp(t)
	importWebsite(t, app)

	out, err := executeCmd(t, app, "dep", "add", "1.1", "2.1", "-p", "WEB01", "--lag", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 1.1 → 2.1 (+2d)")

	out, err = executeCmd(t, app, "dep", "list", "WEB01")
	require.NoError(t, err)
	assert.Contains(t, out, "PREDECESSOR")
	assert.Contains(t, out, "2d")

	out, err = executeCmd(t, app, "dep", "remove", "1.1", "2.1", "-p", "WEB01")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1.1 → 2.1")
}

func TestDepCmd_RejectsCycle(t *testing.T) {
	app := testApp(t)
	importWebsite(t, app)

	_, err := executeCmd(t, app, "dep", "add", "2.1", "1.1", "-p", "WEB01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestDepCmd_Empty(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "create", "--id", "OPS01", "--name", "Empty")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "dep", "list", "OPS01")
	require.NoError(t, err)
	assert.Contains(t, out, "No dependencies.")
}

// --- chain ---

func TestChainCmd(t *testing.T) {
	app := testApp(t)
	importWebsite(t, app)

	out, err := executeCmd(t, app, "chain", "WEB01")
	require.NoError(t, err)
	assert.Contains(t, out, "CRITICAL CHAIN")
	assert.Contains(t, out, "Wireframes")
	assert.Contains(t, out, "88h")
	assert.Contains(t, out, "PROJECT BUFFER")
	assert.Contains(t, out, "GREEN")
	assert.NotContains(t, out, "FEVER HISTORY")

	out, err = executeCmd(t, app, "chain", "WEB01", "--record", "--now", "2026-03-05")
	require.NoError(t, err)
	assert.Contains(t, out, "FEVER HISTORY")
	assert.Contains(t, out, "2026-03-05")
}

// --- chart ---

func TestChartCmd_SVG(t *testing.T) {
	app := testApp(t)
	importWebsite(t, app)

	out, err := executeCmd(t, app, "chart", "WEB01", "--format", "svg", "--expand-all", "--granularity", "day")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "1.1 Wireframes")
	assert.Contains(t, out, `class="arrowhead"`)
}

func TestChartCmd_OutFile(t *testing.T) {
	app := testApp(t)
	importWebsite(t, app)
	path := filepath.Join(t.TempDir(), "web.svg")

	out, err := executeCmd(t, app, "chart", "WEB01", "--format", "svg", "-o", path, "--expand", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path+" (4 rows, week)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1.2 Mockups")
	assert.NotContains(t, string(data), "2.1 Frontend", "phase 2 stays collapsed")
}

func TestChartCmd_Terminal(t *testing.T) {
	app := testApp(t)
	importWebsite(t, app)

	out, err := executeCmd(t, app, "chart", "WEB01", "--expand-all", "--cols", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "1 Design")
	assert.Contains(t, out, "1.1 Wireframes")
	assert.Contains(t, out, "│")
}

func TestChartCmd_Rejects(t *testing.T) {
	app := testApp(t)
	importWebsite(t, app)

	_, err := executeCmd(t, app, "chart", "WEB01", "--format", "png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--format")

	_, err = executeCmd(t, app, "chart", "WEB01", "--granularity", "fortnight")
	require.Error(t, err)

	_, err = executeCmd(t, app, "chart", "NOPE01")
	require.Error(t, err)
}

// --- reschedule ---

func TestRescheduleCmd_Dates(t *testing.T) {
	app := testApp(t)
	importWebsite(t, app)

	out, err := executeCmd(t, app, "reschedule", "WEB01", "1.1", "--start", "2026-03-10", "--end", "2026-03-12")
	require.NoError(t, err)
	assert.Contains(t, out, "Rescheduled 1.1 Wireframes: Mar 2 → Mar 4 → Mar 10 → Mar 12")
}

func TestRescheduleCmd_Shift(t *testing.T) {
	app := testApp(t)
	importWebsite(t, app)

	out, err := executeCmd(t, app, "reschedule", "WEB01", "1.2", "--shift", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Mar 8 → Mar 12")
}

func TestRescheduleCmd_Rejects(t *testing.T) {
	app := testApp(t)
	importWebsite(t, app)

	_, err := executeCmd(t, app, "reschedule", "WEB01", "1.1", "--start", "2026-03-10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	_, err = executeCmd(t, app, "reschedule", "WEB01", "1.1", "--shift", "1", "--start", "2026-03-10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be combined")

	_, err = executeCmd(t, app, "reschedule", "WEB01", "1.1", "--start", "2026-03-10", "--end", "2026-03-09")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be after")

	_, err = executeCmd(t, app, "reschedule", "WEB01", "9.9", "--shift", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
