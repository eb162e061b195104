package gantt

import (
	"math"
	"math/rand"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byRole(cmds []DrawCommand, role Role) []DrawCommand {
	var out []DrawCommand
	for _, c := range cmds {
		if c.Role == role {
			out = append(out, c)
		}
	}
	return out
}

func abcLayout(t *testing.T, mutate func(*Input)) *Layout {
	t.Helper()
	in := Input{
		Items:        abcItems(),
		Dependencies: []Dependency{{PredecessorID: "A", SuccessorID: "B"}},
		Critical:     NewIDSet("A", "B"),
		Expanded:     NewIDSet("A"),
		Granularity:  GranularityWeek,
		Now:          day0,
	}
	if mutate != nil {
		mutate(&in)
	}
	l, err := Compute(in)
	require.NoError(t, err)
	return l
}

func TestRender_EmptyChartHasNoBars(t *testing.T) {
	l, err := Compute(Input{Now: day0})
	require.NoError(t, err)

	assert.Empty(t, l.Rows)
	assert.Equal(t, 30, l.Window.TotalDays)
	assert.Equal(t, day0, l.Window.MinDate)
	assert.Empty(t, byRole(l.Commands, RoleBar))
	assert.NotEmpty(t, byRole(l.Commands, RoleBackground))
}

func TestRender_CriticalScenario(t *testing.T) {
	l := abcLayout(t, nil)
	th := LightTheme()

	assert.Equal(t, []string{"A", "B", "C"}, rowIDs(l.Rows))

	conns := byRole(l.Commands, RoleConnector)
	require.Len(t, conns, 1, "only A->B is routed")
	assert.Equal(t, "B", conns[0].ItemID)
	assert.Equal(t, th.Critical, conns[0].Stroke)
	assert.Empty(t, conns[0].Dash, "critical connectors are solid")
	assert.Equal(t, 1.0, conns[0].Opacity)
	assert.Len(t, byRole(l.Commands, RoleArrowhead), 1)

	bars := byRole(l.Commands, RoleBar)
	require.Len(t, bars, 3)
	assert.Equal(t, th.Critical, bars[0].Fill)
	assert.Equal(t, th.Critical, bars[1].Fill)
	assert.Equal(t, th.StatusColor(StatusPending), bars[2].Fill)

	borders := byRole(l.Commands, RoleCriticalBorder)
	require.Len(t, borders, 2)
	assert.Equal(t, "A", borders[0].ItemID)
	assert.Equal(t, "B", borders[1].ItemID)
}

func TestRender_NonCriticalConnectorIsDashed(t *testing.T) {
	l := abcLayout(t, func(in *Input) {
		in.Dependencies = []Dependency{{PredecessorID: "B", SuccessorID: "C"}}
	})
	conns := byRole(l.Commands, RoleConnector)
	require.Len(t, conns, 1)
	assert.Equal(t, "4,2", conns[0].Dash)
	assert.Equal(t, 0.6, conns[0].Opacity)
	assert.Equal(t, LightTheme().Neutral, conns[0].Stroke)
}

func TestRender_BarGeometry(t *testing.T) {
	l := abcLayout(t, func(in *Input) {
		in.Items[0].Status = StatusInProgress
		in.Items[1].Status = StatusCompleted
	})
	bars := byRole(l.Commands, RoleBar)
	require.Len(t, bars, 3)

	a := bars[0]
	assert.Equal(t, 340.0, a.X)
	assert.Equal(t, 58.0, a.Y)
	assert.Equal(t, 40.0, a.Width)
	assert.Equal(t, 20.0, a.Height)

	progress := byRole(l.Commands, RoleProgress)
	require.Len(t, progress, 2)
	assert.Equal(t, 20.0, progress[0].Width, "in progress fills half")
	assert.Equal(t, bars[1].Width, progress[1].Width, "completed fills the bar")
}

func TestRender_MinimumBarWidth(t *testing.T) {
	l, err := Compute(Input{
		Items:       []RawItem{newRaw("m", "1", "", withDates(day0, day0))},
		Granularity: GranularityMonth,
		Now:         day0,
	})
	require.NoError(t, err)
	bars := byRole(l.Commands, RoleBar)
	require.Len(t, bars, 1)
	assert.Equal(t, MinBarWidth, bars[0].Width)
}

func TestRender_GlyphAndLabel(t *testing.T) {
	l := abcLayout(t, func(in *Input) {
		in.Items[0].Title = "Implement the scheduler"
	})
	glyphs := byRole(l.Commands, RoleGlyph)
	require.Len(t, glyphs, 1)
	assert.Equal(t, "▼", glyphs[0].Text)
	assert.Equal(t, ActionToggleExpand, glyphs[0].Action)

	labels := byRole(l.Commands, RoleLabel)
	require.Len(t, labels, 3)
	assert.Equal(t, "1 Implement the s...", labels[0].Text)
	assert.Equal(t, 32.0, labels[0].X, "label shifts past the glyph")
	assert.Equal(t, "1.1 Item B", labels[1].Text)
	assert.Equal(t, 32.0, labels[1].X, "level one indent")
	assert.True(t, labels[0].Bold)
	assert.False(t, labels[2].Bold)

	collapsed := abcLayout(t, func(in *Input) { in.Expanded = nil })
	glyphs = byRole(collapsed.Commands, RoleGlyph)
	require.Len(t, glyphs, 1)
	assert.Equal(t, "▶", glyphs[0].Text)
}

func TestRender_TodayMarker(t *testing.T) {
	l := abcLayout(t, nil)
	today := byRole(l.Commands, RoleToday)
	require.Len(t, today, 1)
	assert.Equal(t, 340.0, today[0].X)
	assert.Equal(t, "4,2", today[0].Dash)

	outside := abcLayout(t, func(in *Input) { in.Now = day0.AddDate(0, 0, 90) })
	assert.Empty(t, byRole(outside.Commands, RoleToday))
}

func TestRender_OverlayHighlightAndTooltip(t *testing.T) {
	l := abcLayout(t, func(in *Input) {
		in.Overlay = Overlay{HoveredID: "B", SelectedID: "C"}
	})
	highlights := byRole(l.Commands, RoleHighlight)
	require.Len(t, highlights, 2)
	assert.Equal(t, "B", highlights[0].ItemID)
	assert.Equal(t, "C", highlights[1].ItemID)

	tips := byRole(l.Commands, RoleTooltip)
	require.Len(t, tips, 2)
	assert.Equal(t, TooltipWidth, tips[0].Width)
	assert.Equal(t, "Mar 5 - Mar 7", tips[1].Text)
	assert.Equal(t, RoleTooltip, l.Commands[len(l.Commands)-1].Role, "tooltip drawn last")
}

func TestRender_CullsOutsideViewport(t *testing.T) {
	items := []RawItem{
		newRaw("early", "1", "", withDates(day0, day0.AddDate(0, 0, 2))),
		newRaw("late", "2", "", withDates(day0.AddDate(0, 0, 60), day0.AddDate(0, 0, 62))),
	}
	l, err := Compute(Input{Items: items, Granularity: GranularityDay, Now: day0})
	require.NoError(t, err)

	bars := byRole(l.Commands, RoleBar)
	require.Len(t, bars, 1, "late bar starts beyond the viewport")
	assert.Equal(t, "early", bars[0].ItemID)

	scrolled, err := Compute(Input{Items: items, Granularity: GranularityDay, Now: day0, ScrollOffset: 1e6})
	require.NoError(t, err)
	bars = byRole(scrolled.Commands, RoleBar)
	require.Len(t, bars, 1)
	assert.Equal(t, "late", bars[0].ItemID)

	for _, c := range byRole(scrolled.Commands, RoleGrid) {
		assert.GreaterOrEqual(t, c.X, 200.0)
		assert.LessOrEqual(t, c.X, 1000.0)
	}
}

func TestRender_GridMatchesBarsAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	mar := func(d int) time.Time { return time.Date(2024, time.March, d, 0, 0, 0, 0, ny) }

	l, err := Compute(Input{
		Items: []RawItem{
			newRaw("before", "1", "", withDates(mar(8), mar(9))),
			newRaw("after", "2", "", withDates(mar(12), mar(13))),
		},
		Granularity: GranularityDay,
		Now:         mar(8),
	})
	require.NoError(t, err)

	grid := map[float64]bool{}
	for _, c := range byRole(l.Commands, RoleGrid) {
		grid[math.Round(c.X*1e6)/1e6] = true
	}
	for _, bar := range byRole(l.Commands, RoleBar) {
		assert.True(t, grid[math.Round(bar.X*1e6)/1e6], "bar %s at x=%v has no grid line", bar.ItemID, bar.X)
	}
	assert.Len(t, byRole(l.Commands, RoleBar), 2)
}

func TestRender_SkipsConnectorsLeftOfViewport(t *testing.T) {
	items := []RawItem{
		newRaw("a", "1", "", withDates(day0, day0.AddDate(0, 0, 1))),
		newRaw("b", "2", "", withDates(day0.AddDate(0, 0, 2), day0.AddDate(0, 0, 3))),
		newRaw("c", "3", "", withDates(day0.AddDate(0, 0, 40), day0.AddDate(0, 0, 41))),
	}
	deps := []Dependency{{PredecessorID: "a", SuccessorID: "b"}, {PredecessorID: "b", SuccessorID: "c"}}

	l, err := Compute(Input{Items: items, Dependencies: deps, Granularity: GranularityDay, Now: day0})
	require.NoError(t, err)
	assert.Len(t, byRole(l.Commands, RoleConnector), 2)

	scrolled, err := Compute(Input{Items: items, Dependencies: deps, Granularity: GranularityDay, Now: day0, ScrollOffset: 1e6})
	require.NoError(t, err)
	conns := byRole(scrolled.Commands, RoleConnector)
	require.Len(t, conns, 1, "a->b lies entirely under the label column")
	assert.Equal(t, "c", conns[0].ItemID)
	assert.Len(t, byRole(scrolled.Commands, RoleArrowhead), 1)
}

// TestRender_Invariants_GeometryClamped property-tests that no command has a
// negative size and that bars stay inside the viewport.
func TestRender_Invariants_GeometryClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 60; trial++ {
		items := randomItems(rng, rng.Intn(25)+1)
		deps := make([]Dependency, rng.Intn(10))
		for i := range deps {
			deps[i] = Dependency{
				PredecessorID: items[rng.Intn(len(items))].ID,
				SuccessorID:   items[rng.Intn(len(items))].ID,
			}
		}
		model, err := Build(items, nil, day0)
		require.NoError(t, err)

		l, err := Compute(Input{
			Items:         items,
			Dependencies:  deps,
			Expanded:      ExpandAll(model),
			Granularity:   Granularities[rng.Intn(len(Granularities))],
			ScrollOffset:  float64(rng.Intn(3000) - 500),
			Now:           day0,
			Reschedulable: true,
		})
		require.NoError(t, err)

		left, right := l.Mapper.ViewportLeft(), l.Mapper.ViewportRight()
		for i, c := range l.Commands {
			assert.GreaterOrEqual(t, c.Width, 0.0, "trial %d cmd %d %s", trial, i, c.Role)
			assert.GreaterOrEqual(t, c.Height, 0.0, "trial %d cmd %d %s", trial, i, c.Role)
			switch c.Role {
			case RoleBar, RoleProgress, RoleHandle, RoleWeekend:
				assert.GreaterOrEqual(t, c.X, left, "trial %d cmd %d %s", trial, i, c.Role)
				assert.LessOrEqual(t, c.X+c.Width, right+1e-9, "trial %d cmd %d %s", trial, i, c.Role)
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 15))
	assert.Equal(t, "exactly fifteen", Truncate("exactly fifteen", 15))
	assert.Equal(t, "ünïcödé...", Truncate("ünïcödé title", 7))
}
