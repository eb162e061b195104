package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/gantry/internal/app"
	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/gantt"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type chartKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Left    key.Binding
	Right   key.Binding
	Zoom    key.Binding
	Earlier key.Binding
	Later   key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

func defaultChartKeyMap() chartKeyMap {
	return chartKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "select")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "select")),
		Toggle:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "scroll")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "scroll")),
		Zoom:    key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zoom")),
		Earlier: key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "1 day earlier")),
		Later:   key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "1 day later")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k chartKeyMap) help() string {
	bindings := []key.Binding{k.Up, k.Toggle, k.Left, k.Right, k.Zoom, k.Earlier, k.Later, k.Reload, k.Quit}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = h.Key + " " + h.Desc
	}
	return formatter.Dim(strings.Join(parts, " · "))
}

type chartLoadedMsg struct {
	resp *app.ChartResponse
	err  error
}

type rescheduledMsg struct {
	resp *app.RescheduleResponse
	err  error
}

// chartModel is the interactive Gantt viewer. It owns the interaction state
// (selection, expansion, scroll, zoom) and recomputes the layout through the
// chart use case on every change.
type chartModel struct {
	app  *App
	keys chartKeyMap
	req  app.ChartRequest

	resp     *app.ChartResponse
	selected int
	status   string
	err      error

	vp            viewport.Model
	width, height int
}

func newChartModel(a *App, req app.ChartRequest) chartModel {
	now := a.now()
	req.Now = &now
	return chartModel{
		app:    a,
		keys:   defaultChartKeyMap(),
		req:    req,
		vp:     viewport.New(0, 0),
		width:  defaultChartCols,
		height: 24,
	}
}

func (m chartModel) Init() tea.Cmd {
	return m.load()
}

func (m chartModel) load() tea.Cmd {
	a, req := m.app, m.req
	if row := m.selectedRow(); row != nil {
		req.Overlay = gantt.Overlay{SelectedID: row.ID}
	}
	return func() tea.Msg {
		resp, err := a.Charts.Chart(context.Background(), req)
		return chartLoadedMsg{resp: resp, err: err}
	}
}

func (m chartModel) shift(days int) tea.Cmd {
	row := m.selectedRow()
	if row == nil {
		return nil
	}
	a, now := m.app, m.req.Now
	id := row.ID
	return func() tea.Msg {
		resp, err := a.Reschedule.Reschedule(context.Background(), app.RescheduleRequest{ItemID: id, Shift: days, Now: now})
		return rescheduledMsg{resp: resp, err: err}
	}
}

func (m chartModel) selectedRow() *gantt.ScheduleItem {
	if m.resp == nil || m.selected < 0 || m.selected >= len(m.resp.Layout.Rows) {
		return nil
	}
	return m.resp.Layout.Rows[m.selected]
}

func (m chartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.refresh()
		return m, nil

	case chartLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.adopt(msg.resp)
		return m, nil

	case rescheduledMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render(msg.err.Error())
			return m, nil
		}
		it := msg.resp.Item
		m.status = fmt.Sprintf("%s moved to %s", it.Code, formatter.SpanLabel(it.PlannedStart, it.PlannedEnd))
		return m, m.load()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m chartModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		m.status = ""
		return m, m.load()
	}
	if m.resp == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, m.load()
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.resp.Layout.Rows)-1 {
			m.selected++
		}
		return m, m.load()
	case key.Matches(msg, m.keys.Toggle):
		row := m.selectedRow()
		if row == nil || !row.HasChildren() {
			return m, nil
		}
		m.req.ExpandAll = false
		m.req.Expanded = m.resp.Expanded.Toggle(row.ID).Slice()
		return m, m.load()
	case key.Matches(msg, m.keys.Left):
		m.req.ScrollOffset = max(0, m.req.ScrollOffset-m.scrollStep())
		return m, m.load()
	case key.Matches(msg, m.keys.Right):
		m.req.ScrollOffset += m.scrollStep()
		return m, m.load()
	case key.Matches(msg, m.keys.Zoom):
		m.req.Granularity = m.req.Granularity.Next()
		m.req.ScrollOffset = 0
		m.status = "zoom: " + string(m.req.Granularity)
		return m, m.load()
	case key.Matches(msg, m.keys.Earlier):
		return m, m.shift(-1)
	case key.Matches(msg, m.keys.Later):
		return m, m.shift(1)
	}
	return m, nil
}

// scrollStep is a quarter of the viewport the engine actually laid out,
// after its defaults replaced any zero dimensions.
func (m chartModel) scrollStep() float64 {
	if m.resp != nil {
		return m.resp.Layout.Mapper.Dimensions().ViewportWidth / 4
	}
	return gantt.DefaultDimensions().ViewportWidth / 4
}

// adopt takes over a fresh layout: the expansion and the clamped scroll
// offset become the next request's state.
func (m *chartModel) adopt(resp *app.ChartResponse) {
	m.resp = resp
	m.req.ExpandAll = false
	m.req.Expanded = resp.Expanded.Slice()
	m.req.ScrollOffset = resp.Layout.Mapper.ScrollOffset()
	if n := len(resp.Layout.Rows); m.selected >= n {
		m.selected = max(0, n-1)
	}
	m.refresh()
}

// refresh re-rasterizes the layout into the viewport and keeps the selected
// row in view.
func (m *chartModel) refresh() {
	m.vp.Width = m.width
	m.vp.Height = max(1, m.height-3)
	if m.resp == nil {
		return
	}
	l := m.resp.Layout
	m.vp.SetContent(formatter.RenderGantt(l.Commands, l.Width, l.Height, m.width))

	line := m.selected + 1
	switch {
	case line < m.vp.YOffset+1:
		m.vp.SetYOffset(line - 1)
	case line >= m.vp.YOffset+m.vp.Height:
		m.vp.SetYOffset(line - m.vp.Height + 1)
	}
}

func (m chartModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n\n" + m.keys.help() + "\n"
	}
	if m.resp == nil {
		return formatter.Dim("Loading…") + "\n"
	}

	var b strings.Builder
	p := m.resp.Project
	b.WriteString(formatter.StyleHeader.Render(fmt.Sprintf("%s [%s]", p.Name, p.ShortID)))
	b.WriteString(formatter.Dim(fmt.Sprintf("  %s · %d rows", m.req.Granularity, len(m.resp.Layout.Rows))))
	if row := m.selectedRow(); row != nil {
		b.WriteString("  " + formatter.Bold(row.Code+" "+row.Title))
		b.WriteString(" " + formatter.Dim(formatter.SpanLabel(&row.Start, &row.End)))
	}
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status + "  ")
	}
	for _, w := range m.resp.Warnings {
		b.WriteString(formatter.StyleYellow.Render("! "+w) + "  ")
	}
	b.WriteString("\n")
	b.WriteString(m.keys.help())
	return b.String()
}
