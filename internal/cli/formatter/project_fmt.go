package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/gantt"
	"github.com/charmbracelet/lipgloss"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	if len(projects) == 0 {
		return Dim("No projects yet. Create one with 'gantry project create' or 'gantry import'.")
	}

	headers := []string{"ID", "NAME", "STATUS", "START", "END"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		id := p.ShortID
		if strings.TrimSpace(id) == "" {
			id = TruncID(p.ID)
		}
		end := Dim("--")
		if p.PlannedEnd != nil {
			end = p.PlannedEnd.Format("2006-01-02") + Dim(" ("+RelativeDateFrom(*p.PlannedEnd, now)+")")
		}
		rows = append(rows, []string{
			id,
			Bold(p.Name),
			StatusPill(p.Status),
			DateOrDash(p.PlannedStart),
			end,
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// ProjectDetailData holds everything shown by 'gantry project show'.
type ProjectDetailData struct {
	Project         *domain.Project
	Items           []*domain.WBSItem
	DependencyCount int
	Critical        []string
}

// FormatProjectDetail renders project metadata next to its WBS tree.
func FormatProjectDetail(data ProjectDetailData) string {
	p := data.Project
	var meta strings.Builder
	meta.WriteString(StyleBold.Render(p.Name) + "\n")
	if p.Description != "" {
		meta.WriteString(Dim(p.Description) + "\n")
	}
	meta.WriteString("\n")
	meta.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS "), StatusPill(p.Status)))
	meta.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID     "), p.DisplayID()))
	meta.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("SPAN   "), SpanLabel(p.PlannedStart, p.PlannedEnd)))
	meta.WriteString(fmt.Sprintf("%s  %.0f%%\n", StyleDim.Render("BUFFER "), p.BufferRatio*100))
	meta.WriteString(fmt.Sprintf("%s  %d items, %d links\n", StyleDim.Render("WBS    "), len(data.Items), data.DependencyCount))

	tree := FormatWBSTree(data.Items, data.Critical)
	if tree == "" {
		tree = Dim("No WBS items.")
	}
	return RenderBox("", lipgloss.JoinHorizontal(lipgloss.Top, meta.String(), "    ", tree))
}

// FormatWBSTree renders a project's items as a tree ordered by WBS code.
// Items whose parent is not in the list are shown as roots.
func FormatWBSTree(items []*domain.WBSItem, critical []string) string {
	onChain := gantt.NewIDSet(critical...)
	byID := make(map[string]*domain.WBSItem, len(items))
	for _, w := range items {
		byID[w.ID] = w
	}
	children := make(map[string][]*domain.WBSItem)
	for _, w := range items {
		parent := w.ParentIDValue()
		if _, ok := byID[parent]; !ok {
			parent = ""
		}
		children[parent] = append(children[parent], w)
	}
	for _, list := range children {
		sort.SliceStable(list, func(i, j int) bool {
			return gantt.CompareCodes(list[i].Code, list[j].Code) < 0
		})
	}

	var tree []TreeItem
	seen := make(map[string]bool, len(items))
	var walk func(parent string, level int)
	walk = func(parent string, level int) {
		list := children[parent]
		for i, w := range list {
			if seen[w.ID] {
				continue
			}
			seen[w.ID] = true
			tree = append(tree, TreeItem{
				Code:     w.Code,
				Title:    w.Title,
				Level:    level,
				IsLast:   i == len(list)-1,
				Status:   string(w.Status),
				Critical: onChain.Has(w.ID),
				Detail:   itemDetail(w),
			})
			walk(w.ID, level+1)
		}
	}
	walk("", 0)
	return RenderTree(tree)
}

func itemDetail(w *domain.WBSItem) string {
	var parts []string
	if badge := TypeBadge(w.Type); badge != "" {
		parts = append(parts, string(w.Type))
	}
	if w.IsWork() {
		if h := w.AggressiveDuration(); h > 0 {
			parts = append(parts, FormatHours(h))
		}
	}
	if w.Assignee != "" {
		parts = append(parts, "@"+w.Assignee)
	}
	return strings.Join(parts, " ")
}

// FormatItemTable renders items as a flat table, one row per item.
func FormatItemTable(items []*domain.WBSItem) string {
	headers := []string{"CODE", "TITLE", "TYPE", "STATUS", "AGGR", "SAFE", "ACTUAL", "START", "END"}
	sorted := append([]*domain.WBSItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return gantt.CompareCodes(sorted[i].Code, sorted[j].Code) < 0
	})
	rows := make([][]string, 0, len(sorted))
	for _, w := range sorted {
		rows = append(rows, []string{
			w.Code,
			gantt.Truncate(w.Title, 30),
			string(w.Type),
			ItemStatusPill(w.Status),
			HoursOrDash(w.AggressiveHours),
			HoursOrDash(w.SafeHours),
			HoursOrDash(w.ActualHours),
			DateOrDash(w.PlannedStart),
			DateOrDash(w.PlannedEnd),
		})
	}
	return RenderTable(headers, rows)
}
