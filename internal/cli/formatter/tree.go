package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Code     string
	Title    string
	Level    int
	IsLast   bool
	Status   string
	Critical bool
	Detail   string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors. Completed items get a green ✔ prefix, in-progress items an amber
// ▶ prefix, critical items a ◆ marker, and detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.Code != "" {
			title = StyleDim.Render(item.Code+" ") + title
		}

		statusPrefix := ""
		switch {
		case strings.EqualFold(item.Status, "completed"):
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		case strings.EqualFold(item.Status, "in_progress"):
			statusPrefix = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		case strings.EqualFold(item.Status, "blocked"):
			statusPrefix = StyleRed.Render("■ ")
		}
		if item.Critical {
			title += StyleCritical.Render(" ◆")
		}

		content := prefix + statusPrefix + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := maxContentWidth - lipgloss.Width(li.content)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}
	return b.String()
}
