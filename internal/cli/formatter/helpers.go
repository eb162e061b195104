package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly date relative to now.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DateOrDash formats an optional planned date, or a dimmed dash.
func DateOrDash(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format("2006-01-02")
}

// SpanLabel formats an optional planned span like "Mar 2 → Mar 9".
func SpanLabel(start, end *time.Time) string {
	if start == nil || end == nil {
		return Dim("unscheduled")
	}
	if start.Year() != end.Year() {
		return start.Format("Jan 2, 2006") + " → " + end.Format("Jan 2, 2006")
	}
	return start.Format("Jan 2") + " → " + end.Format("Jan 2")
}

// StatusPill returns a colored status indicator for project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectPaused:
		return StyleYellow.Render("○ Paused")
	case domain.ProjectDone:
		return StyleDim.Render("✔ Done")
	case domain.ProjectArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// ItemStatusPill returns a colored status indicator for a WBS item.
func ItemStatusPill(status domain.ItemStatus) string {
	switch status {
	case domain.ItemPending:
		return StyleBlue.Render("○ Pending")
	case domain.ItemInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.ItemCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.ItemBlocked:
		return StyleRed.Render("■ Blocked")
	default:
		return StyleDim.Render(string(status))
	}
}

// TypeBadge returns a purple item type label; tasks stay unlabeled.
func TypeBadge(t domain.ItemType) string {
	if t == domain.ItemTypeTask || t == "" {
		return ""
	}
	return StylePurple.Render(string(t))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatHours renders an hour figure without trailing zeros, e.g. "12h" or
// "7.5h".
func FormatHours(h float64) string {
	if h <= 0 {
		return "0h"
	}
	return strconv.FormatFloat(math.Round(h*10)/10, 'f', -1, 64) + "h"
}

// HoursOrDash formats an optional hour estimate.
func HoursOrDash(h *float64) string {
	if h == nil {
		return Dim("--")
	}
	return FormatHours(*h)
}
