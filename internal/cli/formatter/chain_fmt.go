package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantry/internal/ccpm"
	"github.com/alexanderramin/gantry/internal/contract"
	"github.com/alexanderramin/gantry/internal/gantt"
)

// FormatChain renders the critical chain, the project buffer and its fever
// history.
func FormatChain(resp *contract.ChainResponse) string {
	var b strings.Builder

	b.WriteString(Header("Critical chain") + "\n")
	if len(resp.Chain) == 0 {
		b.WriteString(Dim("No schedulable work items.") + "\n")
	} else {
		rows := make([][]string, 0, len(resp.Chain))
		for _, l := range resp.Chain {
			rows = append(rows, []string{
				StyleCritical.Render(l.Item.Code),
				gantt.Truncate(l.Item.Title, 30),
				FormatHours(l.Duration),
				FormatHours(l.Start),
				FormatHours(l.Finish),
			})
		}
		b.WriteString(RenderTable([]string{"CODE", "TITLE", "HOURS", "START", "FINISH"}, rows))
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Chain length:"), Bold(FormatHours(resp.TotalHours))))
	}

	buf := resp.Buffer
	b.WriteString("\n" + Header("Project buffer") + "\n")
	b.WriteString(fmt.Sprintf("%s %s  %s\n", Dim("Size:     "), FormatHours(buf.SizeHours),
		Dim(fmt.Sprintf("(safe %s, aggressive %s, ratio %.0f%%)",
			FormatHours(buf.SafeHours), FormatHours(buf.AggressiveHours), resp.Project.BufferRatio*100))))
	b.WriteString(fmt.Sprintf("%s %s  %s\n", Dim("Consumed: "),
		RenderMeter(buf.ConsumedPercent, 20, FeverStyle(buf.Fever)),
		Dim(FormatHours(buf.ConsumedHours)+" used, "+FormatHours(buf.RemainingHours)+" left")))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Progress: "), RenderProgress(buf.ProgressPercent, 20)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Fever:    "), FeverIndicator(buf.Fever)))

	if len(resp.History) > 0 {
		b.WriteString("\n" + Header("Fever history") + "\n")
		rows := make([][]string, 0, len(resp.History))
		for _, s := range resp.History {
			rows = append(rows, []string{
				s.RecordedAt.Format("2006-01-02 15:04"),
				fmt.Sprintf("%d%%", s.ConsumedPercent),
				fmt.Sprintf("%d%%", s.ProgressPercent),
				FeverIndicator(ccpm.Fever(s.Fever)),
			})
		}
		b.WriteString(RenderTable([]string{"RECORDED", "CONSUMED", "PROGRESS", "FEVER"}, rows))
	}
	return b.String()
}
