package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/gantry/internal/app"
	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/export"
	"github.com/spf13/cobra"
)

const defaultChartCols = 120

// newChartRequest seeds a chart request with the configured defaults.
func (a *App) newChartRequest(projectID string) app.ChartRequest {
	req := app.NewChartRequest(projectID)
	req.Granularity = a.Config.Granularity()
	req.Dimensions = a.Config.Dimensions()
	req.Theme = a.Config.Theme
	req.LexicalOrder = a.Config.Chart.Lexical
	req.ExpandAll = a.Config.Chart.ExpandAll
	return req
}

func newChartCmd(a *App) *cobra.Command {
	var (
		format, out, theme string
		expand             []string
		expandAll, lexical bool
		scroll             float64
		cols               int
		now                time.Time
	)
	req := a.newChartRequest("")

	cmd := &cobra.Command{
		Use:   "chart PROJECT",
		Short: "Render a project's Gantt chart as SVG or to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if format != "svg" && format != "term" {
				return fmt.Errorf("--format must be svg or term, got %q", format)
			}
			p, err := resolveProject(ctx, a, args[0])
			if err != nil {
				return err
			}

			req.ProjectID = p.ID
			req.Expanded = expand
			req.ScrollOffset = scroll
			if cmd.Flags().Changed("expand-all") {
				req.ExpandAll = expandAll
			}
			if cmd.Flags().Changed("lexical") {
				req.LexicalOrder = lexical
			}
			if theme != "" {
				req.Theme = theme
			}
			if now.IsZero() {
				now = a.now()
			}
			req.Now = &now

			resp, err := a.Charts.Chart(ctx, req)
			if err != nil {
				return err
			}
			for _, w := range resp.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}

			l := resp.Layout
			var rendered string
			if format == "svg" {
				rendered = export.SVG(l.Commands, l.Width, l.Height)
			} else {
				rendered = formatter.RenderGantt(l.Commands, l.Width, l.Height, cols)
			}

			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), rendered)
				return nil
			}
			if err := os.WriteFile(out, []byte(rendered), 0o644); err != nil {
				return fmt.Errorf("writing chart: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d rows, %s)\n", out, len(l.Rows), req.Granularity)
			return nil
		},
	}

	f := cmd.Flags()
	f.Var(newGranularityValue(req.Granularity, &req.Granularity), "granularity", "Timeline unit")
	f.StringSliceVar(&expand, "expand", nil, "Item codes to expand (repeatable or comma-separated)")
	f.BoolVar(&expandAll, "expand-all", false, "Expand every item")
	f.Float64Var(&scroll, "scroll", 0, "Horizontal scroll offset in pixels")
	f.Var(dateValue{&now}, "now", "Render as of this date (today marker, derived dates)")
	f.StringVar(&format, "format", "term", "Output format: svg or term")
	f.StringVarP(&out, "out", "o", "", "Write to a file instead of stdout")
	f.BoolVar(&lexical, "lexical", false, "Order siblings by plain string comparison of codes")
	f.StringVar(&theme, "theme", "", "Color theme: light or dark")
	f.IntVar(&cols, "cols", defaultChartCols, "Terminal width in columns (term format)")

	return cmd
}
