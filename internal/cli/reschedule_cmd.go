package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/app"
	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/spf13/cobra"
)

func newRescheduleCmd(a *App) *cobra.Command {
	var start, end time.Time
	var shift int

	cmd := &cobra.Command{
		Use:   "reschedule PROJECT ITEM",
		Short: "Set new planned dates for a WBS item",
		Long: `Set new planned dates for a WBS item with --start and --end, or move its
current span with --shift DAYS. On a terminal, missing dates are asked for.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, a, args[0])
			if err != nil {
				return err
			}
			w, err := resolveItem(ctx, a, p.ID, args[1])
			if err != nil {
				return err
			}

			if shift != 0 && (!start.IsZero() || !end.IsZero()) {
				return fmt.Errorf("--shift cannot be combined with --start or --end")
			}
			if shift == 0 && (start.IsZero() || end.IsZero()) {
				if !a.interactive() {
					return fmt.Errorf("--start and --end are required (or use --shift)")
				}
				if err := promptDates(w, &start, &end); err != nil {
					return err
				}
			}

			now := a.now()
			resp, err := a.Reschedule.Reschedule(ctx, app.RescheduleRequest{
				ItemID: w.ID,
				Start:  start,
				End:    end,
				Shift:  shift,
				Now:    &now,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rescheduled %s %s: %s → %s\n",
				resp.Item.Code, resp.Item.Title,
				formatter.SpanLabel(resp.PreviousStart, resp.PreviousEnd),
				formatter.SpanLabel(resp.Item.PlannedStart, resp.Item.PlannedEnd))
			return nil
		},
	}

	cmd.Flags().Var(dateValue{&start}, "start", "New planned start date")
	cmd.Flags().Var(dateValue{&end}, "end", "New planned end date")
	cmd.Flags().IntVar(&shift, "shift", 0, "Move the current span by this many days")

	return cmd
}

// promptDates fills start and end from a form, prefilled with whatever is
// already known.
func promptDates(w *domain.WBSItem, start, end *time.Time) error {
	var startStr, endStr string
	switch {
	case !start.IsZero():
		startStr = start.Format(dateLayout)
	case w.PlannedStart != nil:
		startStr = w.PlannedStart.Format(dateLayout)
	}
	switch {
	case !end.IsZero():
		endStr = end.Format(dateLayout)
	case w.PlannedEnd != nil:
		endStr = w.PlannedEnd.Format(dateLayout)
	}

	if err := rescheduleForm(w.Code+" "+w.Title, &startStr, &endStr).Run(); err != nil {
		return err
	}

	var err error
	if *start, err = parseDate(startStr); err != nil {
		return err
	}
	if *end, err = parseDate(endStr); err != nil {
		return err
	}
	return nil
}
