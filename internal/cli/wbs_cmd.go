package cli

import (
	"fmt"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/spf13/cobra"
)

func newWBSCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wbs",
		Short: "Manage a project's work-breakdown structure",
	}

	cmd.AddCommand(
		newWBSAddCmd(app),
		newWBSListCmd(app),
		newWBSStatusCmd(app),
		newWBSMoveCmd(app),
		newWBSDeleteCmd(app),
	)

	return cmd
}

func newWBSAddCmd(app *App) *cobra.Command {
	var projectRef, parentRef, itemType, assignee string
	var aggressive, safe, estimate string
	var start, end string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a WBS item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}

			in := service.CreateItemInput{
				ProjectID:    p.ID,
				Title:        args[0],
				Type:         domain.ItemType(itemType),
				Assignee:     assignee,
				PlannedStart: optionalString(start),
				PlannedEnd:   optionalString(end),
			}
			if parentRef != "" {
				parent, err := resolveItem(ctx, app, p.ID, parentRef)
				if err != nil {
					return err
				}
				in.ParentID = parent.ID
			}
			if in.AggressiveHours, err = optionalHours("aggressive", aggressive); err != nil {
				return err
			}
			if in.SafeHours, err = optionalHours("safe", safe); err != nil {
				return err
			}
			if in.EstimatedHours, err = optionalHours("estimate", estimate); err != nil {
				return err
			}

			item, err := app.Items.Create(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", item.Code, item.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "Project short ID")
	cmd.Flags().StringVar(&parentRef, "parent", "", "Parent item code (top level when empty)")
	cmd.Flags().StringVar(&itemType, "type", "task", "Item type: project, phase, task or subtask")
	cmd.Flags().StringVar(&aggressive, "aggressive", "", "Aggressive (50%) estimate in hours")
	cmd.Flags().StringVar(&safe, "safe", "", "Safe (90%) estimate in hours")
	cmd.Flags().StringVar(&estimate, "estimate", "", "Plain estimate in hours")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee")
	cmd.Flags().StringVar(&start, "start", "", "Planned start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newWBSListCmd(app *App) *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "Show a project's WBS as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			items, err := app.Items.ListByProject(ctx, p.ID)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No WBS items. Add one with 'gantry wbs add'."))
				return nil
			}

			if table {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItemTable(items))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWBSTree(items, criticalIDs(ctx, app, p.ID)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&table, "table", false, "Show a flat table instead of a tree")

	return cmd
}

func newWBSStatusCmd(app *App) *cobra.Command {
	var projectRef, actual string

	cmd := &cobra.Command{
		Use:   "status ITEM STATUS",
		Short: "Set an item's status (pending, in_progress, completed, blocked)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			w, err := resolveItem(ctx, app, p.ID, args[0])
			if err != nil {
				return err
			}
			hours, err := optionalHours("actual", actual)
			if err != nil {
				return err
			}
			w, err = app.Items.SetStatus(ctx, w.ID, domain.ItemStatus(args[1]), hours)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", w.Code, w.Title, formatter.ItemStatusPill(w.Status))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "Project short ID")
	cmd.Flags().StringVar(&actual, "actual", "", "Actual hours spent so far")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newWBSMoveCmd(app *App) *cobra.Command {
	var projectRef, parentRef string

	cmd := &cobra.Command{
		Use:   "move ITEM",
		Short: "Reparent an item and recode its subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			w, err := resolveItem(ctx, app, p.ID, args[0])
			if err != nil {
				return err
			}
			parentID := ""
			if parentRef != "" {
				parent, err := resolveItem(ctx, app, p.ID, parentRef)
				if err != nil {
					return err
				}
				parentID = parent.ID
			}

			oldCode := w.Code
			w, err = app.Items.Move(ctx, w.ID, parentID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s → %s\n", oldCode, w.Code)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "Project short ID")
	cmd.Flags().StringVar(&parentRef, "parent", "", "New parent item code (top level when empty)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newWBSDeleteCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "delete ITEM",
		Short: "Delete an item, its subtree and their dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			w, err := resolveItem(ctx, app, p.ID, args[0])
			if err != nil {
				return err
			}
			if err := app.Items.Delete(ctx, w.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", w.Code, w.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "Project short ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
