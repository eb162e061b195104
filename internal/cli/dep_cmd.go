package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage finish-to-start dependencies between WBS items",
	}

	cmd.AddCommand(
		newDepAddCmd(app),
		newDepRemoveCmd(app),
		newDepListCmd(app),
	)

	return cmd
}

func newDepAddCmd(app *App) *cobra.Command {
	var projectRef string
	var lag int

	cmd := &cobra.Command{
		Use:   "add PREDECESSOR SUCCESSOR",
		Short: "Make SUCCESSOR wait for PREDECESSOR to finish",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			pred, err := resolveItem(ctx, app, p.ID, args[0])
			if err != nil {
				return err
			}
			succ, err := resolveItem(ctx, app, p.ID, args[1])
			if err != nil {
				return err
			}
			if err := app.Deps.Add(ctx, pred.ID, succ.ID, lag); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s → %s", pred.Code, succ.Code)
			if lag > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (+%dd)", lag)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "Project short ID")
	cmd.Flags().IntVar(&lag, "lag", 0, "Lag in days between predecessor finish and successor start")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newDepRemoveCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "remove PREDECESSOR SUCCESSOR",
		Short: "Remove a dependency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			pred, err := resolveItem(ctx, app, p.ID, args[0])
			if err != nil {
				return err
			}
			succ, err := resolveItem(ctx, app, p.ID, args[1])
			if err != nil {
				return err
			}
			if err := app.Deps.Remove(ctx, pred.ID, succ.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s → %s\n", pred.Code, succ.Code)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "Project short ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newDepListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			deps, err := app.Deps.ListByProject(ctx, p.ID)
			if err != nil {
				return err
			}
			if len(deps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No dependencies."))
				return nil
			}
			items, err := app.Items.ListByProject(ctx, p.ID)
			if err != nil {
				return err
			}
			codes := make(map[string]string, len(items))
			for _, w := range items {
				codes[w.ID] = w.Code
			}

			rows := make([][]string, 0, len(deps))
			for _, d := range deps {
				rows = append(rows, []string{codes[d.PredecessorID], codes[d.SuccessorID], strconv.Itoa(d.LagDays) + "d"})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTable([]string{"PREDECESSOR", "SUCCESSOR", "LAG"}, rows))
			return nil
		},
	}
}
