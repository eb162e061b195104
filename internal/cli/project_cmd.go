package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/app"
	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectArchiveCmd(app),
		newProjectDeleteCmd(app),
	)

	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var shortID, name, description string
	var start, end time.Time
	var ratio float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				ShortID:     shortID,
				Name:        name,
				Description: description,
				BufferRatio: ratio,
			}
			if !start.IsZero() {
				p.PlannedStart = &start
			}
			if !end.IsZero() {
				if !start.IsZero() && end.Before(start) {
					return fmt.Errorf("--end %s is before --start %s", end.Format(dateLayout), start.Format(dateLayout))
				}
				p.PlannedEnd = &end
			}

			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 letters + 2-4 digits, e.g. WEB01)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().Var(dateValue{&start}, "start", "Planned start date")
	cmd.Flags().Var(dateValue{&end}, "end", "Planned end date")
	cmd.Flags().Float64Var(&ratio, "buffer-ratio", domain.DefaultBufferRatio, "Share of removed safety kept as project buffer (0-1)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects, app.now()))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show project details and its WBS",
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
			deps, err := app.Deps.ListByProject(ctx, p.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectDetail(formatter.ProjectDetailData{
				Project:         p,
				Items:           items,
				DependencyCount: len(deps),
				Critical:        criticalIDs(ctx, app, p.ID),
			}))
			return nil
		},
	}
}

// criticalIDs returns the item ids on the project's critical chain. A graph
// that cannot be analyzed just yields no highlight.
func criticalIDs(ctx context.Context, a *App, projectID string) []string {
	if a.Chains == nil {
		return nil
	}
	resp, err := a.Chains.Chain(ctx, app.NewChainRequest(projectID))
	if err != nil {
		return nil
	}
	ids := make([]string, len(resp.Chain))
	for i, l := range resp.Chain {
		ids[i] = l.Item.ID
	}
	return ids
}

func newProjectArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive PROJECT",
		Short: "Archive a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Archive(cmd.Context(), p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete PROJECT",
		Short: "Delete an archived project and all of its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(cmd.Context(), p.ID, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even if the project is not archived")

	return cmd
}
