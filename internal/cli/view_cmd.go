package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newViewCmd(a *App) *cobra.Command {
	req := a.newChartRequest("")

	cmd := &cobra.Command{
		Use:   "view PROJECT",
		Short: "Browse a project's Gantt chart interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			req.ProjectID = p.ID

			prog := tea.NewProgram(newChartModel(a, req), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = prog.Run()
			return err
		},
	}

	cmd.Flags().Var(newGranularityValue(req.Granularity, &req.Granularity), "granularity", "Initial timeline unit")
	cmd.Flags().BoolVar(&req.ExpandAll, "expand-all", req.ExpandAll, "Start with every item expanded")

	return cmd
}
