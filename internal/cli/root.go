package cli

import (
	"time"

	"github.com/alexanderramin/gantry/internal/app"
	"github.com/alexanderramin/gantry/internal/config"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Items    service.WBSService
	Deps     service.DependencyService

	Import     app.ImportProjectUseCase
	Charts     app.ChartUseCase
	Chains     app.ChainUseCase
	Reschedule app.RescheduleUseCase

	Config config.Config

	// IsInteractive reports whether stdin is a terminal, enabling prompts.
	IsInteractive func() bool
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "gantry" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gantry",
		Short:         "WBS schedules, critical chains and Gantt charts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newProjectCmd(app),
		newImportCmd(app),
		newWBSCmd(app),
		newDepCmd(app),
		newChainCmd(app),
		newChartCmd(app),
		newRescheduleCmd(app),
		newViewCmd(app),
	)

	return root
}
