package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/app"
	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newChainCmd(a *App) *cobra.Command {
	var record bool
	var history int
	var now time.Time

	cmd := &cobra.Command{
		Use:   "chain PROJECT",
		Short: "Show the critical chain and project buffer status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, a, args[0])
			if err != nil {
				return err
			}

			req := app.NewChainRequest(p.ID)
			req.Record = record
			req.HistoryLimit = history
			if now.IsZero() {
				now = a.now()
			}
			req.Now = &now

			resp, err := a.Chains.Chain(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatChain(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&record, "record", false, "Append today's buffer state to the fever history")
	cmd.Flags().IntVar(&history, "history", 10, "Number of fever history entries to show")
	cmd.Flags().Var(dateValue{&now}, "now", "Evaluate as of this date")

	return cmd
}
