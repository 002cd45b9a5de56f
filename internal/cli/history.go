package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/printerm/printerm/pkg/history"
	"github.com/printerm/printerm/pkg/style"
	"github.com/printerm/printerm/pkg/ui"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit    int
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: MsgHistoryShort,
		Long: `History lists the most recent print jobs, newest first. Every print
attempt is recorded, including failed ones.`,
		Example: `  # The last twenty jobs
  printerm history

  # The last fifty, as JSON
  printerm history --limit 50 -o json

  # Start over
  printerm history --clear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				fmt.Println("History is disabled (history.enabled = false).")
				return nil
			}

			store, err := a.openHistory(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if clearAll {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf(MsgHistoryCleared, removed)
				return nil
			}

			jobs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jobs == nil {
				jobs = []*history.Job{}
			}

			switch a.output {
			case ui.FormatJSON:
				return printJSON(jobs)
			case ui.FormatTerminal:
				lines := make([]style.JobLine, 0, len(jobs))
				for _, j := range jobs {
					lines = append(lines, style.JobLine{
						When:     j.CreatedAt,
						Template: j.Template,
						Target:   j.Target,
						Status:   style.Status(j.Status),
						Error:    j.Error,
					})
				}
				fmt.Println(style.RenderHistory(lines))
			default:
				for _, j := range jobs {
					fmt.Printf("%s  %-7s  %s  %s\n",
						j.CreatedAt.Local().Format("2006-01-02 15:04"), j.Status, j.Template, j.Target)
					if j.Error != "" {
						fmt.Printf("    %s\n", j.Error)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, FlagLimitDesc)
	cmd.Flags().BoolVar(&clearAll, "clear", false, FlagClearDesc)
	return cmd
}
