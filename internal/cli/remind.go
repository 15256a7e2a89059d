package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pablasso/study/internal/reminder"
)

func newRemindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Announce the current topic every day",
		Long:  `Run in the foreground and log the current topic every day at remind_at, until interrupted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			r, err := reminder.New(s, reminder.LogNotifier{}, a.cfg.RemindAt, a.cfg.Location())
			if err != nil {
				return err
			}
			if start, ok := a.cfg.Start(); ok {
				r.AlignFrom(start)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			r.Start()
			defer r.Stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Reminding daily at %s %s (next %s). Press Ctrl+C to stop.\n",
				a.cfg.RemindAt, a.cfg.Location(), r.NextRun().Format(time.DateTime))

			<-ctx.Done()
			return nil
		},
	}
}
