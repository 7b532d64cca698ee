package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/applog"
	"github.com/javiermolinar/almanac/internal/notify"
	"github.com/javiermolinar/almanac/internal/reminder"
)

func (a *App) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Deliver reminders in the foreground",
		Long: `Arm a reminder for every upcoming event and deliver them until
interrupted. Reminders print to the terminal and, when [telegram] is
configured, go to the Telegram chat as well.

Events added from another terminal are picked up on the
reminders.resync schedule.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			sched := reminder.New(a.reminderSink(out), reminder.WithClock(a.now))
			defer sched.Stop()
			sched.Attach(a.store)

			if err := sched.StartResync(ctx, a.config.Reminders.Resync, a.reload); err != nil {
				return err
			}

			printPending(out, sched.Pending())
			applog.Info("watch started", "armed", sched.Len())

			<-ctx.Done()
			fmt.Fprintln(out, formatMuted("Stopped."))
			return nil
		},
	}
}

// reminderSink fans out to the terminal and, if configured, Telegram.
func (a *App) reminderSink(w io.Writer) notify.Sink {
	sinks := notify.Multi{notify.NewTerminal(w, a.config.Reminders.Bell)}
	if a.config.HasTelegram() {
		sinks = append(sinks, notify.NewTelegram(a.config.Telegram.Token, a.config.Telegram.ChatID))
	}
	return sinks
}

func (a *App) reload(ctx context.Context) error {
	changed, err := a.store.Reload(ctx)
	if err != nil {
		return err
	}
	if changed {
		applog.Debug("store reloaded")
	}
	return nil
}

func printPending(w io.Writer, pending []reminder.Pending) {
	if len(pending) == 0 {
		fmt.Fprintln(w, formatMuted("No reminders armed. Waiting for new events..."))
		return
	}
	fmt.Fprintln(w, formatHeader(fmt.Sprintf("Watching %d reminder(s):", len(pending))))
	for _, p := range pending {
		fmt.Fprintf(w, "  %s  %s %s\n",
			formatDate(p.At.Format("Mon Jan 2 15:04")),
			formatEventColor(p.Event.Color, "●"),
			p.Event.Title,
		)
	}
}
