package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/event"
)

func (a *App) upcomingCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Show the next events",
		Long: `Show the events that start after now, soonest first.
Events without a time count as starting at midnight.`,
		Example: `  almanac upcoming
  almanac upcoming -n 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = a.config.Calendar.UpcomingLimit
			}
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}

			events := event.Upcoming(a.store.Snapshot(), a.now(), limit)
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No upcoming events.")
				return nil
			}
			printEventList(cmd.OutOrStdout(), events)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", event.DefaultUpcomingLimit, "Maximum number of events")
	return cmd
}
