package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
)

func (a *App) listCmd() *cobra.Command {
	var (
		date      string
		startDate string
		endDate   string
		all       bool
		indexes   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		Long: `List all events within a date range.

If no dates are specified, lists today's events.
--date (or --start alone) lists a single day.
--start and --end list a range, inclusive. --all lists everything.`,
		Example: `  almanac list
  almanac list --date=tomorrow --index
  almanac list --start=2025-06-01 --end=2025-06-30
  almanac list --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			snapshot := a.store.Snapshot()

			if all {
				if snapshot.Len() == 0 {
					fmt.Fprintln(out, "No events.")
					return nil
				}
				printDays(out, snapshot)
				return nil
			}

			if date != "" {
				startDate, endDate = date, ""
			}
			dateRange, err := dateutil.NewDateRange(startDate, endDate, a.now())
			if err != nil {
				return err
			}

			if indexes {
				return printIndexed(cmd, snapshot, dateRange)
			}

			inRange := event.Days{}
			for _, key := range dateRange.Days() {
				if evs := snapshot.Get(key); len(evs) > 0 {
					inRange[key] = evs
				}
			}
			if inRange.Len() == 0 {
				fmt.Fprintln(out, "No events found in the specified date range.")
				return nil
			}
			printDays(out, inRange)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Single date (YYYY-MM-DD, today, tomorrow...)")
	cmd.Flags().StringVar(&startDate, "start", "", "Start date (defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (defaults to start date)")
	cmd.Flags().BoolVar(&all, "all", false, "List every stored event")
	cmd.Flags().BoolVar(&indexes, "index", false, "Show insertion positions for 'delete --index'")

	return cmd
}

// printIndexed lists events in stored order with their positions.
func printIndexed(cmd *cobra.Command, days event.Days, r *dateutil.DateRange) error {
	out := cmd.OutOrStdout()
	printed := false
	for _, key := range r.Days() {
		evs := days.Get(key)
		if len(evs) == 0 {
			continue
		}
		printed = true
		fmt.Fprintf(out, "%s\n", formatDate(fmt.Sprintf("=== %s ===", dateHeading(key))))
		for i, e := range evs {
			fmt.Fprintf(out, "  %d  %-24s %s\n", i, e.TimeRange(), e.Title)
		}
	}
	if !printed {
		fmt.Fprintln(out, "No events found in the specified date range.")
	}
	return nil
}
