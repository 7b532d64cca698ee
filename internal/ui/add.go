package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/clock"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
)

// eventFlags are the flags shared by add and edit.
type eventFlags struct {
	date     string
	start    string
	end      string
	desc     string
	color    string
	priority string
	reminder int
}

func (f *eventFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Date (YYYY-MM-DD, today, tomorrow, monday, next-week...)")
	cmd.Flags().StringVar(&f.start, "time", "", "Start time (7:30 PM, 19:30)")
	cmd.Flags().StringVar(&f.end, "end", "", "End time; earlier than --time means it ends the next day")
	cmd.Flags().StringVar(&f.desc, "desc", "", "Description")
	cmd.Flags().StringVar(&f.color, "color", "", "Colour: blue, green, orange, red, purple, yellow")
	cmd.Flags().StringVar(&f.priority, "priority", "", "Priority: high, medium or low")
	cmd.Flags().IntVar(&f.reminder, "reminder", config.NoReminder, "Reminder minutes before start: 0, 5, 10, 15, 30, 60 (-1 for none)")
}

// apply copies the flags the user set onto e. With onlyChanged false every
// flag is applied, which is what add wants.
func (f *eventFlags) apply(cmd *cobra.Command, e event.Event, now clock.Clock, onlyChanged bool) (event.Event, error) {
	set := func(name string) bool {
		return !onlyChanged || cmd.Flags().Changed(name)
	}

	if set("date") {
		d, err := dateutil.ParseRelativeDate(f.date, now())
		if err != nil {
			return e, fmt.Errorf("--date: %w", err)
		}
		e.Date = dateutil.FormatISO(d)
	}
	if set("time") {
		e.Time = f.start
	}
	if set("end") {
		e.EndTime = f.end
	}
	if set("desc") {
		e.Description = f.desc
	}
	if set("priority") {
		e.Priority = event.Priority(f.priority)
		// Re-derive the colour unless one was given.
		if onlyChanged && !cmd.Flags().Changed("color") {
			e.Color = ""
		}
	}
	if set("color") {
		e.Color = f.color
	}
	if cmd.Flags().Changed("reminder") {
		if f.reminder == config.NoReminder {
			e.Reminder = nil
		} else {
			e.Reminder = event.Reminder(f.reminder)
		}
	}
	return e, nil
}

func (a *App) addCmd() *cobra.Command {
	var flags eventFlags

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new event",
		Long: `Add a new event to the calendar.

Without --date the event goes on today. Without --reminder the
calendar.default_reminder setting applies.`,
		Example: `  almanac add "Team Meeting" --date=2025-06-23 --time="7:30 PM" --end="9:00 PM" --color=blue
  almanac add "Dentist" --date=tomorrow --time=09:00 --priority=high --reminder=30`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			e := event.Event{Title: strings.Join(args, " "), Reminder: a.config.DefaultReminder()}
			e, err := flags.apply(cmd, e, a.now, false)
			if err != nil {
				return err
			}

			created, err := a.store.Add(context.Background(), e)
			if err != nil {
				return reportStoreErr("adding event", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s %s [%s]\n",
				formatSuccess("Added"),
				created.Title,
				created.Date,
				created.TimeRange(),
				shortID(created.ID),
			)
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}
