package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/store"
)

// errAmbiguousID is returned when an id prefix matches more than one event.
var errAmbiguousID = errors.New("id prefix matches more than one event")

// resolveEvent finds the event whose id is, or starts with, prefix.
func (a *App) resolveEvent(prefix string) (event.Event, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return event.Event{}, store.ErrEventNotFound
	}
	if e, ok := a.store.Find(prefix); ok {
		return e, nil
	}

	var (
		match event.Event
		found int
	)
	for _, e := range a.store.Snapshot().All() {
		if strings.HasPrefix(e.ID, prefix) {
			match = e
			found++
		}
	}
	switch found {
	case 0:
		return event.Event{}, store.ErrEventNotFound
	case 1:
		return match, nil
	default:
		return event.Event{}, fmt.Errorf("%w: %q", errAmbiguousID, prefix)
	}
}

func (a *App) editCmd() *cobra.Command {
	var (
		flags eventFlags
		title string
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit an event",
		Long: `Edit an existing event. Only the flags you pass change.

The id is the one printed by list, search and upcoming; any unique
prefix works. Moving an event to another date puts it last on that day.`,
		Example: `  almanac edit 3f2a9c1d --time="8:00 PM"
  almanac edit 3f2a --date=tomorrow --reminder=-1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			current, err := a.resolveEvent(args[0])
			if err != nil {
				return reportStoreErr("editing event", err)
			}

			e, err := flags.apply(cmd, current, a.now, true)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				e.Title = title
			}

			updated, err := a.store.Update(context.Background(), current.ID, e)
			if err != nil {
				return reportStoreErr("editing event", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s %s [%s]\n",
				formatSuccess("Updated"),
				updated.Title,
				updated.Date,
				updated.TimeRange(),
				shortID(updated.ID),
			)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&title, "title", "", "New title")
	return cmd
}
