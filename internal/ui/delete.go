package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
)

func (a *App) deleteCmd() *cobra.Command {
	var (
		date  string
		index int
	)

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an event",
		Long: `Delete an event by id, or by its position on a day.

Positions are zero-based in insertion order, as printed by
'almanac list --date D --index'.`,
		Example: `  almanac delete 3f2a9c1d
  almanac delete --date=2025-06-23 --index=0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			ctx := context.Background()
			var (
				removed event.Event
				err     error
			)
			switch {
			case len(args) == 1:
				var target event.Event
				target, err = a.resolveEvent(args[0])
				if err == nil {
					removed, err = a.store.Delete(ctx, target.ID)
				}
			case cmd.Flags().Changed("index"):
				d, perr := dateutil.ParseRelativeDate(date, a.now())
				if perr != nil {
					return fmt.Errorf("--date: %w", perr)
				}
				removed, err = a.store.DeleteAt(ctx, dateutil.FormatISO(d), index)
			default:
				return errors.New("pass an event id, or --date and --index")
			}
			if err != nil {
				return reportStoreErr("deleting event", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n", formatSuccess("Deleted"), removed.Title, removed.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date of the event (defaults to today)")
	cmd.Flags().IntVar(&index, "index", 0, "Zero-based position on that date")

	return cmd
}
