package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/event"
)

func (a *App) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search events",
		Long: `Search event titles and descriptions, ignoring case.
A query like 2025-06 also matches event dates.`,
		Example: `  almanac search meeting
  almanac search 2025-06-2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			query := strings.Join(args, " ")
			results := event.Search(a.store.Snapshot(), query)
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No events match %q.\n", query)
				return nil
			}
			printEventList(out, results)
			fmt.Fprintln(out, formatMuted(fmt.Sprintf("%d result(s)", len(results))))
			return nil
		},
	}
}
