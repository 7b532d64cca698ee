package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
)

// cellWidth is the printed width of one grid cell: "23 2 ".
const cellWidth = 5

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

func (a *App) monthCmd() *cobra.Command {
	var (
		year  int
		month int
	)

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Print a month grid with event counts",
		Long: `Print the month as a Sunday-first grid. Each day shows how many
events it has. Days outside the month are dimmed and today is highlighted.`,
		Example: `  almanac month
  almanac month --year=2025 --month=6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			now := a.now()
			if !cmd.Flags().Changed("year") {
				year = now.Year()
			}
			if !cmd.Flags().Changed("month") {
				month = int(now.Month())
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12, got %d", month)
			}
			if year < a.config.Calendar.MinYear || year > a.config.Calendar.MaxYear {
				return fmt.Errorf("--year must be between %d and %d, got %d",
					a.config.Calendar.MinYear, a.config.Calendar.MaxYear, year)
			}

			renderMonth(cmd.OutOrStdout(), year, time.Month(month), a.store.Snapshot(), now)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (defaults to the current year)")
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (defaults to the current month)")

	return cmd
}

// renderMonth writes the grid for (year, month) with per-day event counts.
func renderMonth(w io.Writer, year int, month time.Month, days event.Days, now time.Time) {
	width := cellWidth*7 - 1
	today := dateutil.FormatISO(now)
	total := 0

	fmt.Fprintln(w, formatHeader(monthTitle(year, month, width)))
	header := make([]string, len(weekdayHeader))
	for i, d := range weekdayHeader {
		header[i] = fmt.Sprintf("%-4s", d)
	}
	fmt.Fprintln(w, formatMuted(strings.TrimRight(strings.Join(header, " "), " ")))

	for _, week := range calendar.Weeks(calendar.BuildGrid(year, month)) {
		cells := make([]string, len(week))
		for i, c := range week {
			key := c.Key(year, month)
			n := len(days.Get(key))
			if c.Current() {
				total += n
			}

			text := fmt.Sprintf("%2d %-1s", c.Day, countLabel(n))
			if len(text) < cellWidth-1 {
				text += strings.Repeat(" ", cellWidth-1-len(text))
			}
			switch {
			case key == today:
				text = formatToday(text)
			case !c.Current():
				text = formatMuted(text)
			}
			cells[i] = text
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " "))
	}

	switch total {
	case 0:
		fmt.Fprintln(w, formatMuted("No events this month."))
	case 1:
		fmt.Fprintln(w, formatMuted("1 event this month."))
	default:
		fmt.Fprintln(w, formatMuted(fmt.Sprintf("%d events this month.", total)))
	}
}
