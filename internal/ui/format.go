package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
)

// shortIDLen is how much of an event id the CLI prints. Commands accept any
// unique prefix.
const shortIDLen = 8

// shortID returns the printed prefix of id.
func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// truncate shortens s to max runes, ending in "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 3 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// dateHeading formats an ISO key as "Mon, Jun 23 2025".
func dateHeading(key string) string {
	d, err := dateutil.ParseDate(key)
	if err != nil {
		return key
	}
	return d.Format("Mon, Jan 2 2006")
}

// titleWidth is the room left for the title after the fixed columns.
func titleWidth() int {
	// "  ● xxxxxxxx  7:30 PM – 10:00 PM (+1d)  " is about 42 columns
	w := termWidth() - 42
	if w < 20 {
		return 20
	}
	return w
}

// printEventRow prints a single event row with consistent formatting.
func printEventRow(w io.Writer, e event.Event, maxTitle int) {
	bullet := formatEventColor(e.Color, "●")
	line := fmt.Sprintf("  %s %s  %-24s %s",
		bullet,
		formatMuted(shortID(e.ID)),
		e.TimeRange(),
		truncate(e.Title, maxTitle),
	)
	if e.Priority != event.PriorityNone {
		line += " " + formatMuted("("+string(e.Priority)+")")
	}
	if e.Reminder != nil {
		line += " " + formatMuted(reminderLabel(*e.Reminder))
	}
	fmt.Fprintln(w, line)
	if e.Description != "" {
		fmt.Fprintf(w, "      %s\n", formatMuted(truncate(e.Description, maxTitle+24)))
	}
}

// printDays prints events grouped under date headings, in date order.
func printDays(w io.Writer, days event.Days) {
	maxTitle := titleWidth()
	first := true
	for _, date := range days.Dates() {
		events := event.SortByTime(days.Get(date))
		if len(events) == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		fmt.Fprintf(w, "%s\n", formatDate(fmt.Sprintf("=== %s ===", dateHeading(date))))
		for _, e := range events {
			printEventRow(w, e, maxTitle)
		}
	}
}

// printEventList prints events that may come from different dates.
func printEventList(w io.Writer, events []event.Event) {
	maxTitle := titleWidth()
	for _, e := range events {
		fmt.Fprintf(w, "%s\n", formatDate(dateHeading(e.Date)))
		printEventRow(w, e, maxTitle)
	}
}

// reminderLabel formats a reminder offset.
func reminderLabel(minutes int) string {
	switch {
	case minutes == 0:
		return "⏰ at start"
	case minutes%60 == 0:
		return fmt.Sprintf("⏰ %dh before", minutes/60)
	default:
		return fmt.Sprintf("⏰ %dm before", minutes)
	}
}

// countLabel renders an event count for the month grid.
func countLabel(n int) string {
	switch {
	case n == 0:
		return ""
	case n > 9:
		return "9+"
	default:
		return fmt.Sprintf("%d", n)
	}
}

// monthTitle returns "June 2025" centred in width.
func monthTitle(year int, month time.Month, width int) string {
	title := fmt.Sprintf("%s %d", month, year)
	pad := (width - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + title
}
