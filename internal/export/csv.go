package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/javiermolinar/almanac/internal/event"
)

// CSVHeader is the first row ToCSV writes.
var CSVHeader = []string{"ID", "Date", "Start", "End", "Title", "Description", "Color", "Priority", "Reminder (min)"}

// ToCSV writes one row per event in date, then insertion order.
func ToCSV(w io.Writer, days event.Days) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, e := range days.All() {
		reminder := ""
		if e.Reminder != nil {
			reminder = strconv.Itoa(*e.Reminder)
		}
		row := []string{
			e.ID,
			e.Date,
			e.Time,
			e.EndTime,
			e.Title,
			e.Description,
			event.ColorName(e.Color),
			string(e.Priority),
			reminder,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
