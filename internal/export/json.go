// Package export writes events in the formats the export command offers.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/javiermolinar/almanac/internal/event"
)

// ToJSON writes days in the same date -> events shape almanac persists.
func ToJSON(w io.Writer, days event.Days) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string][]event.Event(nonEmpty(days))); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func nonEmpty(days event.Days) event.Days {
	out := make(event.Days, len(days))
	for date, evs := range days {
		if len(evs) > 0 {
			out[date] = evs
		}
	}
	return out
}
