package store

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/almanac/internal/event"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type seedFile struct {
	Events map[string][]event.Event `yaml:"events"`
}

// Defaults returns the bundled seed events, normalised and without IDs.
func Defaults() (event.Days, error) {
	return parseSeed(defaultsYAML)
}

func parseSeed(data []byte) (event.Days, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed events: %w", err)
	}

	days := make(event.Days, len(seed.Events))
	for date, evs := range seed.Events {
		for i, e := range evs {
			e.Date = date
			n, err := e.Normalize()
			if err != nil {
				return nil, fmt.Errorf("seed event %s[%d]: %w", date, i, err)
			}
			days[date] = append(days[date], n)
		}
	}
	return days, nil
}
