// Package ics imports and exports events as iCalendar.
package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/almanac/internal/applog"
)

// ErrEmpty is returned for a calendar with no body.
var ErrEmpty = errors.New("empty ICS body")

// vevent is the subset of a VEVENT almanac understands.
type vevent struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
	RRule       string
	ExDates     []time.Time
	Reminder    *int
	Priority    int
	Color       string
}

// parse reads every VEVENT. Events that cannot be read are logged and skipped.
func parse(body []byte, loc *time.Location) ([]vevent, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmpty
	}
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var out []vevent
	for _, ve := range cal.Events() {
		ev, err := parseVEvent(ve, loc)
		if err != nil {
			applog.Error("skipping vevent", err, "uid", ve.Id())
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (vevent, error) {
	var out vevent
	out.UID = ve.Id()

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = unescape(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = unescape(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyPriority); p != nil {
		out.Priority, _ = strconv.Atoi(strings.TrimSpace(p.Value))
	}
	if p := ve.GetProperty(ical.ComponentPropertyColor); p != nil {
		out.Color = strings.TrimSpace(p.Value)
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, errors.New("missing DTSTART")
	}
	out.AllDay = isDateValue(dtStart)

	if out.AllDay {
		start, err := time.ParseInLocation("20060102", strings.TrimSpace(dtStart.Value), loc)
		if err != nil {
			return out, fmt.Errorf("parsing all-day DTSTART: %w", err)
		}
		out.Start, out.End = start, start
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return out, fmt.Errorf("parsing DTSTART: %w", err)
		}
		out.Start = start.In(loc)
		out.End = out.Start
		if end, err := ve.GetEndAt(); err == nil && end.After(start) {
			out.End = end.In(loc)
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RRule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(part, loc); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	for _, alarm := range ve.Alarms() {
		if p := alarm.GetProperty(ical.ComponentPropertyTrigger); p != nil {
			if m, ok := parseTrigger(p.Value); ok {
				out.Reminder = &m
				break
			}
		}
	}
	return out, nil
}

func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// parseICSTime parses DATE and DATE-TIME values without parameter context.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		t, err := time.Parse("20060102T150405Z", v)
		return t.In(loc), err
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}

// parseTrigger reads a relative "before start" trigger such as -PT15M or
// -PT1H into minutes. PT0S is zero.
func parseTrigger(v string) (int, bool) {
	v = strings.ToUpper(strings.TrimSpace(v))
	v = strings.TrimPrefix(v, "-")
	if !strings.HasPrefix(v, "PT") {
		return 0, false
	}
	d, err := time.ParseDuration(strings.ToLower(v[2:]))
	if err != nil || d < 0 {
		return 0, false
	}
	return int(d / time.Minute), true
}

func unescape(s string) string {
	r := strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)
	return r.Replace(s)
}
