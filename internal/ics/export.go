package ics

import (
	"fmt"
	"io"
	"strconv"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/almanac/internal/event"
)

// ProductID identifies almanac in exported calendars.
const ProductID = "-//almanac//almanac calendar//EN"

// Export writes every event in days as a VEVENT. now stamps DTSTAMP.
func Export(w io.Writer, days event.Days, loc *time.Location, now time.Time) error {
	if loc == nil {
		loc = time.Local
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)

	for _, e := range days.All() {
		start, end, ok := e.Span(loc)
		if !ok {
			continue
		}

		ve := cal.AddEvent(e.ID + "@almanac")
		ve.SetDtStampTime(now.UTC())
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.HasTime() {
			ve.SetStartAt(start)
			if end.After(start) {
				ve.SetEndAt(end)
			}
		} else {
			ve.SetAllDayStartAt(start)
			ve.SetAllDayEndAt(start.AddDate(0, 0, 1))
		}
		if e.Color != "" {
			ve.SetProperty(ical.ComponentPropertyColor, e.Color)
		}
		if p := priorityToICS(e.Priority); p != 0 {
			ve.SetProperty(ical.ComponentPropertyPriority, strconv.Itoa(p))
		}
		if e.Reminder != nil && e.HasTime() {
			alarm := ve.AddAlarm()
			alarm.SetAction(ical.ActionDisplay)
			alarm.SetTrigger(fmt.Sprintf("-PT%dM", *e.Reminder))
			alarm.SetProperty(ical.ComponentPropertyDescription, e.Title)
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}
