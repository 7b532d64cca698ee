package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/almanac/internal/clock"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/db"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/store"
)

// testNow is the Sunday before the seeded events.
var testNow = time.Date(2025, 6, 22, 10, 0, 0, 0, time.Local)

func newTestApp(t *testing.T) (*App, *store.Store) {
	t.Helper()
	DisableColor()

	st := store.New(db.NewMemory())
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	a := NewApp(st, config.Default())
	a.now = clock.Fixed(testNow)
	return a, st
}

func run(a *App, args ...string) (string, error) {
	var out bytes.Buffer
	a.root.SetOut(&out)
	a.root.SetErr(&out)
	a.root.SetArgs(args)
	err := a.root.Execute()
	return out.String(), err
}

func findByTitle(t *testing.T, st *store.Store, title string) event.Event {
	t.Helper()
	for _, e := range st.Snapshot().All() {
		if e.Title == title {
			return e
		}
	}
	t.Fatalf("no event titled %q", title)
	return event.Event{}
}

func TestVersionCommand(t *testing.T) {
	a, _ := newTestApp(t)
	out, err := run(a, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "almanac dev") {
		t.Errorf("output = %q", out)
	}
}

func TestAddCommand(t *testing.T) {
	a, st := newTestApp(t)

	out, err := run(a, "add", "Dentist", "--date=2025-06-25", "--time=09:00", "--end=9:45", "--priority=high", "--reminder=30")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "Added Dentist on 2025-06-25 9:00 AM – 9:45 AM") {
		t.Errorf("output = %q", out)
	}

	got := st.Get("2025-06-25")
	if len(got) != 1 {
		t.Fatalf("events on 2025-06-25 = %d, want 1", len(got))
	}
	e := got[0]
	if e.Color != event.ColorRed {
		t.Errorf("Color = %q, want priority colour %q", e.Color, event.ColorRed)
	}
	if e.Reminder == nil || *e.Reminder != 30 {
		t.Errorf("Reminder = %v, want 30", e.Reminder)
	}
	if e.ID == "" {
		t.Error("expected an id")
	}
}

func TestAddCommandRelativeDate(t *testing.T) {
	a, st := newTestApp(t)

	if _, err := run(a, "add", "Call", "mum", "--date=tomorrow"); err != nil {
		t.Fatalf("add: %v", err)
	}
	got := st.Get("2025-06-23")
	if got[len(got)-1].Title != "Call mum" {
		t.Errorf("last event = %q, want %q", got[len(got)-1].Title, "Call mum")
	}
}

func TestAddCommandDefaultReminder(t *testing.T) {
	a, st := newTestApp(t)
	a.config.Calendar.DefaultReminder = 15

	if _, err := run(a, "add", "Standup", "--date=2025-06-30", "--time=9:15 AM"); err != nil {
		t.Fatalf("add: %v", err)
	}
	e := st.Get("2025-06-30")[0]
	if e.Reminder == nil || *e.Reminder != 15 {
		t.Errorf("Reminder = %v, want default 15", e.Reminder)
	}

	if _, err := run(a, "add", "Quiet", "--date=2025-06-30", "--reminder=-1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if e := st.Get("2025-06-30")[1]; e.Reminder != nil {
		t.Errorf("Reminder = %d, want none", *e.Reminder)
	}
}

func TestAddCommandValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad time", args: []string{"add", "X", "--time=25:00"}},
		{name: "end without start", args: []string{"add", "X", "--end=10:00"}},
		{name: "same start and end", args: []string{"add", "X", "--time=10:00", "--end=10:00 AM"}},
		{name: "bad colour", args: []string{"add", "X", "--color=teal"}},
		{name: "bad reminder", args: []string{"add", "X", "--time=10:00", "--reminder=7"}},
		{name: "blank title", args: []string{"add", "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, st := newTestApp(t)
			before := st.Snapshot().Len()

			_, err := run(a, tt.args...)
			if !errors.Is(err, event.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if after := st.Snapshot().Len(); after != before {
				t.Errorf("store changed: %d events, want %d", after, before)
			}
		})
	}
}

func TestAddCommandBadDate(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := run(a, "add", "X", "--date=someday"); err == nil {
		t.Fatal("expected error for unknown date")
	}
}

func TestEditCommand(t *testing.T) {
	a, st := newTestApp(t)
	meeting := findByTitle(t, st, "Team Meeting")

	out, err := run(a, "edit", meeting.ID[:8], "--time=8:00 PM", "--title=Team Sync")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.Contains(out, "Updated Team Sync") {
		t.Errorf("output = %q", out)
	}

	got, ok := st.Find(meeting.ID)
	if !ok {
		t.Fatal("edited event lost")
	}
	if got.Time != "8:00 PM" || got.Title != "Team Sync" {
		t.Errorf("got %q at %q", got.Title, got.Time)
	}
	if got.Description != meeting.Description || got.Color != meeting.Color {
		t.Error("unchanged fields were modified")
	}
}

func TestEditCommandMovesDate(t *testing.T) {
	a, st := newTestApp(t)
	lunch := findByTitle(t, st, "Lunch with Alex")

	if _, err := run(a, "edit", lunch.ID, "--date=2025-06-24"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if n := len(st.Get("2025-06-23")); n != 1 {
		t.Errorf("events left on 2025-06-23 = %d, want 1", n)
	}
	day := st.Get("2025-06-24")
	if day[len(day)-1].ID != lunch.ID {
		t.Error("moved event should be last on its new date")
	}
}

func TestEditCommandPriorityRederivesColour(t *testing.T) {
	a, st := newTestApp(t)
	doctor := findByTitle(t, st, "Doctor Appointment")

	if _, err := run(a, "edit", doctor.ID, "--priority=medium"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	got, _ := st.Find(doctor.ID)
	if got.Color != event.ColorOrange {
		t.Errorf("Color = %q, want %q", got.Color, event.ColorOrange)
	}
}

func TestEditCommandUnknownID(t *testing.T) {
	a, _ := newTestApp(t)
	_, err := run(a, "edit", "nope", "--time=9:00")
	if err == nil || !strings.Contains(err.Error(), "no event with that id") {
		t.Fatalf("err = %v", err)
	}
}

func TestDeleteCommand(t *testing.T) {
	a, st := newTestApp(t)
	doctor := findByTitle(t, st, "Doctor Appointment")

	out, err := run(a, "delete", doctor.ID[:8])
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, "Deleted Doctor Appointment on 2025-06-24") {
		t.Errorf("output = %q", out)
	}
	if _, ok := st.Find(doctor.ID); ok {
		t.Error("event still present")
	}
	if _, ok := st.Snapshot()["2025-06-24"]; ok {
		t.Error("empty date should be removed")
	}
}

func TestDeleteCommandByIndex(t *testing.T) {
	a, st := newTestApp(t)

	_, err := run(a, "delete", "--date=2025-06-23", "--index=5")
	if err == nil || !strings.Contains(err.Error(), "no event at that index") {
		t.Fatalf("err = %v, want index error", err)
	}
	if n := st.Snapshot().Len(); n != 3 {
		t.Fatalf("store changed after failed delete: %d events", n)
	}

	if _, err := run(a, "delete", "--date=2025-06-23", "--index=0"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	day := st.Get("2025-06-23")
	if len(day) != 1 || day[0].Title != "Lunch with Alex" {
		t.Errorf("remaining = %v", day)
	}
}

func TestDeleteCommandNeedsTarget(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := run(a, "delete"); err == nil {
		t.Fatal("expected error without id or index")
	}
}

func TestListCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "single date sorted by time",
			args: []string{"list", "--date=2025-06-23"},
			want: []string{"Mon, Jun 23 2025", "Lunch with Alex", "Team Meeting"},
		},
		{
			name:    "range",
			args:    []string{"list", "--start=2025-06-24", "--end=2025-06-30"},
			want:    []string{"Doctor Appointment", "⏰ 30m before"},
			notWant: []string{"Team Meeting"},
		},
		{
			name: "today is empty",
			args: []string{"list"},
			want: []string{"No events found"},
		},
		{
			name: "indexes in stored order",
			args: []string{"list", "--date=2025-06-23", "--index"},
			want: []string{"0  7:30 PM", "1  1:00 PM"},
		},
		{
			name: "all",
			args: []string{"list", "--all"},
			want: []string{"Team Meeting", "Doctor Appointment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t)
			out, err := run(a, tt.args...)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}

	a, _ := newTestApp(t)
	out, _ := run(a, "list", "--date=2025-06-23")
	if strings.Index(out, "Lunch with Alex") > strings.Index(out, "Team Meeting") {
		t.Error("list should order events by start time")
	}
}

func TestListCommandBadRange(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := run(a, "list", "--start=2025-06-24", "--end=2025-06-01"); err == nil {
		t.Fatal("expected error for reversed range")
	}
}

func TestMonthCommand(t *testing.T) {
	a, _ := newTestApp(t)
	out, err := run(a, "month", "--year=2025", "--month=6")
	if err != nil {
		t.Fatalf("month: %v", err)
	}
	for _, w := range []string{"June 2025", "Su   Mo", "23 2", "24 1", "3 events this month."} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}

	if _, err := run(a, "month", "--month=13"); err == nil {
		t.Error("expected error for month 13")
	}
	if _, err := run(a, "month", "--year=1800"); err == nil {
		t.Error("expected error for year before the calendar range")
	}
}

func TestRenderMonthRows(t *testing.T) {
	DisableColor()
	tests := []struct {
		year  int
		month time.Month
		rows  int
	}{
		{2015, time.February, 5},
		{2025, time.June, 5},
		{2025, time.March, 6},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		renderMonth(&buf, tt.year, tt.month, event.Days{}, testNow)
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		// title, weekday header, rows, footer
		if got := len(lines) - 3; got != tt.rows {
			t.Errorf("%d-%02d: %d week rows, want %d", tt.year, tt.month, got, tt.rows)
		}
		if !strings.Contains(lines[len(lines)-1], "No events this month.") {
			t.Errorf("footer = %q", lines[len(lines)-1])
		}
	}
}

func TestUpcomingCommand(t *testing.T) {
	a, _ := newTestApp(t)
	out, err := run(a, "upcoming", "-n", "2")
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if !strings.Contains(out, "Lunch with Alex") || !strings.Contains(out, "Team Meeting") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "Doctor Appointment") {
		t.Error("limit not applied")
	}
	if strings.Index(out, "Lunch with Alex") > strings.Index(out, "Team Meeting") {
		t.Error("upcoming should be soonest first")
	}

	if _, err := run(a, "upcoming", "-n", "0"); err == nil {
		t.Error("expected error for zero limit")
	}
}

func TestUpcomingCommandNothingLeft(t *testing.T) {
	a, _ := newTestApp(t)
	a.now = clock.Fixed(time.Date(2030, 1, 1, 0, 0, 0, 0, time.Local))
	out, err := run(a, "upcoming")
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if !strings.Contains(out, "No upcoming events.") {
		t.Errorf("output = %q", out)
	}
}

func TestSearchCommand(t *testing.T) {
	a, _ := newTestApp(t)

	out, err := run(a, "search", "DOCTOR")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Doctor Appointment") || !strings.Contains(out, "1 result(s)") {
		t.Errorf("output = %q", out)
	}

	out, _ = run(a, "search", "2025-06-23")
	if !strings.Contains(out, "2 result(s)") {
		t.Errorf("date search output = %q", out)
	}

	out, _ = run(a, "search", "nothing", "here")
	if !strings.Contains(out, `No events match "nothing here".`) {
		t.Errorf("output = %q", out)
	}
}

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:one@test\r\n" +
	"DTSTAMP:20250601T000000Z\r\n" +
	"DTSTART:20250701T090000\r\n" +
	"DTEND:20250701T100000\r\n" +
	"SUMMARY:Planning\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:two@test\r\n" +
	"DTSTAMP:20250601T000000Z\r\n" +
	"DTSTART:20250702T140000\r\n" +
	"SUMMARY:Review\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImportCommand(t *testing.T) {
	a, st := newTestApp(t)
	path := filepath.Join(t.TempDir(), "work.ics")
	if err := os.WriteFile(path, []byte(sampleICS), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(a, "import", path, "--dry-run")
	if err != nil {
		t.Fatalf("import --dry-run: %v", err)
	}
	if !strings.Contains(out, "Would import 2 events") {
		t.Errorf("output = %q", out)
	}
	if st.Snapshot().Len() != 3 {
		t.Fatal("dry run saved events")
	}

	out, err = run(a, "import", path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 2 events") {
		t.Errorf("output = %q", out)
	}
	planning := st.Get("2025-07-01")
	if len(planning) != 1 || planning[0].Time != "9:00 AM" || planning[0].EndTime != "10:00 AM" {
		t.Errorf("2025-07-01 = %+v", planning)
	}
	if planning[0].ID == "" {
		t.Error("imported event has no id")
	}
}

func TestImportCommandErrors(t *testing.T) {
	a, st := newTestApp(t)
	dir := t.TempDir()

	if _, err := run(a, "import", filepath.Join(dir, "missing.ics")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := run(a, "import", dir); err == nil {
		t.Error("expected error for directory")
	}
	if st.Snapshot().Len() != 3 {
		t.Error("failed imports changed the store")
	}
}

func TestImportEventsRollsBack(t *testing.T) {
	kv := db.NewMemory()
	st := store.New(kv)
	ctx := context.Background()
	if err := st.Load(ctx); err != nil {
		t.Fatal(err)
	}
	kv.FailPuts(errors.New("disk full"))

	events := []event.Event{
		{Title: "A", Date: "2025-07-01"},
		{Title: "B", Date: "2025-07-02"},
	}
	if _, err := importEvents(ctx, st, events); err == nil {
		t.Fatal("expected error")
	}
	if st.Snapshot().Len() != 3 {
		t.Error("partial import left in the store")
	}
}

func TestImportOptions(t *testing.T) {
	now := clock.Fixed(testNow)

	opts, err := importOptions("", "", now)
	if err != nil {
		t.Fatal(err)
	}
	if !opts.From.Equal(time.Date(2025, 6, 22, 0, 0, 0, 0, time.Local)) {
		t.Errorf("From = %v", opts.From)
	}

	opts, err = importOptions("2025-07-01", "2025-07-31", now)
	if err != nil {
		t.Fatal(err)
	}
	if opts.To.Day() != 31 || opts.To.Hour() != 23 {
		t.Errorf("To = %v, want end of 2025-07-31", opts.To)
	}

	if _, err := importOptions("2025-07-31", "2025-07-01", now); err == nil {
		t.Error("expected error for reversed window")
	}
	if _, err := importOptions("soon", "", now); err == nil {
		t.Error("expected error for bad --from")
	}
}

func TestExportFormats(t *testing.T) {
	a, st := newTestApp(t)
	days := st.Snapshot()

	tests := []struct {
		format string
		want   []string
	}{
		{formatICS, []string{"BEGIN:VCALENDAR", "SUMMARY:Team Meeting"}},
		{formatJSON, []string{`"2025-06-23"`, `"title": "Doctor Appointment"`}},
		{formatCSV, []string{"ID,Date,Start", "Lunch with Alex"}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := a.writeExport(&buf, tt.format, days); err != nil {
			t.Fatalf("%s: %v", tt.format, err)
		}
		for _, w := range tt.want {
			if !strings.Contains(buf.String(), w) {
				t.Errorf("%s export missing %q", tt.format, w)
			}
		}
	}

	if err := a.writeExport(&bytes.Buffer{}, "xml", days); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExportCommandToFile(t *testing.T) {
	a, _ := newTestApp(t)
	path := filepath.Join(t.TempDir(), "out.json")

	if _, err := run(a, "export", "--format=json", "-o", path); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Team Meeting") {
		t.Errorf("file = %s", data)
	}
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := resolvePath("~/cal.ics")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "cal.ics") {
		t.Errorf("resolvePath = %q", got)
	}

	if _, err := resolvePath("   "); err == nil {
		t.Error("expected error for empty path")
	}

	got, err = resolvePath("rel.ics")
	if err != nil || !filepath.IsAbs(got) {
		t.Errorf("resolvePath(rel) = %q, %v", got, err)
	}
}
