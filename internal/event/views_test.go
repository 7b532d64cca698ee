package event

import (
	"testing"
	"time"
)

func sampleDays() Days {
	return Days{
		"2025-06-25": {
			{ID: "3", Title: "Dentist", Date: "2025-06-25", Time: "10:00 AM"},
		},
		"2025-06-23": {
			{ID: "1", Title: "Team Meeting", Date: "2025-06-23", Time: "2:00 PM", Description: "Weekly sync"},
			{ID: "2", Title: "Gym", Date: "2025-06-23", Time: "7:00 AM"},
		},
		"2025-06-24": {
			{ID: "4", Title: "Birthday", Date: "2025-06-24", Description: "Bring cake"},
		},
		"2025-06-26": {},
	}
}

func TestDays(t *testing.T) {
	d := sampleDays()

	if got := d.Get("2030-01-01"); got == nil || len(got) != 0 {
		t.Errorf("Get(missing) = %#v, want empty non-nil", got)
	}

	dates := d.Dates()
	want := []string{"2025-06-23", "2025-06-24", "2025-06-25"}
	if !equalStrings(dates, want) {
		t.Errorf("Dates() = %v, want %v", dates, want)
	}

	if d.Len() != 4 {
		t.Errorf("Len() = %d, want 4", d.Len())
	}

	e, ok := d.Find("4")
	if !ok || e.Title != "Birthday" {
		t.Errorf("Find(4) = %v, %v", e, ok)
	}
	if _, ok := d.Find("nope"); ok {
		t.Error("Find(nope) should miss")
	}
}

func TestUpcoming(t *testing.T) {
	d := sampleDays()
	now := time.Date(2025, 6, 23, 12, 0, 0, 0, time.Local)

	got := titles(Upcoming(d, now, DefaultUpcomingLimit))
	// Gym already started; Birthday is untimed so it starts at midnight.
	want := []string{"Team Meeting", "Birthday", "Dentist"}
	if !equalStrings(got, want) {
		t.Errorf("Upcoming() = %v, want %v", got, want)
	}

	got = titles(Upcoming(d, now, 1))
	if !equalStrings(got, []string{"Team Meeting"}) {
		t.Errorf("Upcoming(limit 1) = %v", got)
	}

	later := time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)
	if got := Upcoming(d, later, DefaultUpcomingLimit); len(got) != 0 {
		t.Errorf("Upcoming(after all) = %v, want none", titles(got))
	}
}

func TestUpcoming_StartEqualToNowExcluded(t *testing.T) {
	d := Days{"2025-06-23": {{Title: "now", Date: "2025-06-23", Time: "12:00 PM"}}}
	now := time.Date(2025, 6, 23, 12, 0, 0, 0, time.Local)
	if got := Upcoming(d, now, 5); len(got) != 0 {
		t.Errorf("expected no events, got %v", titles(got))
	}
}

func TestSearch(t *testing.T) {
	d := sampleDays()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Team Meeting", "Gym", "Birthday", "Dentist"}},
		{"meeting", []string{"Team Meeting"}},
		{"SYNC", []string{"Team Meeting"}},
		{"cake", []string{"Birthday"}},
		{"2025-06-2", []string{"Team Meeting", "Gym", "Birthday", "Dentist"}},
		{"06-25", []string{"Dentist"}},
		{"holiday", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := titles(Search(d, tt.query))
			if !equalStrings(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
