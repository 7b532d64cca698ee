package event

import (
	"errors"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	t.Run("valid event is canonicalised", func(t *testing.T) {
		e := Event{
			Title:    "  Team Meeting ",
			Date:     "2025-06-23",
			Time:     "19:30",
			EndTime:  "9:00 pm",
			Priority: "high",
			Reminder: Reminder(15),
		}
		got, err := e.Normalize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Title != "Team Meeting" {
			t.Errorf("title = %q", got.Title)
		}
		if got.Time != "7:30 PM" || got.EndTime != "9:00 PM" {
			t.Errorf("times = %q - %q", got.Time, got.EndTime)
		}
		if got.Priority != PriorityHigh {
			t.Errorf("priority = %q", got.Priority)
		}
		if got.Color != ColorRed {
			t.Errorf("color = %q, want priority colour %q", got.Color, ColorRed)
		}
	})

	t.Run("explicit colour wins over priority", func(t *testing.T) {
		got, err := Event{Title: "x", Date: "2025-06-23", Color: "purple", Priority: PriorityLow}.Normalize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Color != ColorPurple {
			t.Errorf("color = %q, want %q", got.Color, ColorPurple)
		}
	})

	t.Run("defaults to blue", func(t *testing.T) {
		got, err := Event{Title: "x", Date: "2025-06-23"}.Normalize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Color != ColorBlue {
			t.Errorf("color = %q, want %q", got.Color, ColorBlue)
		}
	})

	t.Run("does not share reminder pointer", func(t *testing.T) {
		e := Event{Title: "x", Date: "2025-06-23", Time: "9:00 AM", Reminder: Reminder(5)}
		got, err := e.Normalize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		*got.Reminder = 60
		if *e.Reminder != 5 {
			t.Error("normalised event aliases the input reminder")
		}
	})
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		field string
	}{
		{"empty title", Event{Title: "  ", Date: "2025-06-23"}, "title"},
		{"bad date", Event{Title: "x", Date: "23/06/2025"}, "date"},
		{"bad time", Event{Title: "x", Date: "2025-06-23", Time: "noon"}, "time"},
		{"bad end time", Event{Title: "x", Date: "2025-06-23", Time: "9:00 AM", EndTime: "late"}, "endTime"},
		{"end without start", Event{Title: "x", Date: "2025-06-23", EndTime: "9:00 AM"}, "endTime"},
		{"equal times", Event{Title: "x", Date: "2025-06-23", Time: "09:00", EndTime: "9:00 AM"}, "endTime"},
		{"bad colour", Event{Title: "x", Date: "2025-06-23", Color: "#000000"}, "color"},
		{"bad priority", Event{Title: "x", Date: "2025-06-23", Priority: "urgent"}, "priority"},
		{"bad reminder", Event{Title: "x", Date: "2025-06-23", Reminder: Reminder(7)}, "reminder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.event.Normalize()
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("error = %v, want ErrValidation", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not a *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestSpan(t *testing.T) {
	loc := time.UTC

	t.Run("same day", func(t *testing.T) {
		e := Event{Date: "2025-06-23", Time: "1:00 PM", EndTime: "2:30 PM"}
		start, end, ok := e.Span(loc)
		if !ok {
			t.Fatal("expected ok")
		}
		if !start.Equal(time.Date(2025, 6, 23, 13, 0, 0, 0, loc)) {
			t.Errorf("start = %v", start)
		}
		if !end.Equal(time.Date(2025, 6, 23, 14, 30, 0, 0, loc)) {
			t.Errorf("end = %v", end)
		}
		if e.SpansNextDay() {
			t.Error("did not expect next-day span")
		}
	})

	t.Run("end before start spans into next day", func(t *testing.T) {
		e := Event{Date: "2025-06-30", Time: "10:00 PM", EndTime: "1:00 AM"}
		_, end, ok := e.Span(loc)
		if !ok {
			t.Fatal("expected ok")
		}
		if !e.SpansNextDay() {
			t.Error("expected next-day span")
		}
		if !end.Equal(time.Date(2025, 7, 1, 1, 0, 0, 0, loc)) {
			t.Errorf("end = %v", end)
		}
	})

	t.Run("no end time", func(t *testing.T) {
		e := Event{Date: "2025-06-23", Time: "9:00 AM"}
		start, end, _ := e.Span(loc)
		if !start.Equal(end) {
			t.Errorf("expected zero-length span, got %v..%v", start, end)
		}
	})
}

func TestReminderAt(t *testing.T) {
	loc := time.UTC

	e := Event{Date: "2025-06-23", Time: "9:00 AM", Reminder: Reminder(15)}
	at, ok := e.ReminderAt(loc)
	if !ok {
		t.Fatal("expected a reminder")
	}
	if !at.Equal(time.Date(2025, 6, 23, 8, 45, 0, 0, loc)) {
		t.Errorf("at = %v", at)
	}

	if _, ok := (Event{Date: "2025-06-23", Time: "9:00 AM"}).ReminderAt(loc); ok {
		t.Error("no reminder configured, expected !ok")
	}
	if _, ok := (Event{Date: "2025-06-23", Reminder: Reminder(5)}).ReminderAt(loc); ok {
		t.Error("untimed event, expected !ok")
	}
}

func TestTimeRange(t *testing.T) {
	tests := []struct {
		e    Event
		want string
	}{
		{Event{}, "All day"},
		{Event{Time: "9:00 AM"}, "9:00 AM"},
		{Event{Time: "9:00 AM", EndTime: "10:00 AM"}, "9:00 AM – 10:00 AM"},
		{Event{Time: "11:00 PM", EndTime: "1:00 AM"}, "11:00 PM – 1:00 AM (+1d)"},
	}
	for _, tt := range tests {
		if got := tt.e.TimeRange(); got != tt.want {
			t.Errorf("TimeRange() = %q, want %q", got, tt.want)
		}
	}
}

func TestColorName(t *testing.T) {
	if got := ColorName(ColorGreen); got != "green" {
		t.Errorf("ColorName(green hex) = %q", got)
	}
	if got := ColorName("#123456"); got != "#123456" {
		t.Errorf("ColorName(unknown) = %q", got)
	}
}
