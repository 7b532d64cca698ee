package tui

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/tui/commands"
)

const formWidth = 56

// formValues backs the huh form fields.
type formValues struct {
	title       string
	date        string
	start       string
	end         string
	color       string // hex, or empty to follow the priority
	priority    string
	reminder    string // minutes, or empty for none
	description string
}

func valuesFromEvent(e event.Event) formValues {
	v := formValues{
		title:       e.Title,
		date:        e.Date,
		start:       e.Time,
		end:         e.EndTime,
		color:       strings.ToLower(e.Color),
		priority:    string(e.Priority),
		description: e.Description,
	}
	if e.Reminder != nil {
		v.reminder = strconv.Itoa(*e.Reminder)
	}
	// An untouched priority colour stays linked to the priority.
	if e.Priority != event.PriorityNone && v.color == event.PriorityColor(e.Priority) {
		v.color = ""
	}
	return v
}

// toEvent builds the normalized event the form describes.
func (v formValues) toEvent() (event.Event, error) {
	e := event.Event{
		Title:       v.title,
		Date:        v.date,
		Time:        v.start,
		EndTime:     v.end,
		Description: v.description,
		Color:       v.color,
		Priority:    event.Priority(v.priority),
	}
	if v.reminder != "" {
		n, err := strconv.Atoi(v.reminder)
		if err != nil {
			return event.Event{}, &event.ValidationError{Field: "reminder", Msg: "must be a number of minutes"}
		}
		e.Reminder = event.Reminder(n)
	}
	return e.Normalize()
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title cannot be empty")
	}
	return nil
}

func validateDate(s string) error {
	if !dateutil.ValidISO(strings.TrimSpace(s)) {
		return dateutil.ErrInvalidDateFormat
	}
	return nil
}

func validateClock(s string) error {
	_, err := event.NormalizeClock(s)
	return err
}

// validateEnd checks the end time against the start typed so far.
func validateEnd(v *formValues) func(string) error {
	return func(s string) error {
		end, err := event.NormalizeClock(s)
		if err != nil || end == "" {
			return err
		}
		start, err := event.NormalizeClock(v.start)
		if err != nil {
			return nil
		}
		switch {
		case start == "":
			return errors.New("set a start time first")
		case start == end:
			return errors.New("start and end time cannot be the same")
		}
		return nil
	}
}

func colorOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Follow priority", "")}
	for _, hex := range event.Palette {
		opts = append(opts, huh.NewOption("● "+event.ColorName(hex), hex))
	}
	return opts
}

func priorityOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("None", string(event.PriorityNone)),
		huh.NewOption("High", string(event.PriorityHigh)),
		huh.NewOption("Medium", string(event.PriorityMedium)),
		huh.NewOption("Low", string(event.PriorityLow)),
	}
}

func reminderOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, n := range event.ReminderOptions {
		label := reminderText(n)
		opts = append(opts, huh.NewOption(label, strconv.Itoa(n)))
	}
	return opts
}

func reminderText(minutes int) string {
	switch {
	case minutes == 0:
		return "At start"
	case minutes%60 == 0:
		return strconv.Itoa(minutes/60) + "h before"
	default:
		return strconv.Itoa(minutes) + "m before"
	}
}

func newEventForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&v.title).Validate(validateTitle).CharLimit(120),
			huh.NewInput().Title("Date").Placeholder("2006-01-02").Value(&v.date).Validate(validateDate),
			huh.NewInput().Title("Start").Placeholder("9:00 AM, empty for all day").Value(&v.start).Validate(validateClock),
			huh.NewInput().Title("End").Placeholder("10:30 AM").Value(&v.end).Validate(validateEnd(v)),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Colour").Options(colorOptions()...).Value(&v.color),
			huh.NewSelect[string]().Title("Priority").Options(priorityOptions()...).Value(&v.priority),
			huh.NewSelect[string]().Title("Reminder").Options(reminderOptions()...).Value(&v.reminder),
			huh.NewText().Title("Description").Value(&v.description).CharLimit(500).Lines(3),
		),
	).
		WithTheme(huh.ThemeCatppuccin()).
		WithWidth(formWidth).
		WithShowHelp(true).
		WithShowErrors(true)
}

// openAddForm starts an empty form on the selected date.
func (m Model) openAddForm() (Model, tea.Cmd) {
	*m.formValues = formValues{date: m.cal.Selected}
	if r := m.config.DefaultReminder(); r != nil {
		m.formValues.reminder = strconv.Itoa(*r)
	}
	m.cal = m.cal.OpenAddForm()
	m.form = newEventForm(m.formValues)
	return m, m.form.Init()
}

// openEditForm starts a form prefilled with the event id.
func (m Model) openEditForm(id string) (Model, tea.Cmd) {
	e, ok := m.days.Find(id)
	if !ok {
		return m.setError(errEventGone), nil
	}
	*m.formValues = valuesFromEvent(e)
	m.cal = m.cal.OpenEditForm(id)
	m.form = newEventForm(m.formValues)
	return m, m.form.Init()
}

func (m Model) closeForm() Model {
	m.cal = m.cal.CloseForm()
	m.form = nil
	return m
}

// updateForm feeds msg to the form. esc cancels; a completed form is
// validated once more and saved.
func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		return m.closeForm(), nil
	case huh.StateCompleted:
		e, err := m.formValues.toEvent()
		if err != nil {
			// Reopen with the same values so nothing typed is lost.
			m = m.setError(err)
			m.form = newEventForm(m.formValues)
			return m, m.form.Init()
		}
		id := ""
		if m.cal.Form == calendar.FormEdit {
			id = m.cal.FormEvent
		}
		m = m.closeForm()
		return m, commands.SaveEvent(m.store, id, e)
	}
	return m, cmd
}
