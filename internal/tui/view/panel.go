package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// EventDetail is the event shown in the event panel.
type EventDetail struct {
	Marker      string
	Title       string
	Date        string
	When        string
	Priority    string
	Color       string
	Reminder    string
	Description string
	Position    string // "2 of 3"
}

// RenderEventPanel renders the label/value rows of the event panel.
func RenderEventPanel(d EventDetail, styles ModalStyles) string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			styles.ModalLabelStyle.Render(label),
			styles.ModalBodyStyle.Render(value),
		)
	}

	rows := []string{
		d.Marker + " " + styles.ModalTitleStyle.Render(d.Title),
		"",
		row("Date", d.Date),
		row("Time", d.When),
		row("Priority", d.Priority),
		row("Colour", d.Color),
	}
	if d.Reminder != "" {
		rows = append(rows, row("Reminder", d.Reminder))
	}
	if d.Description != "" {
		rows = append(rows, "", styles.ModalBodyStyle.Render(d.Description))
	}
	if d.Position != "" {
		rows = append(rows, "", styles.ModalMetaStyle.Render(d.Position))
	}
	return strings.Join(rows, "\n")
}
