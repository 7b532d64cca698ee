package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	PrevYear  key.Binding
	NextYear  key.Binding
	Today     key.Binding
	Month     key.Binding
	Year      key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Open      key.Binding
	Search    key.Binding
	Quit      key.Binding

	// Event panel
	NextEvent key.Binding
	PrevEvent key.Binding
	Copy      key.Binding
	Back      key.Binding

	// Pickers, search and confirm
	ListUp   key.Binding
	ListDown key.Binding
	Select   key.Binding
	Yes      key.Binding
	No       key.Binding
}

var keys = keyMap{
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/l", "day"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l", "next day"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("j/k", "week"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "next week"),
	),
	PrevMonth: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[/]", "month"),
	),
	NextMonth: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next month"),
	),
	PrevYear: key.NewBinding(
		key.WithKeys("{"),
		key.WithHelp("{/}", "year"),
	),
	NextYear: key.NewBinding(
		key.WithKeys("}"),
		key.WithHelp("}", "next year"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	Month: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "pick month"),
	),
	Year: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "pick year"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	NextEvent: key.NewBinding(
		key.WithKeys("n", "right", "l"),
		key.WithHelp("n/p", "next/prev"),
	),
	PrevEvent: key.NewBinding(
		key.WithKeys("p", "left", "h"),
		key.WithHelp("p", "previous"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	ListUp: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑/↓", "move"),
	),
	ListDown: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "move"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "delete"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "cancel"),
	),
}

// helpLine joins the help text of bindings for the footer.
func helpLine(bindings ...key.Binding) string {
	var s string
	for i, b := range bindings {
		if i > 0 {
			s += "  "
		}
		h := b.Help()
		s += h.Key + " " + h.Desc
	}
	return s
}
