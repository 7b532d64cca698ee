package ui

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/almanac/internal/event"
)

// Color definitions for consistent styling across the UI.
var (
	// Date headers: bold cyan
	colorDate = color.New(color.FgCyan, color.Bold)

	// Today in the month grid
	colorToday = color.New(color.FgBlack, color.BgCyan, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Success messages
	colorSuccess = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// eventColors maps palette hex values to the nearest ANSI colour.
var eventColors = map[string]*color.Color{
	event.ColorBlue:   color.New(color.FgBlue),
	event.ColorGreen:  color.New(color.FgGreen),
	event.ColorOrange: color.New(color.FgHiRed),
	event.ColorRed:    color.New(color.FgRed, color.Bold),
	event.ColorPurple: color.New(color.FgMagenta),
	event.ColorYellow: color.New(color.FgYellow),
}

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatDate formats a date header.
func formatDate(s string) string {
	return colorDate.Sprint(s)
}

// formatToday highlights today's cell in the month grid.
func formatToday(s string) string {
	return colorToday.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatSuccess formats a confirmation.
func formatSuccess(s string) string {
	return colorSuccess.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatEventColor paints s in the event's palette colour.
func formatEventColor(hex, s string) string {
	if c, ok := eventColors[strings.ToLower(hex)]; ok {
		return c.Sprint(s)
	}
	return s
}
